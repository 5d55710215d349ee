package utils

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// CheckTrainConfig verifies that the training configuration file exists and
// parses as YAML. The file itself is opaque to this tool; it is handed to the
// training entry point untouched.
func CheckTrainConfig(path string) error {
	exists, err := PathExists(path)
	if err != nil {
		return errors.Wrapf(err, "stat training config %s", path)
	}
	if !exists {
		return errors.Errorf("training config %s does not exist", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "training config %s is not readable", path)
	}

	var content map[string]interface{}
	if err := yaml.Unmarshal(data, &content); err != nil {
		return errors.Wrapf(err, "training config %s is not valid YAML", path)
	}
	if len(content) == 0 {
		return errors.Errorf("training config %s is empty", path)
	}
	return nil
}
