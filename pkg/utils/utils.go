package utils

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
)

// RunCommand runs a shell command line and returns its combined output.
func RunCommand(command string) (string, error) {
	cmd := exec.Command("bash", "-c", command)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if err != nil {
		return output.String(), err
	}

	return strings.TrimSpace(output.String()), nil
}

func PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
