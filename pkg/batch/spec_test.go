package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDefaults(t *testing.T) {
	assert.NoError(t, testSpec().Validate())
}

func TestValidateRejectsBadSpecs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*JobSpec)
	}{
		{"empty name", func(s *JobSpec) { s.Name = "" }},
		{"long name", func(s *JobSpec) { s.Name = "a-very-long-job-name-over-thirty-chars" }},
		{"empty partition", func(s *JobSpec) { s.Partition = "" }},
		{"two nodes", func(s *JobSpec) { s.Nodes = 2 }},
		{"zero nodes", func(s *JobSpec) { s.Nodes = 0 }},
		{"zero gpus", func(s *JobSpec) { s.Gpus = 0 }},
		{"two gpus", func(s *JobSpec) { s.Gpus = 2 }},
		{"empty stdout", func(s *JobSpec) { s.Stdout = "" }},
		{"empty config", func(s *JobSpec) { s.ConfigPath = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := testSpec()
			tc.mutate(&spec)
			assert.Error(t, spec.Validate())
		})
	}
}

func TestTrainCommand(t *testing.T) {
	spec := testSpec()
	assert.Equal(t, []string{"python", "-u", "train.py", "--config", "resources/train_config_ce.yaml"}, spec.TrainCommand())
	assert.Equal(t, "python -u train.py --config resources/train_config_ce.yaml", spec.TrainCommandLine())
}

func TestSetupCommands(t *testing.T) {
	spec := testSpec()
	assert.Equal(t, []string{"module load cuda", "source activate 3dunet"}, spec.SetupCommands())

	spec.Module = ""
	assert.Equal(t, []string{"source activate 3dunet"}, spec.SetupCommands())

	spec.CondaEnv = ""
	assert.Empty(t, spec.SetupCommands())
}
