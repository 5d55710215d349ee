package runner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unet-submit/pkg/batch"
	"unet-submit/pkg/utils"
)

type fakeExecutor struct {
	commands []string
	failOn   map[string]error
}

func (f *fakeExecutor) Run(command string) error {
	f.commands = append(f.commands, command)
	return f.failOn[command]
}

func testSpec() batch.JobSpec {
	return batch.FromConfig(utils.DefaultConfig())
}

func TestRunExecutesStepSequence(t *testing.T) {
	exec := &fakeExecutor{}
	err := New(exec).Run(testSpec())

	require.NoError(t, err)
	assert.Equal(t, []string{
		"module load cuda",
		"source activate 3dunet",
		"python -u train.py --config resources/train_config_ce.yaml",
	}, exec.commands)
}

// Setup failures must not stop the sequence: the training invocation is
// attempted regardless, and its outcome alone decides the result.
func TestRunContinuesAfterSetupFailure(t *testing.T) {
	exec := &fakeExecutor{failOn: map[string]error{
		"module load cuda":       errors.New("module: command not found"),
		"source activate 3dunet": errors.New("no such environment"),
	}}
	err := New(exec).Run(testSpec())

	require.NoError(t, err)
	assert.Equal(t, "python -u train.py --config resources/train_config_ce.yaml", exec.commands[len(exec.commands)-1])
	assert.Len(t, exec.commands, 3)
}

func TestRunPropagatesTrainingError(t *testing.T) {
	trainErr := errors.New("training crashed")
	exec := &fakeExecutor{failOn: map[string]error{
		"python -u train.py --config resources/train_config_ce.yaml": trainErr,
	}}
	err := New(exec).Run(testSpec())

	assert.Equal(t, trainErr, err)
}

func TestRunWithStubbedSetupInvokesTrainingOnly(t *testing.T) {
	spec := testSpec()
	spec.Module = ""
	spec.CondaEnv = ""

	exec := &fakeExecutor{}
	err := New(exec).Run(spec)

	require.NoError(t, err)
	assert.Equal(t, []string{"python -u train.py --config resources/train_config_ce.yaml"}, exec.commands)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
}

func TestShellExecutorExitCode(t *testing.T) {
	err := ShellExecutor{}.Run("exit 3")
	assert.Equal(t, 3, ExitCode(err))
}
