// Package runner executes the job steps directly, outside a scheduler.
package runner

import (
	"errors"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"

	"unet-submit/pkg/batch"
)

// Executor runs one shell line. It exists so tests can stub the environment
// setup steps and record what gets invoked.
type Executor interface {
	Run(command string) error
}

// ShellExecutor runs commands through bash with the process streams attached.
type ShellExecutor struct{}

func (ShellExecutor) Run(command string) error {
	cmd := exec.Command("bash", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

type Runner struct {
	Exec Executor
}

func New(e Executor) *Runner {
	if e == nil {
		e = ShellExecutor{}
	}
	return &Runner{Exec: e}
}

// Run executes the same step sequence the batch script contains: the
// environment setup lines, then the training invocation. A failed setup step
// is logged and the sequence continues; the returned error is the training
// command's alone, so the caller exits with the training exit code.
func (r *Runner) Run(spec batch.JobSpec) error {
	for _, cmd := range spec.SetupCommands() {
		logrus.Infof("Running setup step: %s", cmd)
		if err := r.Exec.Run(cmd); err != nil {
			logrus.Warnf("Setup step %q failed: %v, continuing", cmd, err)
		}
	}

	train := spec.TrainCommandLine()
	logrus.Infof("Running training command: %s", train)
	return r.Exec.Run(train)
}

// ExitCode maps the error returned by Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
