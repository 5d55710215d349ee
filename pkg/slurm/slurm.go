// Package slurm wraps the Slurm command line tools used to submit, query and
// cancel the training job.
package slurm

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"unet-submit/pkg/utils"
)

// Terminal job states reported by sacct/squeue.
var terminalStates = map[string]bool{
	"COMPLETED": true,
	"FAILED":    true,
	"CANCELLED": true,
	"TIMEOUT":   true,
	"NODE_FAIL": true,
	"PREEMPTED": true,
}

type Client struct {
	SbatchBin string
}

func NewClient(sbatchBin string) *Client {
	if sbatchBin == "" {
		sbatchBin = "sbatch"
	}
	return &Client{SbatchBin: sbatchBin}
}

// IsAvailable reports whether the submission binary can be found.
func (c *Client) IsAvailable() bool {
	_, err := exec.LookPath(c.SbatchBin)
	return err == nil
}

// Submit writes the script to a temp file and submits it, returning the
// scheduler-assigned job id.
func (c *Client) Submit(script string) (uint32, error) {
	f, err := os.CreateTemp("", "unet-submit-*.sh")
	if err != nil {
		return 0, errors.Wrap(err, "create batch script file")
	}
	scriptPath := f.Name()
	defer os.Remove(scriptPath)

	if _, err := f.WriteString(script); err != nil {
		f.Close()
		return 0, errors.Wrap(err, "write batch script file")
	}
	if err := f.Close(); err != nil {
		return 0, errors.Wrap(err, "close batch script file")
	}

	logrus.Debugf("Submitting batch script %s", scriptPath)
	output, err := utils.RunCommand(fmt.Sprintf("%s %s", c.SbatchBin, scriptPath))
	if err != nil {
		return 0, errors.Wrapf(err, "sbatch failed: %s", output)
	}

	return ParseJobId(output)
}

var submittedRE = regexp.MustCompile(`Submitted batch job (\d+)`)

// ParseJobId extracts the job id from sbatch output of the form
// "Submitted batch job 4567".
func ParseJobId(output string) (uint32, error) {
	m := submittedRE.FindStringSubmatch(output)
	if len(m) != 2 {
		return 0, errors.Errorf("unexpected sbatch output: %q", output)
	}
	id, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "parse job id %q", m[1])
	}
	return uint32(id), nil
}

// Cancel asks the scheduler to cancel the job.
func (c *Client) Cancel(jobId uint32) error {
	output, err := utils.RunCommand(fmt.Sprintf("scancel %d", jobId))
	if err != nil {
		return errors.Wrapf(err, "scancel %d failed: %s", jobId, output)
	}
	return nil
}

// State returns the scheduler state of the job, e.g. PENDING, RUNNING,
// COMPLETED. squeue answers for queued and running jobs; finished jobs fall
// back to the accounting database.
func (c *Client) State(jobId uint32) (string, error) {
	output, err := utils.RunCommand(fmt.Sprintf("squeue -h -j %d -o %%T", jobId))
	if err == nil && strings.TrimSpace(output) != "" {
		return normalizeState(output), nil
	}

	output, err = utils.RunCommand(fmt.Sprintf("sacct -n -X -j %d -o State", jobId))
	if err != nil {
		return "", errors.Wrapf(err, "query state of job %d failed: %s", jobId, output)
	}
	state := normalizeState(output)
	if state == "" {
		return "", errors.Errorf("job %d is unknown to the scheduler", jobId)
	}
	return state, nil
}

// IsTerminal reports whether a state means the job has left the queue.
func IsTerminal(state string) bool {
	return terminalStates[state]
}

func normalizeState(output string) string {
	state := strings.TrimSpace(output)
	if i := strings.IndexByte(state, '\n'); i >= 0 {
		state = state[:i]
	}
	// sacct reports "CANCELLED by 1000"
	if f := strings.Fields(state); len(f) > 0 {
		state = f[0]
	}
	return strings.TrimSuffix(strings.ToUpper(state), "+")
}
