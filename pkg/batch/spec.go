package batch

import (
	"strings"

	"github.com/pkg/errors"

	"unet-submit/pkg/utils"
)

// JobSpec carries everything needed to render the training batch script: the
// scheduler directive attributes, the environment setup names, and the
// training entry point invocation.
type JobSpec struct {
	Name      string
	Partition string
	Nodes     int
	Gpus      int
	Stdout    string
	Stderr    string

	Module   string
	CondaEnv string

	Python     string
	Script     string
	ConfigPath string
}

// FromConfig builds a JobSpec from the tool configuration.
func FromConfig(cfg utils.Config) JobSpec {
	return JobSpec{
		Name:       cfg.Job.Name,
		Partition:  cfg.Job.Partition,
		Nodes:      cfg.Job.Nodes,
		Gpus:       cfg.Job.Gpus,
		Stdout:     cfg.Job.Stdout,
		Stderr:     cfg.Job.Stderr,
		Module:     cfg.Env.Module,
		CondaEnv:   cfg.Env.CondaEnv,
		Python:     cfg.Train.Python,
		Script:     cfg.Train.Script,
		ConfigPath: cfg.Train.ConfigPath,
	}
}

// Validate checks the spec before rendering. The training job is single-node,
// single-GPU; there is no multi-node or multi-GPU partitioning logic behind
// the directives, so requests for more are rejected rather than silently
// accepted.
func (s JobSpec) Validate() error {
	if s.Name == "" {
		return errors.New("job name must not be empty")
	}
	if len(s.Name) > 30 {
		return errors.New("job name is too long (up to 30)")
	}
	if s.Partition == "" {
		return errors.New("partition must not be empty")
	}
	if s.Nodes != 1 {
		return errors.Errorf("node count must be 1, got %d", s.Nodes)
	}
	if s.Gpus != 1 {
		return errors.Errorf("gpu count must be 1, got %d", s.Gpus)
	}
	if s.Stdout == "" || s.Stderr == "" {
		return errors.New("stdout and stderr templates must not be empty")
	}
	if s.ConfigPath == "" {
		return errors.New("training config path must not be empty")
	}
	return nil
}

// TrainCommand returns the training invocation as an argv slice.
func (s JobSpec) TrainCommand() []string {
	return []string{s.Python, "-u", s.Script, "--config", s.ConfigPath}
}

// TrainCommandLine returns the training invocation as a shell line.
func (s JobSpec) TrainCommandLine() string {
	return strings.Join(s.TrainCommand(), " ")
}

// SetupCommands returns the environment activation lines executed before the
// training command. Their failure is not checked; the training invocation is
// attempted regardless.
func (s JobSpec) SetupCommands() []string {
	var cmds []string
	if s.Module != "" {
		cmds = append(cmds, "module load "+s.Module)
	}
	if s.CondaEnv != "" {
		cmds = append(cmds, "source activate "+s.CondaEnv)
	}
	return cmds
}
