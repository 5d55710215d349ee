package batch

import (
	"fmt"
	"strconv"
	"strings"

	"unet-submit/pkg/utils"
)

// Render produces the batch script submitted to the scheduler. The body is a
// plain unconditional sequence: environment setup lines followed by the
// training invocation. No guard is placed between the steps; a failed setup
// line still falls through to the training command, and the job exit code is
// whatever the final invocation returns.
func Render(spec JobSpec) string {
	var script strings.Builder

	script.WriteString("#!/bin/bash\n")
	script.WriteString(fmt.Sprintf("#SBATCH --job-name=%s\n", spec.Name))
	script.WriteString(fmt.Sprintf("#SBATCH --partition=%s\n", spec.Partition))
	script.WriteString(fmt.Sprintf("#SBATCH --nodes=%d\n", spec.Nodes))
	script.WriteString(fmt.Sprintf("#SBATCH --gres=gpu:%d\n", spec.Gpus))
	script.WriteString(fmt.Sprintf("#SBATCH --output=%s\n", spec.Stdout))
	script.WriteString(fmt.Sprintf("#SBATCH --error=%s\n", spec.Stderr))
	script.WriteString("\n")

	for _, cmd := range spec.SetupCommands() {
		script.WriteString(cmd + "\n")
	}
	script.WriteString("\n")
	script.WriteString(spec.TrainCommandLine() + "\n")

	return script.String()
}

// ExpandLogPath substitutes the scheduler job id into a log path template,
// e.g. "log.%j.out" with job id 12345 becomes "log.12345.out".
func ExpandLogPath(template string, jobId uint32) string {
	return strings.ReplaceAll(template, utils.JobIdPlaceholder, strconv.FormatUint(uint64(jobId), 10))
}
