package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"unet-submit/pkg/batch"
	"unet-submit/pkg/monitor"
	"unet-submit/pkg/runner"
	"unet-submit/pkg/slurm"
	"unet-submit/pkg/utils"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "print the generated batch script",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := batch.FromConfig(GConfig)
			if err := spec.Validate(); err != nil {
				return err
			}
			fmt.Print(batch.Render(spec))
			return nil
		},
	}
}

func newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "submit the training job to the scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := batch.FromConfig(GConfig)
			if err := spec.Validate(); err != nil {
				return err
			}
			if err := utils.CheckTrainConfig(spec.ConfigPath); err != nil {
				return err
			}

			client := slurm.NewClient(GConfig.SbatchBin)
			if !client.IsAvailable() {
				return fmt.Errorf("%s not found in PATH, is this a submission host?", client.SbatchBin)
			}

			jobId, err := client.Submit(batch.Render(spec))
			if err != nil {
				return err
			}
			logrus.Infof("Submitted job %s with id %d", spec.Name, jobId)

			recordSubmission(spec, jobId)

			fmt.Printf("Submitted batch job %d\n", jobId)
			fmt.Printf("stdout: %s\n", batch.ExpandLogPath(spec.Stdout, jobId))
			fmt.Printf("stderr: %s\n", batch.ExpandLogPath(spec.Stderr, jobId))
			return nil
		},
	}
}

func recordSubmission(spec batch.JobSpec, jobId uint32) {
	hm, err := utils.NewHistoryManager(historyPath())
	if err != nil {
		logrus.Warnf("Open submission history failed: %v", err)
		return
	}
	record := utils.SubmissionRecord{
		JobId:       jobId,
		JobName:     spec.Name,
		Partition:   spec.Partition,
		ConfigPath:  spec.ConfigPath,
		SubmittedAt: time.Now(),
	}
	if err := hm.Save(record); err != nil {
		logrus.Warnf("Save submission history failed: %v", err)
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "run the job steps locally without a scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := batch.FromConfig(GConfig)
			if err := spec.Validate(); err != nil {
				return err
			}
			if err := utils.CheckTrainConfig(spec.ConfigPath); err != nil {
				return err
			}

			err := runner.New(nil).Run(spec)
			if err != nil {
				logrus.Errorf("Training command failed: %v", err)
				os.Exit(runner.ExitCode(err))
			}
			return nil
		},
	}
}

func newCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <jobid>",
		Short: "cancel a submitted job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobId, err := parseJobIdArg(args[0])
			if err != nil {
				return err
			}
			if err := slurm.NewClient(GConfig.SbatchBin).Cancel(jobId); err != nil {
				return err
			}
			logrus.Infof("Cancelled job %d", jobId)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <jobid>",
		Short: "show the scheduler state of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobId, err := parseJobIdArg(args[0])
			if err != nil {
				return err
			}
			state, err := slurm.NewClient(GConfig.SbatchBin).State(jobId)
			if err != nil {
				return err
			}
			fmt.Println(state)
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <jobid>",
		Short: "poll a job until it finishes, exposing metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobId, err := parseJobIdArg(args[0])
			if err != nil {
				return err
			}

			interval := time.Duration(GConfig.Monitor.Interval) * time.Second
			monitor.Serve(GConfig.Monitor.Port)
			monitor.StartSystemMetricsCollector(interval)

			state, err := monitor.WatchJob(slurm.NewClient(GConfig.SbatchBin), jobId, interval)
			if err != nil {
				return err
			}
			fmt.Println(state)
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "list recorded submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			hm, err := utils.NewHistoryManager(historyPath())
			if err != nil {
				return err
			}
			records, err := hm.List()
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Printf("%d\t%s\t%s\t%s\t%s\n",
					r.JobId, r.JobName, r.Partition, r.ConfigPath,
					r.SubmittedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func parseJobIdArg(arg string) (uint32, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid job id: %s", arg)
	}
	return uint32(id), nil
}

func historyPath() string {
	path := GConfig.HistoryPath
	if filepath.IsAbs(path) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path)
}
