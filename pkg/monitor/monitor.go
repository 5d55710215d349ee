package monitor

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"

	"unet-submit/pkg/slurm"
)

// StartSystemMetricsCollector samples process-level metrics in the background.
func StartSystemMetricsCollector(interval time.Duration) {
	go func() {
		proc, err := process.NewProcess(int32(os.Getpid()))
		if err != nil {
			logrus.Fatalf("Failed to get process info: %v", err)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			collectProcessMetrics(proc)
		}
	}()
}

func collectProcessMetrics(proc *process.Process) {
	cpuPercent, err := proc.Percent(0)
	if err == nil {
		ProcessCpuUsage.Set(cpuPercent)
	}

	memInfo, err := proc.MemoryInfo()
	if err == nil {
		ProcessMemoryUsage.Set(float64(memInfo.RSS))
	}

	ProcessGoroutines.Set(float64(runtime.NumGoroutine()))
}

// Serve exposes /metrics on the given port.
func Serve(port int) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", port)
		logrus.Infof("Metrics listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logrus.Errorf("Metrics server quitting: %v", err)
		}
	}()
}

// maxPollFailures bounds consecutive failed state queries before WatchJob
// gives up, so a job the scheduler does not know is not polled forever.
const maxPollFailures = 5

// WatchJob polls the scheduler until the job reaches a terminal state,
// updating the job state metrics on every poll. It returns the final state,
// or an error after maxPollFailures consecutive failed polls.
func WatchJob(client *slurm.Client, jobId uint32, interval time.Duration) (string, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastState string
	failures := 0
	for {
		state, err := client.State(jobId)
		if err != nil {
			failures++
			JobStatePolls.WithLabelValues("error").Inc()
			logrus.Warnf("Polling job %d failed: %v", jobId, err)
			if failures >= maxPollFailures {
				return "", errors.Wrapf(err, "giving up on job %d after %d failed polls", jobId, failures)
			}
		} else {
			failures = 0
			JobStatePolls.WithLabelValues("ok").Inc()
			if state != lastState {
				if lastState != "" {
					JobState.WithLabelValues(lastState).Set(0)
				}
				JobState.WithLabelValues(state).Set(1)
				logrus.Infof("Job %d state: %s", jobId, state)
				lastState = state
			}
			if slurm.IsTerminal(state) {
				return state, nil
			}
		}
		<-ticker.C
	}
}
