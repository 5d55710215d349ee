package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProcessCpuUsage 系统资源指标
	ProcessCpuUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "process_cpu_usage_percent",
		Help: "Current CPU usage percentage of the process",
	})

	ProcessMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "process_memory_usage_bytes",
		Help: "Current memory usage in bytes",
	})

	ProcessGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "process_goroutines_count",
		Help: "Current number of goroutines",
	})

	// JobState one-hot gauge per scheduler state of the watched job
	JobState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "training_job_state",
		Help: "Scheduler state of the watched training job (1 for the current state)",
	}, []string{"state"})

	JobStatePolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "training_job_state_polls_total",
		Help: "Total number of scheduler state polls",
	}, []string{"status"})
)
