package utils

// JobConfig holds the scheduler directive attributes of the training job.
type JobConfig struct {
	Name      string `mapstructure:"name"`
	Partition string `mapstructure:"partition"`
	Nodes     int    `mapstructure:"nodes"`
	Gpus      int    `mapstructure:"gpus"`
	Stdout    string `mapstructure:"stdout"`
	Stderr    string `mapstructure:"stderr"`
}

// EnvConfig names the environment made available before the training command.
type EnvConfig struct {
	Module   string `mapstructure:"module"`
	CondaEnv string `mapstructure:"conda-env"`
}

// TrainConfig describes the training entry point invocation.
type TrainConfig struct {
	Python     string `mapstructure:"python"`
	Script     string `mapstructure:"script"`
	ConfigPath string `mapstructure:"config"`
}

type MonitorConfig struct {
	Port     int `mapstructure:"port"`
	Interval int `mapstructure:"interval"`
}

type Config struct {
	LogLevel    string        `mapstructure:"log-level"`
	SbatchBin   string        `mapstructure:"sbatch-bin"`
	HistoryPath string        `mapstructure:"history-path"`
	Job         JobConfig     `mapstructure:"job"`
	Env         EnvConfig     `mapstructure:"env"`
	Train       TrainConfig   `mapstructure:"train"`
	Monitor     MonitorConfig `mapstructure:"monitor"`
}

// DefaultConfig mirrors the original submit script: one node, one GPU on the
// gpu partition, logs keyed by the scheduler job id, and the fixed training
// configuration passed through with --config.
func DefaultConfig() Config {
	return Config{
		LogLevel:    "info",
		SbatchBin:   "sbatch",
		HistoryPath: DefaultHistoryPath,
		Job: JobConfig{
			Name:      "3dunet",
			Partition: "gpu",
			Nodes:     1,
			Gpus:      1,
			Stdout:    "log.%j.out",
			Stderr:    "log.%j.err",
		},
		Env: EnvConfig{
			Module:   "cuda",
			CondaEnv: "3dunet",
		},
		Train: TrainConfig{
			Python:     "python",
			Script:     "train.py",
			ConfigPath: "resources/train_config_ce.yaml",
		},
		Monitor: MonitorConfig{
			Port:     9090,
			Interval: 5,
		},
	}
}
