package app

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"unet-submit/pkg/utils"
)

var (
	FlagConfigFilePath string
	GConfig            utils.Config
)

func NewSubmitCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "unet-submit",
		Short:   "submit and manage the 3D U-Net training batch job",
		Version: utils.GetVersion(),
	}

	// Initialize config
	cobra.OnInitialize(func() {
		// Use config file from the flag or search in the default paths
		if FlagConfigFilePath != "" {
			viper.SetConfigFile(FlagConfigFilePath)
		} else {
			viper.AddConfigPath(".")
			viper.AddConfigPath(utils.DefaultConfigDir)
			viper.SetConfigType("yaml")
			viper.SetConfigName("config")
		}

		setConfigDefaults()

		// Read and parse config file
		viper.ReadInConfig()
		// Initialize logger
		utils.InitLogger(utils.ParseLogLevel(viper.GetString("log-level")))

		if err := viper.Unmarshal(&GConfig); err != nil {
			logrus.Fatalf("Error parsing config file: %s", err)
		}

		logrus.Debugf("Using config:\n%+v", GConfig)
	})

	rootCmd.SetVersionTemplate(utils.VersionTemplate())
	// Specify config file path
	rootCmd.PersistentFlags().StringVarP(&FlagConfigFilePath, "config-file", "c", "", "Path to tool configuration file")

	// Other flags
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "Log level")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("partition", "", "Partition to submit to")
	viper.BindPFlag("job.partition", rootCmd.PersistentFlags().Lookup("partition"))

	rootCmd.PersistentFlags().String("job-name", "", "Job name")
	viper.BindPFlag("job.name", rootCmd.PersistentFlags().Lookup("job-name"))

	rootCmd.PersistentFlags().String("train-config", "", "Path to training configuration file")
	viper.BindPFlag("train.config", rootCmd.PersistentFlags().Lookup("train-config"))

	rootCmd.AddCommand(
		newRenderCmd(),
		newSubmitCmd(),
		newRunCmd(),
		newCancelCmd(),
		newStatusCmd(),
		newWatchCmd(),
		newHistoryCmd(),
	)

	return rootCmd
}

func setConfigDefaults() {
	defaults := utils.DefaultConfig()
	viper.SetDefault("log-level", defaults.LogLevel)
	viper.SetDefault("sbatch-bin", defaults.SbatchBin)
	viper.SetDefault("history-path", defaults.HistoryPath)
	viper.SetDefault("job.name", defaults.Job.Name)
	viper.SetDefault("job.partition", defaults.Job.Partition)
	viper.SetDefault("job.nodes", defaults.Job.Nodes)
	viper.SetDefault("job.gpus", defaults.Job.Gpus)
	viper.SetDefault("job.stdout", defaults.Job.Stdout)
	viper.SetDefault("job.stderr", defaults.Job.Stderr)
	viper.SetDefault("env.module", defaults.Env.Module)
	viper.SetDefault("env.conda-env", defaults.Env.CondaEnv)
	viper.SetDefault("train.python", defaults.Train.Python)
	viper.SetDefault("train.script", defaults.Train.Script)
	viper.SetDefault("train.config", defaults.Train.ConfigPath)
	viper.SetDefault("monitor.port", defaults.Monitor.Port)
	viper.SetDefault("monitor.interval", defaults.Monitor.Interval)
}
