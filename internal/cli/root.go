package cli

import (
	"fmt"
	"os"

	"github.com/myai-oss/memsync/internal/config"
	"github.com/myai-oss/memsync/internal/service"
	"github.com/myai-oss/memsync/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "memsync",
	Short: "Personal AI memory, synchronized everywhere",
	Long: `memsync - one memory document, every AI assistant.

Keeps a user-editable memory template synchronized across assistant
configuration files (CLAUDE.md, Windsurf rules, Cursor rules, ...).
Edit the template once and fan it out to every destination.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./memsync.yaml, then ~/.memsync/memsync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(sectionCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(platformsCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.memsync")
		}
		viper.SetConfigName("memsync")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig reads the configuration viper discovered, falling back
// to ./memsync.yaml (or defaults when no file exists at all).
func loadConfig() (*config.Config, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return config.LoadFile(used)
	}
	return config.Load(".")
}

// loadService builds the engine from the discovered configuration.
// Callers must Close it.
func loadService() (*service.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	logger := telemetry.NewLogger(level, cfg.Logging.Format)
	if cfg.Logging.File != "" {
		if err := logger.WithFile(cfg.Logging.File); err != nil {
			return nil, err
		}
	}

	return service.New(cfg, logger)
}
