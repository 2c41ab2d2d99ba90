package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/clockface/internal/config"
	"github.com/mj1618/clockface/internal/logging"
	"github.com/mj1618/clockface/internal/output"
	"github.com/mj1618/clockface/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "clockface",
	Short:         "Render an analog clock face",
	Long:          "A CLI tool that renders a skeuomorphic analog clock to images, icon sets and animations, and serves frames over MCP.",
	SilenceUsage:  true,
}

// skipConfigLoad marks commands that must run even when the config file
// is missing or invalid.
const skipConfigLoad = "skipConfigLoad"

var (
	// appConfig is loaded in PersistentPreRunE; commands read defaults from it.
	appConfig = config.Default()
	// appLogger writes to stderr; stdout carries results.
	appLogger = zap.NewNop()
)

func Execute() {
	defer func() { _ = appLogger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags (e.g. render --format png/jpg).
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		cfg := config.Default()
		if cmd.Annotations[skipConfigLoad] == "" {
			if cfg, err = config.Load(configPath()); err != nil {
				return err
			}
		}
		if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
			cfg.Log.Level = level
		}
		logger, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		appConfig, appLogger = cfg, logger
		appLogger.Debug("config loaded", zap.String("path", configPath()))
		return nil
	}
}

// configPath returns the --config value or the default location.
func configPath() string {
	if p, _ := rootCmd.PersistentFlags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultPath()
}
