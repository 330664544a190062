// package main is the entry point for the issuectl tool
package main

import (
	"log/slog"
	"os"

	"github.com/alan/issuectl/cmd/comments"
	configcmd "github.com/alan/issuectl/cmd/config"
	"github.com/alan/issuectl/cmd/issues"
	"github.com/alan/issuectl/cmd/labels"
	"github.com/alan/issuectl/cmd/smoke"
	"github.com/alan/issuectl/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	var configFile string
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:   "issuectl",
		Short: "A CLI tool for working with issues, labels and comments of a GitHub repository",
		Long: `issuectl reads and writes the issues, labels and comments of a single
repository through the GitHub REST API. The target repository is read from a
YAML (or TOML) configuration file and credentials from the environment.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogger(logLevel, logFormat)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "issuectl.yaml", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "text", "Log format (text, json)")

	rootCmd.AddCommand(configcmd.NewConfigCmd(&configFile, config.LoadConfig, config.SaveConfig))
	rootCmd.AddCommand(issues.NewIssuesCmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(labels.NewLabelsCmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(comments.NewCommentsCmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(smoke.NewSmokeCmd(&configFile, config.LoadConfig))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogger logs to stderr so that json and yaml output on stdout stays parseable
func setupLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}

	slog.SetDefault(slog.New(handler))
}
