package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dotse/slug"
	"github.com/spf13/cobra"
)

var (
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "hllstats",
	Short: "Hell Let Loose log statistics tool",
	Long: "Reconstruct per-player and per-match combat statistics from Hell Let Loose\n" +
		"server log events, aggregate them across matches, and render scoreboards.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".hllstats", "sessions.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

func setupLogger() {
	opts := slug.HandlerOptions{
		HandlerOptions: slog.HandlerOptions{
			Level: parseLevel(logLevel),
		},
	}
	slog.SetDefault(slog.New(slug.NewHandler(opts, os.Stderr)))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
