package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/habits/cmd/habits/cmd"
	"github.com/templui/habits/internal/config"
	"github.com/templui/habits/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Options{
		Dev:       cfg.IsDevelopment(),
		SentryDSN: cfg.SentryDSN,
		LogFile:   cfg.LogFile,
		Output:    os.Stderr,
	})

	rootCmd := &cobra.Command{
		Use:          "habits",
		Short:        "Operator tools for the habits service",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd(cfg))
	rootCmd.AddCommand(cmd.DigestCmd(cfg))
	rootCmd.AddCommand(cmd.ExportCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
