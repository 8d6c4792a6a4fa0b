package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/axellelanca/qrlinks/internal/config"
	"github.com/axellelanca/qrlinks/internal/logger"
)

// Cfg is the configuration loaded before any command runs.
var Cfg *config.Config

// Log is the process logger, built from Cfg.
var Log zerolog.Logger

// RootCmd is the base command. Subcommands (run-server, migrate, create, stats,
// disable, enable, quota, token) register themselves from their own init().
var RootCmd = &cobra.Command{
	Use:   "qrlinks",
	Short: "Dynamic QR short links with scan analytics",
	Long: `qrlinks serves short redirect links (the target of printed QR codes),
records one analytics event per scan and lets owners manage their links.`,
	SilenceUsage: true,
}

// Execute runs the command tree. It is called from main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig loads the configuration; on failure it warns and falls back to defaults.
func initConfig() {
	var err error
	Cfg, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: problem loading configuration: %v. Using default values.\n", err)
		Cfg = config.Default()
	}
	Log = logger.New(Cfg.Log.Level, Cfg.Log.Format)
}
