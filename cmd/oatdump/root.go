package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/oatkit/internal/logging"
	"github.com/joshuapare/oatkit/pkg/oat"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	noColor     bool
	samsung     bool
	validateDex bool
	logDir      string
)

// logger is replaced in PersistentPreRunE once the flags are known.
var (
	logger   = slog.New(slog.DiscardHandler)
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "oatdump",
	Short: "Inspect Android OAT files and extract their DEX images",
	Long: `oatdump parses the OAT container dex2oat writes inside an ELF shared
object, reports its header and embedded DEX files, and carves the DEX
images back out. It also compares DEX databases to list the classes a
device adds on top of a baseline build.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug traces")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		BoolVar(&samsung, "samsung", false, "Expect the extra methods_offsets_ field of Samsung builds")
	rootCmd.PersistentFlags().
		BoolVar(&validateDex, "validate-dex", false, "Check the DEX magic of every embedded image")
	rootCmd.PersistentFlags().
		StringVar(&logDir, "log-dir", "", "Write logs to a dated file in this directory")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging() error {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	l, closeFn, err := logging.New(logging.Options{
		Writer: os.Stderr,
		Level:  level,
		JSON:   jsonOut,
		Dir:    logDir,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logger, closeLog = l, closeFn
	return nil
}

// oatOptions builds the parse options from the global flags.
func oatOptions() oat.Options {
	return oat.Options{
		SamsungMode:      samsung,
		ValidateDexMagic: validateDex,
		Logger:           logger,
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
