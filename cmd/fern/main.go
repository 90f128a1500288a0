// Command fern drives the Fern front-end pipeline: lex, parse, validate,
// type-check, and generate SSA IR, following the shape of the teacher
// CLI's cobra root command (cli/main.go) without its vault/secret-scrubbing
// machinery, which has no analogue in a compiler front end.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fern-lang/fern/internal/config"
	"github.com/spf13/cobra"
)

var (
	colorMode  string
	quiet      bool
	verbose    bool
	sourceDirs []string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := &cobra.Command{
		Use:           "fern",
		Short:         "Fern compiler front end",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loadManifest(cmd)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "auto|always|never")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newWatchCmd())

	wrapUsageErrors(rootCmd)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if _, ok := err.(*usageError); ok {
			return 2
		}
		return 1
	}
	return lastExitCode
}

// loadManifest reads the nearest fern.json (if any) and applies it: the
// manifest's Color becomes the default color mode unless the user passed
// --color explicitly, and SourceDirs feeds the parser's import resolution
// (see internal/parser.ResolveImports, called from each subcommand).
func loadManifest(cmd *cobra.Command) {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	m, err := config.Load(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fern: %s\n", err)
		m = &config.Manifest{Color: "auto", SourceDirs: []string{cwd}}
	}
	if !cmd.Flags().Changed("color") {
		colorMode = m.Color
	}
	sourceDirs = m.SourceDirs
}

// wrapUsageErrors makes every subcommand's own Args validator (set via
// cobra.ExactArgs in each newXCmd) surface as a *usageError, so wrong
// argument counts map to exit code 2 instead of the generic diagnostic
// exit code 1 (spec.md §6: "2 CLI misuse"). Unknown or malformed flags
// become a *usageError through the root's flag error function (set in
// run), which subcommands inherit. An unknown subcommand name is reported
// by cobra as a plain error and exits with code 1.
func wrapUsageErrors(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		args := sub.Args
		if args == nil {
			continue
		}
		sub.Args = func(c *cobra.Command, a []string) error {
			if err := args(c, a); err != nil {
				return &usageError{msg: err.Error()}
			}
			return nil
		}
	}
}

// usageError marks a CLI misuse (wrong args, bad flags) for exit code 2
// rather than the pipeline-diagnostic exit code 1 (spec.md §6).
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// lastExitCode is set by subcommand RunE handlers that need to distinguish
// "ran to completion with diagnostics" (1) from "succeeded" (0) without
// cobra treating a clean diagnostic report as a Go error.
var lastExitCode int

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
