// Command stgdiff is a demo harness exercising the whole pipeline end to
// end: it loads two wire-encoded graphs, resolves and deduplicates each,
// diffs them, and prints a summary. It also exposes the wire codec
// directly (encode/decode) and a watch mode that re-diffs whenever either
// input file changes on disk.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stg-tools/stg/graph"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	var (
		debug   bool
		noColor bool
	)

	// A structural invariant violation is a programmer error in how a
	// graph was built, not something any subcommand can recover from
	// meaningfully; it panics deep in the core packages (see graph.violate)
	// and is only ever caught here, at the outermost boundary, mirroring
	// how runtime/cli/harness.go's RunE wiring turns a command failure
	// into a clean top-level error instead of a raw stack trace.
	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(*graph.InvariantViolation); ok {
				fmt.Fprintf(os.Stderr, "%s %s\n", colorize("Error:", colorRed, !noColor), iv.Error())
				exitCode = 1
				return
			}
			panic(r)
		}
	}()

	rootCmd := &cobra.Command{
		Use:           "stgdiff",
		Short:         "Compare Symbol-Type Graphs for ABI-relevant changes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging and a metrics report on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newDiffCmd(&debug, &noColor),
		newEncodeCmd(),
		newDecodeCmd(),
		newWatchCmd(&debug, &noColor),
	)

	if err := rootCmd.Execute(); err != nil {
		var ece *exitCodeError
		if !errors.As(err, &ece) {
			fmt.Fprintf(os.Stderr, "%s %s\n", colorize("Error:", colorRed, !noColor), err.Error())
		}
		return asExitCode(err)
	}
	return 0
}

// newLogger returns a slog.Logger writing to stderr, at Debug level when
// debug is set and Warn otherwise — matching resolve.Resolve's use of
// slog.Warn for conflict diagnostics, which should be visible by default.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// exitCodeError lets a subcommand's RunE report a specific process exit
// code distinct from the generic failure path (1), without os.Exit-ing
// from inside RunE itself and skipping deferred recovery.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

func asExitCode(err error) int {
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return ece.code
	}
	return 1
}
