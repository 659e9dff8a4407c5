package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/stg-tools/stg/wire"
)

func newWatchCmd(debug, noColor *bool) *cobra.Command {
	var ignoreConfigPath string

	cmd := &cobra.Command{
		Use:   "watch <left.stg> <right.stg>",
		Short: "Re-run diff whenever either input file changes on disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], args[1], ignoreConfigPath, *debug, *noColor)
		},
	}
	cmd.Flags().StringVar(&ignoreConfigPath, "ignore-config", "", "path to a JSON file listing ignore flags to suppress")
	return cmd
}

// newCancellableContext returns a context cancelled on SIGINT/SIGTERM, so
// Ctrl-C aborts cleanly between passes without the core algorithms ever
// seeing a context themselves (see the no-blocking-no-cancellation note
// in SPEC_FULL.md's concurrency section). Grounded on cli/main.go's
// function of the same name.
func newCancellableContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()
	return ctx, cancel
}

func runWatch(cmd *cobra.Command, leftPath, rightPath, ignoreConfigPath string, debug, noColor bool) error {
	logger := newLogger(debug)
	out := cmd.OutOrStdout()

	initial, err := os.ReadFile(leftPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", leftPath, err)
	}
	digest := wire.Digest(initial)
	sessionID, err := wire.SessionID(digest)
	if err != nil {
		return fmt.Errorf("deriving watch session id: %w", err)
	}
	logger = logger.With("session", sessionID)
	fmt.Fprintf(out, "watch session %s: watching %s and %s\n", sessionID, leftPath, rightPath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, p := range []string{leftPath, rightPath} {
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
	}

	ctx, cancel := newCancellableContext()
	defer cancel()

	runOnce := func() {
		if err := runDiff(cmd, leftPath, rightPath, ignoreConfigPath, debug, noColor); err != nil {
			if ece, ok := err.(*exitCodeError); ok {
				logger.Info(ece.Error())
			} else {
				logger.Error(err.Error())
			}
		}
	}

	runOnce()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				logger.Debug("input changed, re-running diff", "file", event.Name)
				runOnce()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", werr)
		}
	}
}
