package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stg-tools/stg/diff"
	"github.com/stg-tools/stg/metrics"
)

func newDiffCmd(debug, noColor *bool) *cobra.Command {
	var ignoreConfigPath string

	cmd := &cobra.Command{
		Use:   "diff <left.stg> <right.stg>",
		Short: "Compare two encoded graphs and report ABI-relevant differences",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], args[1], ignoreConfigPath, *debug, *noColor)
		},
	}
	cmd.Flags().StringVar(&ignoreConfigPath, "ignore-config", "", "path to a JSON file listing ignore flags to suppress")
	return cmd
}

func runDiff(cmd *cobra.Command, leftPath, rightPath, ignoreConfigPath string, debug, noColor bool) error {
	logger := newLogger(debug)
	m := metrics.New()

	mask, err := loadIgnoreConfig(ignoreConfigPath)
	if err != nil {
		return err
	}

	left, leftRoot, err := loadGraph(leftPath, logger, m)
	if err != nil {
		return err
	}
	right, rightRoot, err := loadGraph(rightPath, logger, m)
	if err != nil {
		return err
	}

	comparer := diff.NewCompare(left, right, diff.NewOptions(diff.WithIgnore(mask)), m)
	equals, _, err := comparer.Compare(leftRoot, rightRoot)
	if err != nil {
		return fmt.Errorf("comparing %s and %s: %w", leftPath, rightPath, err)
	}

	out := cmd.OutOrStdout()
	if equals {
		fmt.Fprintln(out, colorize("no ABI-relevant differences", colorGreen, !noColor))
	} else {
		n := printReport(out, left, right, comparer.Outcomes(), !noColor)
		fmt.Fprintf(out, "%d difference(s) found\n", n)
	}

	if debug {
		_ = m.Report(os.Stderr)
	}

	if !equals {
		return &exitCodeError{code: 1, err: fmt.Errorf("differences found between %s and %s", leftPath, rightPath)}
	}
	return nil
}
