package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stg-tools/stg/wire"
)

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <input.json> <output.stg>",
		Short: "Encode a JSON graph document as canonical wire bytes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			encoded, err := wire.FromJSON(data)
			if err != nil {
				return fmt.Errorf("encoding %s: %w", args[0], err)
			}
			if err := os.WriteFile(args[1], encoded, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[1], err)
			}
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <input.stg> <output.json>",
		Short: "Decode canonical wire bytes into a readable JSON document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			asJSON, err := wire.ToJSON(data)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			if err := os.WriteFile(args[1], asJSON, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[1], err)
			}
			return nil
		},
	}
}
