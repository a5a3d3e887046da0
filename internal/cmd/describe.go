package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpumuk/gapscope/internal/dataset"
)

const (
	formatTerminal = "terminal256"
	formatNoop     = "noop"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the scene description as JSON.",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().String("hover", "", "also describe the drill-down chart of this entity")
	cmd.Flags().String("format", formatTerminal, "output format: terminal256 or noop")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, closeLog, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closeLog()

		entity, err := cmd.Flags().GetString("hover")
		if err != nil {
			return fmt.Errorf("parse hover flag: %w", err)
		}
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("parse format flag: %w", err)
		}
		if format != formatTerminal && format != formatNoop {
			return fmt.Errorf("unknown format %q", format)
		}

		t, err := dataset.Load(cmd.Context(), cfg.Source, cfg.Columns)
		if err != nil {
			return err
		}
		scenes, err := buildScenes(t, cfg, entity)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(scenes, "", "  ")
		if err != nil {
			return fmt.Errorf("encode scenes: %w", err)
		}
		text := string(data)
		if format == formatTerminal {
			text = highlightJSON(text, defaultJSONStyles())
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	return cmd
}
