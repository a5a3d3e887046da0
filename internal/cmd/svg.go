package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kpumuk/gapscope/internal/dataset"
	"github.com/kpumuk/gapscope/internal/hover"
	"github.com/kpumuk/gapscope/internal/logger"
	"github.com/kpumuk/gapscope/internal/scene"
	"github.com/kpumuk/gapscope/internal/surface/svgsurface"
)

func newSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Export the plot as an SVG document.",
		Long: "Export the plot for one year as an SVG document.\n\n" +
			"With --hover the drill-down chart of that country is exported instead.",
		Args: cobra.NoArgs,
	}
	cmd.Flags().String("hover", "", "export the drill-down chart of this entity")
	cmd.Flags().StringP("out", "o", "", "output file (default stdout)")

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
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return fmt.Errorf("parse out flag: %w", err)
		}

		t, err := dataset.Load(cmd.Context(), cfg.Source, cfg.Columns)
		if err != nil {
			return err
		}
		scenes, err := buildScenes(t, cfg, entity)
		if err != nil {
			return err
		}
		logger.Get().Named("svg").Info(cmd.Context(), "exporting",
			logger.String("source", cfg.Source),
			logger.String("hover", entity),
		)

		if out == "" {
			return writeSVG(cmd.OutOrStdout(), scenes, entity != "")
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if err := writeSVG(f, scenes, entity != ""); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}
	return cmd
}

// writeSVG encodes the last scene. A drill-down chart is drawn at tooltip
// opacity.
func writeSVG(w io.Writer, scenes []scene.Scene, tooltip bool) error {
	opts := []svgsurface.Option{}
	if tooltip {
		opts = append(opts, svgsurface.WithOpacity(hover.Opacity))
	}
	s := svgsurface.New(opts...)
	s.Clear()
	s.Draw(scenes[len(scenes)-1])
	return s.Encode(w)
}
