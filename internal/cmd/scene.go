package cmd

import (
	"errors"
	"fmt"

	"github.com/kpumuk/gapscope/internal/config"
	"github.com/kpumuk/gapscope/internal/dataset"
	"github.com/kpumuk/gapscope/internal/drilldown"
	"github.com/kpumuk/gapscope/internal/plot"
	"github.com/kpumuk/gapscope/internal/scene"
)

var (
	// ErrUnknownTimeSlice is returned when the requested year is not in the data.
	ErrUnknownTimeSlice = errors.New("time slice not in data")
	// ErrUnknownEntity is returned when the hovered entity has no rows.
	ErrUnknownEntity = errors.New("entity not in data")
)

// pickYear returns want when the table has it, or the latest time slice when
// want is zero.
func pickYear(t *dataset.Table, want int) (int, error) {
	years := t.TimeSlices()
	if len(years) == 0 {
		return 0, dataset.ErrEmptyData
	}
	if want == 0 {
		return years[len(years)-1], nil
	}
	if !t.HasTimeSlice(want) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTimeSlice, want)
	}
	return want, nil
}

// buildScenes builds the primary plot for the configured year and, when
// hover is not empty, the drill-down chart of that entity.
func buildScenes(t *dataset.Table, cfg *config.Config, hover string) ([]scene.Scene, error) {
	year, err := pickYear(t, cfg.Year)
	if err != nil {
		return nil, err
	}

	rows := t.Slice(year)
	opts := cfg.PlotOptions()
	opts.Title = fmt.Sprintf("%s (%d)", opts.Title, year)
	pair, err := plot.Fit(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("fit plot %d: %w", year, err)
	}
	scenes := []scene.Scene{plot.Build(rows, pair, opts)}

	if hover == "" {
		return scenes, nil
	}
	series := t.Series(hover)
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, hover)
	}
	dopts := cfg.DrilldownOptions()
	dpair, err := drilldown.Fit(series, dopts)
	if err != nil {
		return nil, fmt.Errorf("fit drill-down %q: %w", hover, err)
	}
	return append(scenes, drilldown.Build(series, dpair, dopts)), nil
}
