// Package config defines gapscope configuration and how it is loaded.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kpumuk/gapscope/internal/dataset"
	"github.com/kpumuk/gapscope/internal/drilldown"
	"github.com/kpumuk/gapscope/internal/plot"
	"github.com/kpumuk/gapscope/internal/scale"
)

// Size is a width and height in logical pixels.
type Size struct {
	Width  float64 `koanf:"width"`
	Height float64 `koanf:"height"`
}

// Padding widens the data extents of the primary plot.
type Padding struct {
	XLo float64 `koanf:"x_lo"`
	XHi float64 `koanf:"x_hi"`
	YLo float64 `koanf:"y_lo"`
	YHi float64 `koanf:"y_hi"`
}

// Config contains process configuration.
type Config struct {
	// Source is a CSV file path or an http(s) URL.
	Source string `koanf:"source"`
	// Year is the initial time slice. Zero selects the latest one present.
	Year    int             `koanf:"year"`
	Columns dataset.Columns `koanf:"columns"`

	Canvas  Size    `koanf:"canvas"`
	Tooltip Size    `koanf:"tooltip"`
	Padding Padding `koanf:"padding"`

	RadiusScale    float64 `koanf:"radius_scale"`
	MinRadius      float64 `koanf:"min_radius"`
	LabelThreshold float64 `koanf:"label_threshold"`
	LabelOffset    float64 `koanf:"label_offset"`
	SizeDivisor    float64 `koanf:"size_divisor"`

	// FadeDelay is how long the tooltip stays after the pointer leaves.
	FadeDelay time.Duration `koanf:"fade_delay"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFile receives log records. Empty discards them.
	LogFile string `koanf:"log_file"`
}

// New returns a Config with defaults.
func New() *Config {
	p := plot.DefaultOptions()
	d := drilldown.DefaultOptions()
	return &Config{
		Source:         "gapminder.csv",
		Columns:        dataset.DefaultColumns(),
		Canvas:         Size{Width: p.Width, Height: p.Height},
		Tooltip:        Size{Width: d.Width, Height: d.Height},
		Padding:        Padding{XLo: p.XPad.Lo, XHi: p.XPad.Hi, YLo: p.YPad.Lo, YHi: p.YPad.Hi},
		RadiusScale:    p.RadiusScale,
		MinRadius:      p.MinRadius,
		LabelThreshold: p.LabelThreshold,
		LabelOffset:    p.LabelOffset,
		SizeDivisor:    d.SizeDivisor,
		FadeDelay:      250 * time.Millisecond,
		LogLevel:       "info",
	}
}

// Validate reports every problem with c, joined.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Source == "" {
		invalid("source must not be empty")
	}
	if c.Canvas.Width <= 2*plotMargin || c.Canvas.Height <= 2*plotMargin {
		invalid("canvas must be larger than %dx%d, got %gx%g", 2*plotMargin, 2*plotMargin, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Tooltip.Width < drilldown.MinWidth || c.Tooltip.Width > drilldown.MaxWidth {
		invalid("tooltip.width must be within [%d, %d], got %g", drilldown.MinWidth, drilldown.MaxWidth, c.Tooltip.Width)
	}
	if c.Tooltip.Height < drilldown.MinHeight || c.Tooltip.Height > drilldown.MaxHeight {
		invalid("tooltip.height must be within [%d, %d], got %g", drilldown.MinHeight, drilldown.MaxHeight, c.Tooltip.Height)
	}
	for name, col := range map[string]string{
		"entity": c.Columns.Entity,
		"time":   c.Columns.Time,
		"x":      c.Columns.X,
		"y":      c.Columns.Y,
		"size":   c.Columns.Size,
	} {
		if col == "" {
			invalid("columns.%s must not be empty", name)
		}
	}
	if c.RadiusScale <= 0 {
		invalid("radius_scale must be positive")
	}
	if c.MinRadius <= 0 {
		invalid("min_radius must be positive, got %g", c.MinRadius)
	}
	if c.SizeDivisor <= 0 {
		invalid("size_divisor must be positive")
	}
	if c.FadeDelay < 0 {
		invalid("fade_delay must not be negative")
	}
	return errors.Join(errs...)
}

// plotMargin is the gap between the canvas edge and the plot axes.
const plotMargin = 50

// PlotOptions returns the primary plot layout for c. The axis ranges keep
// plotMargin inside the canvas.
func (c *Config) PlotOptions() plot.Options {
	o := plot.DefaultOptions()
	o.Width = c.Canvas.Width
	o.Height = c.Canvas.Height
	o.XRange = scale.Range{Lo: plotMargin, Hi: c.Canvas.Width - plotMargin}
	o.YRange = scale.Range{Lo: c.Canvas.Height - plotMargin, Hi: plotMargin}
	o.XPad = plot.Padding{Lo: c.Padding.XLo, Hi: c.Padding.XHi}
	o.YPad = plot.Padding{Lo: c.Padding.YLo, Hi: c.Padding.YHi}
	o.RadiusScale = c.RadiusScale
	o.MinRadius = c.MinRadius
	o.LabelThreshold = c.LabelThreshold
	o.LabelOffset = c.LabelOffset
	return o
}

// DrilldownOptions returns the tooltip chart layout for c.
func (c *Config) DrilldownOptions() drilldown.Options {
	o := drilldown.DefaultOptions()
	o.Width = c.Tooltip.Width
	o.Height = c.Tooltip.Height
	o.SizeDivisor = c.SizeDivisor
	return o.Clamped()
}
