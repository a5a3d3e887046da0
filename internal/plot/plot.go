// Package plot builds the primary scatter plot: one marker per entity of a
// single time slice, sized by population and labelled when large.
package plot

import (
	"errors"
	"math"

	"github.com/kpumuk/gapscope/internal/dataset"
	"github.com/kpumuk/gapscope/internal/extent"
	"github.com/kpumuk/gapscope/internal/format"
	"github.com/kpumuk/gapscope/internal/mathutil"
	"github.com/kpumuk/gapscope/internal/scale"
	"github.com/kpumuk/gapscope/internal/scene"
)

// ErrNotLoaded is returned when a render is requested before data arrived.
var ErrNotLoaded = errors.New("data not loaded")

// Padding widens an axis extent below and above the data.
type Padding struct {
	Lo float64 `koanf:"lo"`
	Hi float64 `koanf:"hi"`
}

// Options are the presentation parameters of the primary plot.
type Options struct {
	Width  float64
	Height float64
	// XRange and YRange are the pixel ranges of the axes. YRange is
	// inverted (Lo is the bottom edge).
	XRange scale.Range
	YRange scale.Range
	XPad   Padding
	YPad   Padding

	// RadiusScale is K in log(size*K/maxSize).
	RadiusScale float64
	MinRadius   float64
	// LabelThreshold is the size from which a marker gets a text label.
	LabelThreshold float64
	// LabelOffset shifts labels right of their marker, in pixels.
	LabelOffset float64
	MaxTicks    int

	Title  string
	XTitle string
	YTitle string
}

// DefaultOptions returns the 1000x750 layout.
func DefaultOptions() Options {
	return Options{
		Width:          1000,
		Height:         750,
		XRange:         scale.Range{Lo: 50, Hi: 950},
		YRange:         scale.Range{Lo: 700, Hi: 50},
		XPad:           Padding{Lo: 0, Hi: 2},
		YPad:           Padding{Lo: 5, Hi: 5},
		RadiusScale:    100000,
		MinRadius:      1,
		LabelThreshold: 1e8,
		LabelOffset:    12,
		MaxTicks:       10,
		Title:          "Fertility vs. Life Expectancy",
		XTitle:         "Fertility",
		YTitle:         "Life Expectancy",
	}
}

// Fit computes the padded extents of rows and builds the scale pair. A
// degenerate axis falls back to scale.Flat; check Pair.X.IsFlat and
// Pair.Y.IsFlat to detect it.
func Fit(rows []dataset.Row, o Options) (scale.Pair, error) {
	xs := extent.Project(rows, func(r dataset.Row) float64 { return r.MetricX })
	ys := extent.Project(rows, func(r dataset.Row) float64 { return r.MetricY })

	xDomain, err := extent.WithPadding(xs, o.XPad.Lo, o.XPad.Hi)
	if err != nil {
		return scale.Pair{}, err
	}
	yDomain, err := extent.WithPadding(ys, o.YPad.Lo, o.YPad.Hi)
	if err != nil {
		return scale.Pair{}, err
	}
	return scale.Pair{
		X: scale.LinearOrFlat(xDomain, o.XRange),
		Y: scale.LinearOrFlat(yDomain, o.YRange),
	}, nil
}

// Radius returns log(size*k/maxSize), floored at minRadius. Sizes at or below
// maxSize/k would give a non-positive (or undefined) logarithm.
func Radius(size, maxSize, k, minRadius float64) float64 {
	if size <= 0 || maxSize <= 0 || k <= 0 {
		return minRadius
	}
	r := math.Log(size * k / maxSize)
	if !mathutil.Finite(r) || r < minRadius {
		return minRadius
	}
	return r
}

// Build describes the plot of rows under pair. Radii are relative to the
// largest size among rows, so they are only comparable within one slice.
func Build(rows []dataset.Row, pair scale.Pair, o Options) scene.Scene {
	s := scene.Scene{Width: o.Width, Height: o.Height}
	s.Add(axes(pair, o)...)
	s.Add(titles(o)...)

	maxSize := 0.0
	for _, r := range rows {
		maxSize = max(maxSize, r.Size)
	}

	labelX := pair.LabelX(o.LabelOffset)
	for _, r := range rows {
		x, y := pair.Point(r.MetricX, r.MetricY)
		s.Add(scene.Element{
			Kind:   scene.KindMarker,
			Entity: r.Entity,
			At:     scene.Point{X: x, Y: y},
			Radius: Radius(r.Size, maxSize, o.RadiusScale, o.MinRadius),
		})
	}
	for _, r := range rows {
		if r.Size < o.LabelThreshold {
			continue
		}
		s.Add(scene.Element{
			Kind:   scene.KindLabel,
			Entity: r.Entity,
			At:     scene.Point{X: labelX.Map(r.MetricX), Y: pair.Y.Map(r.MetricY)},
			Text:   r.Entity,
		})
	}
	return s
}

// Render clears surface and draws the plot of rows.
func Render(surface scene.Surface, rows []dataset.Row, pair scale.Pair, o Options) {
	scene.Render(surface, Build(rows, pair, o))
}

func axes(pair scale.Pair, o Options) []scene.Element {
	bottom := &scene.Axis{
		Orient: scene.OrientBottom,
		Cross:  o.YRange.Lo,
		From:   o.XRange.Lo,
		To:     o.XRange.Hi,
		Ticks:  ticks(pair.X, o.MaxTicks),
	}
	left := &scene.Axis{
		Orient: scene.OrientLeft,
		Cross:  o.XRange.Lo,
		From:   o.YRange.Lo,
		To:     o.YRange.Hi,
		Ticks:  ticks(pair.Y, o.MaxTicks),
	}
	return []scene.Element{
		{Kind: scene.KindAxis, Axis: bottom},
		{Kind: scene.KindAxis, Axis: left},
	}
}

func ticks(s scale.Linear, maxTicks int) []scene.Tick {
	values := s.Ticks(maxTicks)
	out := make([]scene.Tick, len(values))
	for i, v := range values {
		out[i] = scene.Tick{Pos: s.Map(v), Label: format.Tick(v)}
	}
	return out
}

func titles(o Options) []scene.Element {
	var out []scene.Element
	if o.Title != "" {
		out = append(out, scene.Element{Kind: scene.KindTitle, At: scene.Point{X: o.Width * 0.4, Y: 20}, Text: o.Title})
	}
	if o.XTitle != "" {
		out = append(out, scene.Element{Kind: scene.KindTitle, At: scene.Point{X: o.Width / 2, Y: o.Height - 10}, Text: o.XTitle})
	}
	if o.YTitle != "" {
		out = append(out, scene.Element{Kind: scene.KindTitle, At: scene.Point{X: 15, Y: o.Height * 8 / 15}, Text: o.YTitle, Rotate: -90})
	}
	return out
}
