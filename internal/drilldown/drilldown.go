// Package drilldown builds the linked line chart of one entity's size
// across every time slice.
package drilldown

import (
	"cmp"
	"slices"

	"github.com/kpumuk/gapscope/internal/dataset"
	"github.com/kpumuk/gapscope/internal/extent"
	"github.com/kpumuk/gapscope/internal/format"
	"github.com/kpumuk/gapscope/internal/mathutil"
	"github.com/kpumuk/gapscope/internal/scale"
	"github.com/kpumuk/gapscope/internal/scene"
)

// Tooltip surface bounds in logical pixels.
const (
	MinWidth  = 150
	MaxWidth  = 280
	MinHeight = 150
	MaxHeight = 300
)

// Options are the presentation parameters of the drill-down chart.
type Options struct {
	Width  float64
	Height float64
	// SizeDivisor rescales Size before fitting, e.g. 1e6 for millions.
	SizeDivisor float64
	MaxTicks    int
	XTitle      string
	YTitle      string
}

// DefaultOptions returns the largest tooltip layout.
func DefaultOptions() Options {
	return Options{
		Width:       MaxWidth,
		Height:      MaxHeight,
		SizeDivisor: 1_000_000,
		MaxTicks:    5,
		XTitle:      "Year",
		YTitle:      "Population (millions)",
	}
}

// Clamped returns o with its dimensions forced into the tooltip bounds.
func (o Options) Clamped() Options {
	o.Width = mathutil.Clamp(o.Width, MinWidth, MaxWidth)
	o.Height = mathutil.Clamp(o.Height, MinHeight, MaxHeight)
	return o
}

// XRange returns the pixel range of the time axis.
func (o Options) XRange() scale.Range {
	return scale.Range{Lo: 45, Hi: o.Width - 15}
}

// YRange returns the inverted pixel range of the size axis.
func (o Options) YRange() scale.Range {
	return scale.Range{Lo: o.Height - 35, Hi: 25}
}

// Scaled returns the size of r divided by the configured divisor.
func (o Options) Scaled(r dataset.Row) float64 {
	if o.SizeDivisor == 0 {
		return r.Size
	}
	return r.Size / o.SizeDivisor
}

// Fit computes extents over the time slices and the rescaled sizes of rows
// and builds the scale pair. It fails with extent.ErrEmptyInput when rows is
// empty; a single time slice or a constant size falls back to scale.Flat.
func Fit(rows []dataset.Row, o Options) (scale.Pair, error) {
	times := extent.Project(rows, func(r dataset.Row) float64 { return float64(r.TimeSlice) })
	sizes := extent.Project(rows, o.Scaled)

	xDomain, err := extent.Of(times)
	if err != nil {
		return scale.Pair{}, err
	}
	yDomain, err := extent.Of(sizes)
	if err != nil {
		return scale.Pair{}, err
	}
	return scale.Pair{
		X: scale.LinearOrFlat(xDomain, o.XRange()),
		Y: scale.LinearOrFlat(yDomain, o.YRange()),
	}, nil
}

// Sorted returns a copy of rows ordered by time slice ascending.
func Sorted(rows []dataset.Row) []dataset.Row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b dataset.Row) int {
		return cmp.Compare(a.TimeSlice, b.TimeSlice)
	})
	return out
}

// Build describes the drill-down chart. Every element is tagged with the
// entity so a later pass for another entity can be told apart.
func Build(rows []dataset.Row, pair scale.Pair, o Options) scene.Scene {
	s := scene.Scene{Width: o.Width, Height: o.Height}
	if len(rows) == 0 {
		return s
	}
	sorted := Sorted(rows)
	entity := sorted[0].Entity
	xr, yr := o.XRange(), o.YRange()

	s.Add(
		scene.Element{
			Kind:   scene.KindAxis,
			Entity: entity,
			Axis: &scene.Axis{
				Orient: scene.OrientBottom,
				Cross:  yr.Lo,
				From:   xr.Lo,
				To:     xr.Hi,
				Ticks:  ticks(pair.X, o.MaxTicks),
			},
		},
		scene.Element{
			Kind:   scene.KindAxis,
			Entity: entity,
			Axis: &scene.Axis{
				Orient: scene.OrientLeft,
				Cross:  xr.Lo,
				From:   yr.Lo,
				To:     yr.Hi,
				Ticks:  ticks(pair.Y, o.MaxTicks),
			},
		},
	)

	points := make([]scene.Point, len(sorted))
	for i, r := range sorted {
		x, y := pair.Point(float64(r.TimeSlice), o.Scaled(r))
		points[i] = scene.Point{X: x, Y: y}
	}
	s.Add(scene.Element{Kind: scene.KindPath, Entity: entity, At: points[0], Points: points})

	s.Add(scene.Element{Kind: scene.KindTitle, Entity: entity, At: scene.Point{X: o.Width / 2, Y: 14}, Text: entity})
	if o.XTitle != "" {
		s.Add(scene.Element{Kind: scene.KindTitle, Entity: entity, At: scene.Point{X: o.Width / 2, Y: o.Height - 4}, Text: o.XTitle})
	}
	if o.YTitle != "" {
		s.Add(scene.Element{Kind: scene.KindTitle, Entity: entity, At: scene.Point{X: 10, Y: o.Height / 2}, Text: o.YTitle, Rotate: -90})
	}
	return s
}

// Render clears surface (axes, labels and paths of any earlier entity) and
// draws the chart for rows.
func Render(surface scene.Surface, rows []dataset.Row, pair scale.Pair, o Options) {
	scene.Render(surface, Build(rows, pair, o))
}

func ticks(s scale.Linear, maxTicks int) []scene.Tick {
	values := s.Ticks(maxTicks)
	out := make([]scene.Tick, len(values))
	for i, v := range values {
		out[i] = scene.Tick{Pos: s.Map(v), Label: format.Tick(v)}
	}
	return out
}
