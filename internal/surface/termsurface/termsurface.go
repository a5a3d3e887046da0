// Package termsurface draws scenes onto an ntcharts canvas. Logical pixel
// coordinates are scaled to terminal cells, and every marker cell is kept
// for pointer hit testing.
package termsurface

import (
	"math"

	"charm.land/lipgloss/v2"
	"github.com/NimbleMarkets/ntcharts/v2/canvas"
	"github.com/NimbleMarkets/ntcharts/v2/canvas/graph"

	"github.com/kpumuk/gapscope/internal/mathutil"
	"github.com/kpumuk/gapscope/internal/scene"
)

// Styles holds the visual styles of drawn elements.
type Styles struct {
	Axis   lipgloss.Style
	Tick   lipgloss.Style
	Marker lipgloss.Style
	Label  lipgloss.Style
	Path   lipgloss.Style
	Title  lipgloss.Style
}

// DefaultStyles returns unstyled defaults.
func DefaultStyles() Styles {
	return Styles{
		Axis:   lipgloss.NewStyle(),
		Tick:   lipgloss.NewStyle(),
		Marker: lipgloss.NewStyle(),
		Label:  lipgloss.NewStyle(),
		Path:   lipgloss.NewStyle(),
		Title:  lipgloss.NewStyle(),
	}
}

// Surface is a scene.Surface backed by a terminal canvas.
type Surface struct {
	styles  Styles
	cols    int
	rows    int
	logical scene.Point
	canvas  canvas.Model
	hits    map[cell]string
}

type cell struct {
	col, row int
}

// Option is used to set options in New.
type Option func(*Surface)

// New creates a surface of cols x rows cells showing a logical area of
// width x height pixels.
func New(cols, rows int, width, height float64, opts ...Option) *Surface {
	s := &Surface{
		styles:  DefaultStyles(),
		cols:    max(cols, 1),
		rows:    max(rows, 1),
		logical: scene.Point{X: width, Y: height},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Clear()
	return s
}

// WithStyles sets the element styles.
func WithStyles(st Styles) Option {
	return func(s *Surface) {
		s.styles = st
	}
}

// Size returns the surface size in cells.
func (s *Surface) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Clear implements scene.Surface.
func (s *Surface) Clear() {
	s.canvas = canvas.New(s.cols, s.rows, canvas.WithViewWidth(s.cols), canvas.WithViewHeight(s.rows))
	s.hits = make(map[cell]string)
}

// Draw implements scene.Surface.
func (s *Surface) Draw(sc scene.Scene) {
	s.drawAxes(sc.Filter(scene.KindAxis))
	for _, el := range sc.Elements {
		switch el.Kind {
		case scene.KindPath:
			s.drawPath(el.Points)
		case scene.KindMarker:
			s.drawMarker(el)
		case scene.KindLabel:
			col, row := s.cell(el.At)
			s.putString(col, row, el.Text, s.styles.Label)
		case scene.KindTitle:
			s.drawTitle(el)
		}
	}
}

// View renders the canvas.
func (s *Surface) View() string {
	return s.canvas.View()
}

// Hit returns the entity whose marker occupies the cell.
func (s *Surface) Hit(col, row int) (string, bool) {
	entity, ok := s.hits[cell{col: col, row: row}]
	return entity, ok
}

// HitNear returns the entity whose marker is closest to the cell, looking at
// most reach cells away in each direction. Ties go to the lowest row, then
// the lowest column.
func (s *Surface) HitNear(col, row, reach int) (string, bool) {
	best, bestDist, found := "", 0, false
	for r := row - reach; r <= row+reach; r++ {
		for c := col - reach; c <= col+reach; c++ {
			entity, ok := s.hits[cell{col: c, row: r}]
			if !ok {
				continue
			}
			d := abs(c-col) + abs(r-row)
			if !found || d < bestDist {
				best, bestDist, found = entity, d, true
			}
		}
	}
	return best, found
}

func (s *Surface) cell(p scene.Point) (int, int) {
	col, row := 0, 0
	if s.logical.X > 0 {
		col = mathutil.RoundInt(p.X * float64(s.cols-1) / s.logical.X)
	}
	if s.logical.Y > 0 {
		row = mathutil.RoundInt(p.Y * float64(s.rows-1) / s.logical.Y)
	}
	return col, row
}

func (s *Surface) inside(col, row int) bool {
	return col >= 0 && col < s.cols && row >= 0 && row < s.rows
}

func (s *Surface) putRune(col, row int, r rune, st lipgloss.Style) {
	if !s.inside(col, row) {
		return
	}
	s.canvas.SetRuneWithStyle(canvas.Point{X: col, Y: row}, r, st)
}

func (s *Surface) putString(col, row int, text string, st lipgloss.Style) {
	for i, r := range []rune(text) {
		s.putRune(col+i, row, r, st)
	}
}

// drawAxes draws the axis lines from the crossing point of the bottom and
// left axes, then the tick labels of each.
func (s *Surface) drawAxes(axes []scene.Element) {
	var bottom, left *scene.Axis
	for _, el := range axes {
		switch {
		case el.Axis == nil:
		case el.Axis.Orient == scene.OrientBottom:
			bottom = el.Axis
		case el.Axis.Orient == scene.OrientLeft:
			left = el.Axis
		}
	}
	if bottom == nil && left == nil {
		return
	}

	origin := scene.Point{}
	if bottom != nil {
		origin.Y = bottom.Cross
		origin.X = bottom.From
	}
	if left != nil {
		origin.X = left.Cross
		if bottom == nil {
			origin.Y = left.From
		}
	}
	col, row := s.cell(origin)
	if s.inside(col, row) {
		graph.DrawXYAxis(&s.canvas, canvas.Point{X: col, Y: row}, s.styles.Axis)
	}

	if bottom != nil {
		for _, t := range bottom.Ticks {
			tc, _ := s.cell(scene.Point{X: t.Pos})
			s.putString(tc-len([]rune(t.Label))/2, row+1, t.Label, s.styles.Tick)
		}
	}
	if left != nil {
		for _, t := range left.Ticks {
			_, tr := s.cell(scene.Point{Y: t.Pos})
			s.putString(col-len([]rune(t.Label)), tr, t.Label, s.styles.Tick)
		}
	}
}

func (s *Surface) drawMarker(el scene.Element) {
	col, row := s.cell(el.At)
	if !s.inside(col, row) {
		return
	}
	s.putRune(col, row, MarkerRune(el.Radius), s.styles.Marker)
	s.hits[cell{col: col, row: row}] = el.Entity
}

// drawPath connects consecutive points cell by cell.
func (s *Surface) drawPath(points []scene.Point) {
	for i, p := range points {
		col, row := s.cell(p)
		if i > 0 {
			pc, pr := s.cell(points[i-1])
			s.line(pc, pr, col, row)
		}
		s.putRune(col, row, '•', s.styles.Path)
	}
}

func (s *Surface) line(c0, r0, c1, r1 int) {
	steps := max(abs(c1-c0), abs(r1-r0))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		col := mathutil.RoundInt(mathutil.Lerp(float64(c0), float64(c1), t))
		row := mathutil.RoundInt(mathutil.Lerp(float64(r0), float64(r1), t))
		s.putRune(col, row, '·', s.styles.Path)
	}
}

func (s *Surface) drawTitle(el scene.Element) {
	col, row := s.cell(el.At)
	text := []rune(el.Text)
	if el.Rotate != 0 {
		top := row - len(text)/2
		for i, r := range text {
			s.putRune(col, top+i, r, s.styles.Title)
		}
		return
	}
	s.putString(col-len(text)/2, row, el.Text, s.styles.Title)
}

var markerLevels = []rune{'·', '◦', '•', '◯', '◉', '●'}

// maxMarkerRadius is the radius of the largest marker of a slice with the
// default radius scale, log(100000).
const maxMarkerRadius = 11.5

// MarkerRune returns the rune drawn for a marker of the given radius.
func MarkerRune(radius float64) rune {
	if !mathutil.Finite(radius) || radius <= 0 {
		return markerLevels[0]
	}
	ratio := math.Min(radius/maxMarkerRadius, 1)
	idx := mathutil.Clamp(mathutil.RoundInt(ratio*float64(len(markerLevels)-1)), 0, len(markerLevels)-1)
	return markerLevels[idx]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
