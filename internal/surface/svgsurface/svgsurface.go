// Package svgsurface renders scenes as standalone SVG documents.
package svgsurface

import (
	"bytes"
	"fmt"
	"html"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/kpumuk/gapscope/internal/mathutil"
	"github.com/kpumuk/gapscope/internal/scene"
)

// Styles holds the inline CSS of each element kind.
type Styles struct {
	Axis   string
	Tick   string
	Marker string
	Label  string
	Path   string
	Title  string
}

// DefaultStyles returns the gapscope palette: white markers with a plum
// stroke and gray labels.
func DefaultStyles() Styles {
	return Styles{
		Axis:   "stroke:#000;fill:none",
		Tick:   "fill:#000;font-size:10px",
		Marker: "fill:white;stroke:#B6598A;stroke-width:1",
		Label:  "fill:gray;font-size:11px",
		Path:   "fill:none;stroke:#B6598A;stroke-width:1.5",
		Title:  "fill:#000;font-size:14px",
	}
}

// tickSize is the length of an axis tick mark in pixels.
const tickSize = 6

// Surface is a scene.Surface that keeps drawn scenes until it is encoded.
type Surface struct {
	styles  Styles
	opacity float64
	scenes  []scene.Scene
}

// Option is used to set options in New.
type Option func(*Surface)

// New creates an empty SVG surface.
func New(opts ...Option) *Surface {
	s := &Surface{
		styles:  DefaultStyles(),
		opacity: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithStyles sets the element styles.
func WithStyles(st Styles) Option {
	return func(s *Surface) {
		s.styles = st
	}
}

// WithOpacity sets the opacity of the whole document.
func WithOpacity(o float64) Option {
	return func(s *Surface) {
		s.opacity = mathutil.Clamp(o, 0, 1)
	}
}

// Clear implements scene.Surface.
func (s *Surface) Clear() {
	s.scenes = nil
}

// Draw implements scene.Surface.
func (s *Surface) Draw(sc scene.Scene) {
	s.scenes = append(s.scenes, sc)
}

// Encode writes the surface as an SVG document.
func (s *Surface) Encode(w io.Writer) error {
	var buf bytes.Buffer
	width, height := 0.0, 0.0
	for _, sc := range s.scenes {
		width = max(width, sc.Width)
		height = max(height, sc.Height)
	}

	canvas := svg.New(&buf)
	canvas.Start(mathutil.RoundInt(width), mathutil.RoundInt(height), `font-family="sans-serif"`)
	canvas.Group(fmt.Sprintf(`opacity="%.2g"`, s.opacity))
	for _, sc := range s.scenes {
		for _, el := range sc.Elements {
			s.element(canvas, el)
		}
	}
	canvas.Gend()
	canvas.End()

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func (s *Surface) element(canvas *svg.SVG, el scene.Element) {
	x, y := mathutil.RoundInt(el.At.X), mathutil.RoundInt(el.At.Y)
	switch el.Kind {
	case scene.KindAxis:
		if el.Axis != nil {
			s.axis(canvas, *el.Axis)
		}
	case scene.KindMarker:
		canvas.Circle(x, y, max(mathutil.RoundInt(el.Radius), 1), entityAttr(el.Entity), s.styles.Marker)
	case scene.KindLabel:
		canvas.Text(x, y, el.Text, entityAttr(el.Entity), s.styles.Label)
	case scene.KindTitle:
		if el.Rotate != 0 {
			canvas.TranslateRotate(x, y, el.Rotate)
			canvas.Text(0, 0, el.Text, `text-anchor="middle"`, s.styles.Title)
			canvas.Gend()
			return
		}
		canvas.Text(x, y, el.Text, `text-anchor="middle"`, s.styles.Title)
	case scene.KindPath:
		xs := make([]int, len(el.Points))
		ys := make([]int, len(el.Points))
		for i, p := range el.Points {
			xs[i] = mathutil.RoundInt(p.X)
			ys[i] = mathutil.RoundInt(p.Y)
		}
		canvas.Polyline(xs, ys, entityAttr(el.Entity), s.styles.Path)
	}
}

func (s *Surface) axis(canvas *svg.SVG, a scene.Axis) {
	cross := mathutil.RoundInt(a.Cross)
	from, to := mathutil.RoundInt(a.From), mathutil.RoundInt(a.To)
	switch a.Orient {
	case scene.OrientBottom:
		canvas.Line(from, cross, to, cross, s.styles.Axis)
		for _, t := range a.Ticks {
			pos := mathutil.RoundInt(t.Pos)
			canvas.Line(pos, cross, pos, cross+tickSize, s.styles.Axis)
			canvas.Text(pos, cross+tickSize, t.Label, `text-anchor="middle" dy="1em"`, s.styles.Tick)
		}
	case scene.OrientLeft:
		canvas.Line(cross, from, cross, to, s.styles.Axis)
		for _, t := range a.Ticks {
			pos := mathutil.RoundInt(t.Pos)
			canvas.Line(cross-tickSize, pos, cross, pos, s.styles.Axis)
			canvas.Text(cross-tickSize-2, pos, t.Label, `text-anchor="end" dy=".32em"`, s.styles.Tick)
		}
	}
}

func entityAttr(entity string) string {
	return `data-entity="` + html.EscapeString(entity) + `"`
}
