// Package scale builds linear mappings from data extents to pixel ranges.
package scale

import (
	"errors"
	"math"

	mscale "github.com/aclements/go-moremath/scale"

	"github.com/kpumuk/gapscope/internal/extent"
	"github.com/kpumuk/gapscope/internal/mathutil"
)

// ErrDegenerateDomain is returned when a domain has zero width.
var ErrDegenerateDomain = errors.New("degenerate scale domain")

// Mapper maps a domain value to a pixel coordinate.
type Mapper interface {
	Map(v float64) float64
}

// Range is a pixel interval. Lo is the image of the domain minimum and Hi the
// image of the maximum, so an inverted axis has Lo > Hi.
type Range struct {
	Lo float64
	Hi float64
}

// Inverted reports whether larger domain values map to smaller pixels.
func (r Range) Inverted() bool {
	return r.Lo > r.Hi
}

// Linear is an immutable affine map from a domain extent to a pixel range.
type Linear struct {
	domain extent.Extent
	rng    Range
	norm   mscale.Linear
	flat   bool
}

// NewLinear returns the linear scale mapping domain.Min to rng.Lo and
// domain.Max to rng.Hi.
func NewLinear(domain extent.Extent, rng Range) (Linear, error) {
	if domain.Degenerate() {
		return Linear{}, ErrDegenerateDomain
	}
	return Linear{
		domain: domain,
		rng:    rng,
		norm:   mscale.Linear{Min: domain.Min, Max: domain.Max},
	}, nil
}

// Flat returns a scale that maps every value to rng.Lo. It is the fallback
// for degenerate domains: points collapse onto the range start instead of
// producing NaN coordinates.
func Flat(domain extent.Extent, rng Range) Linear {
	return Linear{domain: domain, rng: rng, flat: true}
}

// LinearOrFlat returns NewLinear(domain, rng), or Flat(domain, rng) when the
// domain is degenerate. Callers can tell the two apart with IsFlat.
func LinearOrFlat(domain extent.Extent, rng Range) Linear {
	s, err := NewLinear(domain, rng)
	if err != nil {
		return Flat(domain, rng)
	}
	return s
}

// Map returns the pixel coordinate of v.
func (s Linear) Map(v float64) float64 {
	if s.flat {
		return s.rng.Lo
	}
	if v == s.domain.Max {
		return s.rng.Hi
	}
	norm := s.norm
	return mathutil.Lerp(s.rng.Lo, s.rng.Hi, norm.Map(v))
}

// Domain returns the data extent the scale was fitted to.
func (s Linear) Domain() extent.Extent {
	return s.domain
}

// Range returns the pixel range.
func (s Linear) Range() Range {
	return s.rng
}

// IsFlat reports whether s is the degenerate fallback.
func (s Linear) IsFlat() bool {
	return s.flat
}

// Ticks returns at most maxTicks round tick values inside the domain. Spacing
// steps through 1, 5, 10, 50, ... times a power of ten; when the coarsest
// spacing that fits maxTicks leaves a single tick, a finer level is thinned
// instead so the axis gets at least two labels.
func (s Linear) Ticks(maxTicks int) []float64 {
	if s.flat {
		return []float64{s.domain.Min}
	}
	if maxTicks < 1 {
		return nil
	}
	norm := s.norm
	major, _ := norm.Ticks(mscale.TickOptions{Max: maxTicks})
	if len(major) < 2 && maxTicks >= 2 {
		major = s.denseTicks(maxTicks)
	}
	ticks := make([]float64, 0, len(major))
	for _, t := range major {
		if s.domain.Contains(t) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

// denseTicks takes the coarsest tick level with at least two ticks and keeps
// every n-th tick so no more than maxTicks remain.
func (s Linear) denseTicks(maxTicks int) []float64 {
	norm := s.norm
	guess := 2 * int(math.Log10(s.domain.Span()))
	for level := guess + 4; level >= guess-12; level-- {
		if norm.CountTicks(level) < 2 {
			continue
		}
		all := norm.TicksAtLevel(level).([]float64)
		stride := (len(all) + maxTicks - 1) / maxTicks
		out := make([]float64, 0, maxTicks)
		for i := 0; i < len(all); i += stride {
			out = append(out, all[i])
		}
		return out
	}
	return nil
}

// Offset is a label-offset mapping: the base scale shifted by a fixed
// number of pixels.
type Offset struct {
	Base Mapper
	Px   float64
}

// Map returns Base.Map(v) + Px.
func (o Offset) Map(v float64) float64 {
	return o.Base.Map(v) + o.Px
}

// Pair is the x and y scale of one view.
type Pair struct {
	X Linear
	Y Linear
}

// Point maps a data point to pixel coordinates.
func (p Pair) Point(x, y float64) (float64, float64) {
	return p.X.Map(x), p.Y.Map(y)
}

// LabelX returns the label-offset mapping derived from the x scale.
func (p Pair) LabelX(px float64) Offset {
	return Offset{Base: p.X, Px: px}
}
