package scale

import (
	"errors"
	"math"
	"testing"

	"github.com/kpumuk/gapscope/internal/extent"
)

func TestNewLinearEndpoints(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		domain extent.Extent
		rng    Range
	}{
		"primary x":    {domain: extent.Extent{Min: 2, Max: 8}, rng: Range{Lo: 50, Hi: 950}},
		"primary y":    {domain: extent.Extent{Min: 40, Max: 70}, rng: Range{Lo: 700, Hi: 50}},
		"fractional":   {domain: extent.Extent{Min: 0.1, Max: 0.7}, rng: Range{Lo: 0.3, Hi: 17.9}},
		"negative":     {domain: extent.Extent{Min: -12, Max: -3}, rng: Range{Lo: 10, Hi: 260}},
		"large values": {domain: extent.Extent{Min: 8, Max: 1000}, rng: Range{Lo: 270, Hi: 20}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s, err := NewLinear(tc.domain, tc.rng)
			if err != nil {
				t.Fatalf("NewLinear() error = %v", err)
			}
			if got := s.Map(tc.domain.Min); got != tc.rng.Lo {
				t.Fatalf("Map(min) = %v, want %v", got, tc.rng.Lo)
			}
			if got := s.Map(tc.domain.Max); got != tc.rng.Hi {
				t.Fatalf("Map(max) = %v, want %v", got, tc.rng.Hi)
			}
		})
	}
}

func TestLinearInterpolates(t *testing.T) {
	t.Parallel()

	s, err := NewLinear(extent.Extent{Min: 0, Max: 10}, Range{Lo: 50, Hi: 950})
	if err != nil {
		t.Fatalf("NewLinear() error = %v", err)
	}
	if got := s.Map(5); math.Abs(got-500) > 1e-9 {
		t.Fatalf("Map(5) = %v, want 500", got)
	}
	if got := s.Map(2.5); math.Abs(got-275) > 1e-9 {
		t.Fatalf("Map(2.5) = %v, want 275", got)
	}
}

func TestLinearMonotonic(t *testing.T) {
	t.Parallel()

	up, err := NewLinear(extent.Extent{Min: 1, Max: 9}, Range{Lo: 50, Hi: 950})
	if err != nil {
		t.Fatalf("NewLinear() error = %v", err)
	}
	prev := up.Map(1)
	for v := 1.25; v <= 9; v += 0.25 {
		cur := up.Map(v)
		if cur <= prev {
			t.Fatalf("Map(%v) = %v not above previous %v", v, cur, prev)
		}
		prev = cur
	}
}

func TestYInversion(t *testing.T) {
	t.Parallel()

	y, err := NewLinear(extent.Extent{Min: 40, Max: 70}, Range{Lo: 700, Hi: 50})
	if err != nil {
		t.Fatalf("NewLinear() error = %v", err)
	}
	if !y.Range().Inverted() {
		t.Fatal("range should be inverted")
	}
	for _, pair := range [][2]float64{{40, 70}, {45, 65}, {50, 50.5}} {
		a, b := pair[0], pair[1]
		if !(y.Map(a) > y.Map(b)) {
			t.Fatalf("y(%v)=%v should be below y(%v)=%v on screen", a, y.Map(a), b, y.Map(b))
		}
	}
}

func TestDegenerateDomain(t *testing.T) {
	t.Parallel()

	d := extent.Extent{Min: 3, Max: 3}
	if _, err := NewLinear(d, Range{Lo: 0, Hi: 100}); !errors.Is(err, ErrDegenerateDomain) {
		t.Fatalf("NewLinear() error = %v, want ErrDegenerateDomain", err)
	}

	s := LinearOrFlat(d, Range{Lo: 20, Hi: 100})
	if !s.IsFlat() {
		t.Fatal("LinearOrFlat() should fall back to a flat scale")
	}
	for _, v := range []float64{3, -1, 1e9} {
		got := s.Map(v)
		if math.IsNaN(got) || got != 20 {
			t.Fatalf("flat Map(%v) = %v, want 20", v, got)
		}
	}
	if ticks := s.Ticks(5); len(ticks) != 1 || ticks[0] != 3 {
		t.Fatalf("flat Ticks() = %v, want [3]", ticks)
	}
}

func TestTicksInsideDomain(t *testing.T) {
	t.Parallel()

	s, err := NewLinear(extent.Extent{Min: 1.5, Max: 9.5}, Range{Lo: 50, Hi: 950})
	if err != nil {
		t.Fatalf("NewLinear() error = %v", err)
	}
	ticks := s.Ticks(10)
	if len(ticks) == 0 || len(ticks) > 10 {
		t.Fatalf("Ticks() returned %d ticks", len(ticks))
	}
	for _, tick := range ticks {
		if tick < 1.5 || tick > 9.5 {
			t.Fatalf("tick %v outside domain", tick)
		}
	}
	if s.Ticks(0) != nil {
		t.Fatal("Ticks(0) should be nil")
	}
}

func TestTicksAtLeastTwo(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		domain extent.Extent
		want   []float64
	}{
		"life expectancy": {domain: extent.Extent{Min: 10, Max: 63}, want: []float64{10, 30, 50}},
		"china millions":  {domain: extent.Extent{Min: 667, Max: 1364}, want: []float64{700, 900, 1100, 1300}},
		"chad millions":   {domain: extent.Extent{Min: 3, Max: 12.8}, want: []float64{5, 10}},
		"years":           {domain: extent.Extent{Min: 1960, Max: 2013}, want: []float64{1960, 1980, 2000}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := NewLinear(tt.domain, Range{Lo: 265, Hi: 25})
			if err != nil {
				t.Fatalf("NewLinear() error = %v", err)
			}
			got := s.Ticks(5)
			if len(got) != len(tt.want) {
				t.Fatalf("Ticks(5) = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Fatalf("Ticks(5) = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()

	x, err := NewLinear(extent.Extent{Min: 0, Max: 10}, Range{Lo: 0, Hi: 100})
	if err != nil {
		t.Fatalf("NewLinear() error = %v", err)
	}
	pair := Pair{X: x, Y: x}
	label := pair.LabelX(6)
	for _, v := range []float64{0, 3, 10} {
		if got, want := label.Map(v), x.Map(v)+6; got != want {
			t.Fatalf("label Map(%v) = %v, want %v", v, got, want)
		}
	}
	px, py := pair.Point(10, 0)
	if px != 100 || py != 0 {
		t.Fatalf("Point() = (%v, %v)", px, py)
	}
}
