package drilldown

import (
	"errors"
	"math"
	"testing"

	"github.com/kpumuk/gapscope/internal/dataset"
	"github.com/kpumuk/gapscope/internal/extent"
	"github.com/kpumuk/gapscope/internal/scale"
	"github.com/kpumuk/gapscope/internal/scene"
)

func chinaSeries() []dataset.Row {
	// Deliberately out of chronological order.
	return []dataset.Row{
		{Entity: "China", TimeSlice: 1990, Size: 1.1e9},
		{Entity: "China", TimeSlice: 1960, Size: 6.6e8},
		{Entity: "China", TimeSlice: 1980, Size: 1e9},
		{Entity: "China", TimeSlice: 1970, Size: 8.2e8},
	}
}

func chadSeries() []dataset.Row {
	return []dataset.Row{
		{Entity: "Chad", TimeSlice: 1960, Size: 3e6},
		{Entity: "Chad", TimeSlice: 1980, Size: 8e6},
	}
}

func TestFitUsesRescaledSizes(t *testing.T) {
	t.Parallel()

	pair, err := Fit(chinaSeries(), DefaultOptions())
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if got, want := pair.Y.Domain(), (extent.Extent{Min: 660, Max: 1100}); got != want {
		t.Fatalf("y domain = %+v, want %+v", got, want)
	}
	if got, want := pair.X.Domain(), (extent.Extent{Min: 1960, Max: 1990}); got != want {
		t.Fatalf("x domain = %+v, want %+v", got, want)
	}
	if !(pair.Y.Map(660) > pair.Y.Map(1100)) {
		t.Fatal("y axis should be inverted")
	}
	if pair.X.Map(1960) >= pair.X.Map(1990) {
		t.Fatal("x axis should not be inverted")
	}
}

func TestBuildSortsPath(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	rows := chinaSeries()
	pair, err := Fit(rows, o)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	s := Build(rows, pair, o)

	paths := s.Filter(scene.KindPath)
	if len(paths) != 1 {
		t.Fatalf("paths = %d, want 1", len(paths))
	}
	pts := paths[0].Points
	if len(pts) != len(rows) {
		t.Fatalf("path has %d points, want %d", len(pts), len(rows))
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].X <= pts[i-1].X {
			t.Fatalf("path not in time order at %d: %+v", i, pts)
		}
	}
	// The input slice is left untouched.
	if rows[0].TimeSlice != 1990 {
		t.Fatal("Build() reordered the caller's rows")
	}
	if pts[0].X != o.XRange().Lo || pts[len(pts)-1].X != o.XRange().Hi {
		t.Fatalf("path spans %v..%v", pts[0].X, pts[len(pts)-1].X)
	}
}

func TestRenderClearsPreviousEntity(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	rec := scene.NewRecorder()

	for _, rows := range [][]dataset.Row{chinaSeries(), chadSeries()} {
		pair, err := Fit(rows, o)
		if err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		Render(rec, rows, pair, o)
	}

	got := rec.Scene()
	if ghosts := got.Owned("China"); len(ghosts) != 0 {
		t.Fatalf("%d elements of China remain after rendering Chad", len(ghosts))
	}
	if len(got.Owned("Chad")) != len(got.Elements) {
		t.Fatal("every element on the tooltip should belong to Chad")
	}
	if paths := got.Filter(scene.KindPath); len(paths) != 1 {
		t.Fatalf("paths = %d, want 1", len(paths))
	}
}

func TestFitEmpty(t *testing.T) {
	t.Parallel()

	if _, err := Fit(nil, DefaultOptions()); !errors.Is(err, extent.ErrEmptyInput) {
		t.Fatalf("Fit(nil) error = %v, want ErrEmptyInput", err)
	}
	if s := Build(nil, scale.Pair{}, DefaultOptions()); len(s.Elements) != 0 {
		t.Fatalf("Build(nil) = %+v, want empty scene", s)
	}
}

func TestSingleTimeSlice(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	rows := []dataset.Row{{Entity: "Solo", TimeSlice: 1980, Size: 5e6}}
	pair, err := Fit(rows, o)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !pair.X.IsFlat() || !pair.Y.IsFlat() {
		t.Fatal("single row should give flat scales")
	}
	s := Build(rows, pair, o)
	for _, p := range s.Filter(scene.KindPath)[0].Points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("NaN point %+v", p)
		}
	}
}

func TestClamped(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		w, h         float64
		wantW, wantH float64
	}{
		"too small": {w: 10, h: 20, wantW: MinWidth, wantH: MinHeight},
		"too large": {w: 900, h: 900, wantW: MaxWidth, wantH: MaxHeight},
		"in range":  {w: 200, h: 180, wantW: 200, wantH: 180},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			o := Options{Width: tc.w, Height: tc.h}.Clamped()
			if o.Width != tc.wantW || o.Height != tc.wantH {
				t.Fatalf("Clamped() = %vx%v, want %vx%v", o.Width, o.Height, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestBuildAxesHaveReadableTicks(t *testing.T) {
	t.Parallel()

	tests := map[string][]dataset.Row{
		"china": {
			{Entity: "China", TimeSlice: 1960, Size: 667e6},
			{Entity: "China", TimeSlice: 1990, Size: 1135e6},
			{Entity: "China", TimeSlice: 2013, Size: 1364e6},
		},
		"chad": {
			{Entity: "Chad", TimeSlice: 1960, Size: 3e6},
			{Entity: "Chad", TimeSlice: 2013, Size: 12.8e6},
		},
	}

	for name, rows := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			o := DefaultOptions()
			pair, err := Fit(rows, o)
			if err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			axes := Build(rows, pair, o).Filter(scene.KindAxis)
			if len(axes) != 2 {
				t.Fatalf("axes = %d, want 2", len(axes))
			}
			for _, el := range axes {
				ticks := el.Axis.Ticks
				if len(ticks) < 2 || len(ticks) > o.MaxTicks {
					t.Fatalf("%v axis ticks = %+v, want 2..%d", el.Axis.Orient, ticks, o.MaxTicks)
				}
				for _, tick := range ticks {
					if tick.Label == "" || math.IsNaN(tick.Pos) {
						t.Fatalf("bad tick %+v", tick)
					}
				}
			}
		})
	}
}
