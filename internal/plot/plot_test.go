package plot

import (
	"errors"
	"math"
	"testing"

	"github.com/kpumuk/gapscope/internal/dataset"
	"github.com/kpumuk/gapscope/internal/extent"
	"github.com/kpumuk/gapscope/internal/scene"
)

func chadChina() []dataset.Row {
	return []dataset.Row{
		{Entity: "Chad", TimeSlice: 1980, MetricX: 6, MetricY: 45, Size: 8e6},
		{Entity: "China", TimeSlice: 1980, MetricX: 2, MetricY: 65, Size: 1e9},
	}
}

func markerFor(t *testing.T, s scene.Scene, entity string) scene.Element {
	t.Helper()
	for _, el := range s.Filter(scene.KindMarker) {
		if el.Entity == entity {
			return el
		}
	}
	t.Fatalf("no marker for %q", entity)
	return scene.Element{}
}

func TestChadChinaScenario(t *testing.T) {
	t.Parallel()

	rows := chadChina()
	o := DefaultOptions()
	pair, err := Fit(rows, o)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	s := Build(rows, pair, o)

	chad := markerFor(t, s, "Chad")
	china := markerFor(t, s, "China")
	if !(china.Radius > chad.Radius) {
		t.Fatalf("China radius %v should exceed Chad radius %v", china.Radius, chad.Radius)
	}
	if china.At.Y >= chad.At.Y {
		t.Fatalf("China (higher life expectancy) should be drawn above Chad: %v vs %v", china.At.Y, chad.At.Y)
	}
	if china.At.X >= chad.At.X {
		t.Fatalf("China (lower fertility) should be left of Chad: %v vs %v", china.At.X, chad.At.X)
	}

	labels := s.Filter(scene.KindLabel)
	if len(labels) != 1 || labels[0].Text != "China" {
		t.Fatalf("labels = %+v, want only China", labels)
	}
	if labels[0].At.X != china.At.X+o.LabelOffset || labels[0].At.Y != china.At.Y {
		t.Fatalf("label at %+v, want beside marker at %+v", labels[0].At, china.At)
	}
}

func TestFitPadding(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	pair, err := Fit(chadChina(), o)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if got, want := pair.X.Domain(), (extent.Extent{Min: 2, Max: 8}); got != want {
		t.Fatalf("x domain = %+v, want %+v", got, want)
	}
	if got, want := pair.Y.Domain(), (extent.Extent{Min: 40, Max: 70}); got != want {
		t.Fatalf("y domain = %+v, want %+v", got, want)
	}
	if pair.X.Map(2) != 50 || pair.X.Map(8) != 950 {
		t.Fatalf("x scale endpoints = %v, %v", pair.X.Map(2), pair.X.Map(8))
	}
	if pair.Y.Map(40) != 700 || pair.Y.Map(70) != 50 {
		t.Fatalf("y scale endpoints = %v, %v", pair.Y.Map(40), pair.Y.Map(70))
	}
}

func TestFitEmpty(t *testing.T) {
	t.Parallel()

	if _, err := Fit(nil, DefaultOptions()); !errors.Is(err, extent.ErrEmptyInput) {
		t.Fatalf("Fit(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestRadius(t *testing.T) {
	t.Parallel()

	const k = 100000
	tests := map[string]struct {
		size, maxSize float64
		want          float64
	}{
		"largest":          {size: 1e9, maxSize: 1e9, want: math.Log(k)},
		"far below":        {size: 1, maxSize: 1e9, want: 1},
		"exactly at ref":   {size: 1e4, maxSize: 1e9, want: 1},
		"just above floor": {size: 1e9 * math.E * math.E / k, maxSize: 1e9, want: 2},
		"zero max":         {size: 5, maxSize: 0, want: 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := Radius(tc.size, tc.maxSize, k, 1)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Radius(%v, %v) = %v, want %v", tc.size, tc.maxSize, got, tc.want)
			}
			if got < 1 {
				t.Fatalf("Radius(%v, %v) = %v below floor", tc.size, tc.maxSize, got)
			}
		})
	}
}

func TestRadiusRelativeToSlice(t *testing.T) {
	t.Parallel()

	// The same population gets a different radius depending on the largest
	// population of the slice it is drawn in.
	o := DefaultOptions()
	small := []dataset.Row{
		{Entity: "A", MetricX: 1, MetricY: 50, Size: 5e7},
		{Entity: "B", MetricX: 2, MetricY: 60, Size: 1e8},
	}
	large := []dataset.Row{
		{Entity: "A", MetricX: 1, MetricY: 50, Size: 5e7},
		{Entity: "C", MetricX: 2, MetricY: 60, Size: 1e9},
	}

	radiusOf := func(rows []dataset.Row) float64 {
		pair, err := Fit(rows, o)
		if err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		return markerFor(t, Build(rows, pair, o), "A").Radius
	}

	rSmall, rLarge := radiusOf(small), radiusOf(large)
	if math.Abs(rSmall-math.Log(5e7*o.RadiusScale/1e8)) > 1e-9 {
		t.Fatalf("radius in small slice = %v", rSmall)
	}
	if math.Abs(rLarge-math.Log(5e7*o.RadiusScale/1e9)) > 1e-9 {
		t.Fatalf("radius in large slice = %v", rLarge)
	}
	if !(rSmall > rLarge) {
		t.Fatalf("radius should shrink when the slice maximum grows: %v vs %v", rSmall, rLarge)
	}
}

func TestSingleRowSlice(t *testing.T) {
	t.Parallel()

	rows := []dataset.Row{{Entity: "Solo", TimeSlice: 1980, MetricX: 3, MetricY: 60, Size: 2e6}}

	unpadded := DefaultOptions()
	unpadded.XPad = Padding{}
	unpadded.YPad = Padding{}

	for name, o := range map[string]Options{"padded": DefaultOptions(), "unpadded": unpadded} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			pair, err := Fit(rows, o)
			if err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			s := Build(rows, pair, o)
			m := markerFor(t, s, "Solo")
			if math.IsNaN(m.At.X) || math.IsNaN(m.At.Y) || math.IsInf(m.At.X, 0) || math.IsInf(m.At.Y, 0) {
				t.Fatalf("marker at %+v", m.At)
			}
			if math.Abs(m.Radius-math.Log(o.RadiusScale)) > 1e-9 {
				t.Fatalf("single row radius = %v, want log(K)", m.Radius)
			}
			for _, el := range s.Filter(scene.KindAxis) {
				for _, tick := range el.Axis.Ticks {
					if math.IsNaN(tick.Pos) {
						t.Fatalf("NaN tick on axis %+v", el.Axis)
					}
				}
			}
		})
	}

	pair, err := Fit(rows, unpadded)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !pair.X.IsFlat() || !pair.Y.IsFlat() {
		t.Fatal("unpadded single row should fall back to flat scales")
	}
	if x, y := pair.Point(3, 60); x != unpadded.XRange.Lo || y != unpadded.YRange.Lo {
		t.Fatalf("flat point = (%v, %v)", x, y)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	rows := chadChina()
	o := DefaultOptions()
	pair, err := Fit(rows, o)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	rec := scene.NewRecorder()
	Render(rec, rows, pair, o)
	first := rec.Len()
	Render(rec, rows, pair, o)
	if rec.Len() != first {
		t.Fatalf("second render left %d elements, want %d", rec.Len(), first)
	}
	if got := len(rec.Scene().Filter(scene.KindMarker)); got != 2 {
		t.Fatalf("markers = %d, want 2", got)
	}
}

func TestBuildAxesAndTitles(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	o.Title = "Fertility vs. Life Expectancy (1980)"
	pair, err := Fit(chadChina(), o)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	s := Build(chadChina(), pair, o)

	axes := s.Filter(scene.KindAxis)
	if len(axes) != 2 {
		t.Fatalf("axes = %d, want 2", len(axes))
	}
	bottom, left := axes[0].Axis, axes[1].Axis
	if bottom.Orient != scene.OrientBottom || bottom.Cross != 700 {
		t.Fatalf("bottom axis = %+v", bottom)
	}
	if left.Orient != scene.OrientLeft || left.Cross != 50 {
		t.Fatalf("left axis = %+v", left)
	}
	if len(bottom.Ticks) == 0 || len(left.Ticks) == 0 {
		t.Fatal("axes should carry ticks")
	}

	titles := s.Filter(scene.KindTitle)
	if len(titles) != 3 || titles[0].Text != o.Title || titles[2].Rotate != -90 {
		t.Fatalf("titles = %+v", titles)
	}
}
