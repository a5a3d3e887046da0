package scene

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderClearsBeforeDrawing(t *testing.T) {
	t.Parallel()

	s := Scene{Width: 10, Height: 10}
	s.Add(
		Element{Kind: KindMarker, Entity: "Chad", At: Point{X: 1, Y: 2}, Radius: 3},
		Element{Kind: KindLabel, Entity: "Chad", Text: "Chad"},
	)

	rec := NewRecorder()
	Render(rec, s)
	Render(rec, s)
	if rec.Len() != 2 {
		t.Fatalf("Len() = %d after two renders, want 2", rec.Len())
	}
	if rec.Clears() != 2 || rec.Draws() != 2 {
		t.Fatalf("clears=%d draws=%d, want 2/2", rec.Clears(), rec.Draws())
	}

	rec.Draw(s)
	if rec.Len() != 4 {
		t.Fatalf("Draw() without Clear should accumulate, got %d", rec.Len())
	}
}

func TestSceneQueries(t *testing.T) {
	t.Parallel()

	var s Scene
	s.Add(
		Element{Kind: KindAxis, Axis: &Axis{Orient: OrientBottom}},
		Element{Kind: KindMarker, Entity: "Chad"},
		Element{Kind: KindMarker, Entity: "China"},
		Element{Kind: KindLabel, Entity: "China"},
	)
	if got := len(s.Filter(KindMarker)); got != 2 {
		t.Fatalf("Filter(marker) = %d, want 2", got)
	}
	if got := len(s.Owned("China")); got != 2 {
		t.Fatalf("Owned(China) = %d, want 2", got)
	}
}

func TestSceneJSON(t *testing.T) {
	t.Parallel()

	s := Scene{Width: 100, Height: 50}
	s.Add(Element{Kind: KindAxis, Axis: &Axis{Orient: OrientLeft, Cross: 50}})
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{`"kind":"axis"`, `"orient":"left"`, `"width":100`} {
		if !strings.Contains(out, want) {
			t.Fatalf("JSON %s missing %s", out, want)
		}
	}
	if Kind(42).String() != "Kind(42)" {
		t.Fatalf("unknown kind String() = %q", Kind(42).String())
	}
}

func TestSceneJSONDecode(t *testing.T) {
	t.Parallel()

	var s Scene
	in := `{"width":10,"elements":[{"kind":"path"},{"kind":"axis","axis":{"orient":"left"}}]}`
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(s.Filter(KindPath)) != 1 || s.Elements[1].Axis.Orient != OrientLeft {
		t.Fatalf("decoded scene = %+v", s)
	}

	var k Kind
	if err := k.UnmarshalText([]byte("bubble")); err == nil {
		t.Fatal("UnmarshalText(bubble) error = nil, want error")
	}
}
