package help

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
)

func sampleSections() []Section {
	disabled := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry"))
	disabled.SetEnabled(false)
	return []Section{
		{
			Title: "Plot",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev year")),
				key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next year")),
				disabled,
			},
		},
		{
			Title: "Tooltip",
			Lines: []string{"hover a marker"},
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy series")),
			},
		},
	}
}

func TestClosedByDefault(t *testing.T) {
	t.Parallel()

	m := New(WithSections(sampleSections()))
	m.SetSize(80, 20)
	if m.Open() || m.View() != "" {
		t.Fatal("help panel rendered before Toggle")
	}

	m.Toggle()
	if !m.Open() {
		t.Fatal("Toggle() did not open the panel")
	}
	m.Close()
	if m.Open() {
		t.Fatal("Close() left the panel open")
	}
}

func TestViewListsEnabledBindings(t *testing.T) {
	t.Parallel()

	m := New(WithSections(sampleSections()))
	m.SetSize(80, 20)
	m.Toggle()

	out := ansi.Strip(m.View())
	for _, want := range []string{"Help", "Plot", "Tooltip", "prev year", "copy series", "hover a marker"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help view missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "retry") {
		t.Fatalf("help view shows disabled binding:\n%s", out)
	}

	lines := strings.Split(out, "\n")
	width := ansi.StringWidth(lines[0])
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
	}
	if width > 78 {
		t.Fatalf("panel width = %d, want at most 78", width)
	}
}

func TestViewTooSmall(t *testing.T) {
	t.Parallel()

	m := New(WithSections(sampleSections()))
	m.SetSize(10, 4)
	m.Toggle()
	if got := m.View(); got != "" {
		t.Fatalf("View() = %q, want empty for tiny area", got)
	}
}

func TestOriginCenters(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetSize(80, 20)
	x, y := m.Origin(40, 10)
	if x != 20 || y != 5 {
		t.Fatalf("Origin(40, 10) = (%d, %d), want (20, 5)", x, y)
	}
}

func TestGoldenHelp(t *testing.T) {
	m := New(WithSections(sampleSections()))
	m.SetSize(60, 12)
	m.Toggle()

	output := ansi.Strip(m.View())
	golden.RequireEqual(t, []byte(output))
}
