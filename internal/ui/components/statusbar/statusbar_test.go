package statusbar

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
)

func bindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev year")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func TestView(t *testing.T) {
	t.Parallel()

	m := New(WithWidth(80), WithBindings(bindings()))
	m.SetYear(1980)
	m.SetHovered("China")
	m.SetStatus("copied")

	out := ansi.Strip(m.View())
	for _, want := range []string{"1980", "China", "prev year", "quit", "copied"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status bar %q missing %q", out, want)
		}
	}
	if w := lipgloss.Width(m.View()); w != 80 {
		t.Fatalf("width = %d, want 80", w)
	}
}

func TestViewHidesEmptyParts(t *testing.T) {
	t.Parallel()

	disabled := key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy"))
	disabled.SetEnabled(false)
	m := New(WithWidth(40), WithBindings([]key.Binding{disabled}))

	out := strings.TrimSpace(ansi.Strip(m.View()))
	if out != "" {
		t.Fatalf("View() = %q, want blank", out)
	}
}

func TestViewStaysOnOneLine(t *testing.T) {
	t.Parallel()

	m := New(WithWidth(20), WithBindings(bindings()))
	m.SetHovered("Democratic Republic of the Congo")
	if strings.Contains(m.View(), "\n") {
		t.Fatalf("status bar wrapped: %q", m.View())
	}
}

func TestHeight(t *testing.T) {
	t.Parallel()

	if got := New().Height(); got != 1 {
		t.Fatalf("Height() = %d, want 1", got)
	}
}

func TestGoldenStatusBar(t *testing.T) {
	m := New(WithWidth(60), WithBindings(bindings()))
	m.SetYear(1980)
	m.SetHovered("China")
	m.SetStatus("copied China")

	output := ansi.Strip(m.View())
	golden.RequireEqual(t, []byte(output))
}
