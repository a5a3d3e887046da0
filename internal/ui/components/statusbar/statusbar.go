// Package statusbar renders the bottom status line.
package statusbar

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Styles holds the styles needed by the status bar.
type Styles struct {
	Bar  lipgloss.Style
	Key  lipgloss.Style
	Item lipgloss.Style
	Year lipgloss.Style
}

// DefaultStyles returns default styles for the status bar.
func DefaultStyles() Styles {
	return Styles{
		Bar:  lipgloss.NewStyle().Padding(0, 1),
		Key:  lipgloss.NewStyle().Padding(0, 1),
		Item: lipgloss.NewStyle().PaddingRight(1),
		Year: lipgloss.NewStyle().Bold(true).PaddingRight(1),
	}
}

// Model defines state for the status bar component.
type Model struct {
	styles   Styles
	bindings []key.Binding
	year     int
	hovered  string
	status   string
	width    int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new status bar model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithBindings sets the key hints.
func WithBindings(bindings []key.Binding) Option {
	return func(m *Model) {
		m.bindings = bindings
	}
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetBindings sets the key hints.
func (m *Model) SetBindings(bindings []key.Binding) {
	m.bindings = bindings
}

// SetYear sets the displayed time slice. Zero hides it.
func (m *Model) SetYear(year int) {
	m.year = year
}

// SetHovered sets the description of the hovered entity. Empty hides it.
func (m *Model) SetHovered(text string) {
	m.hovered = text
}

// SetStatus sets a transient status message.
func (m *Model) SetStatus(status string) {
	m.status = status
}

// Height returns the height of the status bar (always 1).
func (m Model) Height() int {
	return 1
}

// View renders the status bar.
func (m Model) View() string {
	barStyle := m.styles.Bar.Width(m.width)

	items := ""
	if m.year != 0 {
		items += m.styles.Year.Render(fmt.Sprintf("%d", m.year))
	}
	if m.hovered != "" {
		items += m.styles.Item.Render(m.hovered)
	}
	if m.status != "" {
		items += m.styles.Item.Render(m.status)
	}
	for _, b := range m.bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		items += m.styles.Key.Render(help.Key) + m.styles.Item.Render(help.Desc)
	}

	// Keep to one line; Width alone would wrap.
	inner := max(m.width-m.styles.Bar.GetHorizontalFrameSize(), 0)
	return barStyle.Render(ansi.Truncate(items, inner, "…"))
}
