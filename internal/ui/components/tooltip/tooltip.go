// Package tooltip renders the drill-down chart inside a titled box.
package tooltip

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Styles holds the styles needed by the tooltip.
type Styles struct {
	Title  lipgloss.Style
	Meta   lipgloss.Style
	Border lipgloss.Style
}

// DefaultStyles returns default styles for the tooltip.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Meta:   lipgloss.NewStyle().Faint(true),
		Border: lipgloss.NewStyle(),
	}
}

// Model defines state for the tooltip component.
type Model struct {
	styles  Styles
	title   string
	meta    string
	content string
	width   int
	height  int
	border  lipgloss.Border
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new tooltip model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		border: lipgloss.RoundedBorder(),
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

// WithTitle sets the title.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithMeta sets the text on the right of the top border.
func WithMeta(meta string) Option {
	return func(m *Model) {
		m.meta = meta
	}
}

// WithContent sets the content.
func WithContent(content string) Option {
	return func(m *Model) {
		m.content = content
	}
}

// WithSize sets width and height, borders included.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the current height.
func (m Model) Height() int {
	return m.height
}

// InnerSize returns the size available to the content.
func (m Model) InnerSize() (int, int) {
	return max(m.width-2, 0), max(m.height-2, 0)
}

// View renders the tooltip with the current content.
func (m Model) View() string {
	if m.width < 2 || m.height < 2 {
		return ""
	}

	innerWidth, contentHeight := m.InnerSize()

	top := m.renderTopBorder(innerWidth)
	bottom := m.renderBottomBorder(innerWidth)
	if contentHeight == 0 {
		return top + "\n" + bottom
	}
	return top + "\n" + strings.Join(m.renderBody(innerWidth, contentHeight), "\n") + "\n" + bottom
}

func (m Model) renderTopBorder(innerWidth int) string {
	topLeft := m.styles.Border.Render(m.border.TopLeft)
	topRight := m.styles.Border.Render(m.border.TopRight)
	hBar := m.styles.Border.Render(m.border.Top)

	available := max(innerWidth-2, 0)

	title := padLabel(m.title)
	titleWidth := lipgloss.Width(title)
	meta := padLabel(m.meta)
	metaWidth := lipgloss.Width(meta)

	// Meta goes first when space runs out, then the title is cut.
	if titleWidth+metaWidth > available {
		meta, metaWidth = "", 0
	}
	if titleWidth > available {
		title = lipgloss.NewStyle().MaxWidth(available).Render(title)
		titleWidth = lipgloss.Width(title)
	}

	remaining := max(available-titleWidth-metaWidth, 0)
	return topLeft + hBar +
		m.styles.Title.Render(title) +
		strings.Repeat(hBar, remaining) +
		m.styles.Meta.Render(meta) +
		hBar + topRight
}

func (m Model) renderBottomBorder(innerWidth int) string {
	bottomLeft := m.styles.Border.Render(m.border.BottomLeft)
	bottomRight := m.styles.Border.Render(m.border.BottomRight)
	hBar := m.styles.Border.Render(m.border.Bottom)
	return bottomLeft + strings.Repeat(hBar, innerWidth) + bottomRight
}

func (m Model) renderBody(innerWidth, contentHeight int) []string {
	lines := strings.Split(m.content, "\n")
	body := make([]string, 0, contentHeight)

	vBar := m.styles.Border.Render(m.border.Left)
	vBarRight := m.styles.Border.Render(m.border.Right)

	for i := range contentHeight {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		body = append(body, vBar+padLine(line, innerWidth)+vBarRight)
	}
	return body
}

func padLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	lineWidth := lipgloss.Width(line)
	switch {
	case lineWidth < width:
		line += strings.Repeat(" ", width-lineWidth)
	case lineWidth > width:
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}

func padLabel(label string) string {
	if label == "" {
		return label
	}
	return " " + label + " "
}
