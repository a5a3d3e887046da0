// Package errorpopup renders an error panel over background content.
package errorpopup

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Styles holds the styles needed by the error popup.
type Styles struct {
	Title   lipgloss.Style
	Message lipgloss.Style
	Border  lipgloss.Style
}

// DefaultStyles returns default styles for the error popup.
func DefaultStyles() Styles {
	errorColor := lipgloss.Color("#FF0000")
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		Message: lipgloss.NewStyle().Faint(true),
		Border:  lipgloss.NewStyle().Foreground(errorColor),
	}
}

// maxPanelWidth caps the panel width.
const maxPanelWidth = 60

// Model defines state for the error popup component.
type Model struct {
	styles     Styles
	title      string
	message    string
	hint       string
	background string
	width      int
	height     int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new error popup model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		title:  "Error",
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

// WithSize sets the width and height.
func WithSize(w, h int) Option {
	return func(m *Model) {
		m.width = w
		m.height = h
	}
}

// WithTitle sets the title shown on the border.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithMessage sets the error message.
func WithMessage(msg string) Option {
	return func(m *Model) {
		m.message = msg
	}
}

// WithHint sets the line shown below the message.
func WithHint(hint string) Option {
	return func(m *Model) {
		m.hint = hint
	}
}

// SetSize sets the width and height.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetMessage sets the error message to display.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// SetBackground sets the background content to overlay on.
func (m *Model) SetBackground(content string) {
	m.background = content
}

// View renders the error popup overlaid on the background content.
func (m Model) View() string {
	if m.message == "" {
		return m.background
	}
	if m.width < 2 || m.height < 1 {
		return m.background
	}

	errorMessage := m.styles.Message.Render(m.message)
	if m.hint != "" {
		errorMessage += "\n\n" + m.styles.Message.Render(m.hint)
	}

	errorPanel := m.renderErrorBox(m.title, errorMessage, min(m.width, maxPanelWidth))

	contentLines := strings.Split(m.background, "\n")
	for len(contentLines) < m.height {
		contentLines = append(contentLines, "")
	}
	errorLines := strings.Split(errorPanel, "\n")

	// Center the panel vertically; lines beyond the height are dropped.
	startRow := max((m.height-len(errorLines))/2, 0)
	for i, errorLine := range errorLines {
		row := startRow + i
		if row >= m.height {
			break
		}
		contentLines[row] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, errorLine)
	}

	return strings.Join(contentLines, "\n")
}

// renderErrorBox renders content in a box with title on the top border.
func (m Model) renderErrorBox(title, content string, width int) string {
	border := lipgloss.RoundedBorder()

	titleText := " " + title + " "
	styledTitle := m.styles.Title.Render(titleText)
	titleWidth := lipgloss.Width(styledTitle)

	topLeft := m.styles.Border.Render(border.TopLeft)
	topRight := m.styles.Border.Render(border.TopRight)
	hBar := m.styles.Border.Render(border.Top)

	remainingWidth := width - 2 - titleWidth
	leftPad := 1
	rightPad := max(remainingWidth-leftPad, 0)

	topBorder := topLeft + strings.Repeat(hBar, leftPad) + styledTitle + strings.Repeat(hBar, rightPad) + topRight

	vBar := m.styles.Border.Render(border.Left)
	vBarRight := m.styles.Border.Render(border.Right)

	innerWidth := max(width-2, 0)
	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		Padding(0, 1)

	renderedContent := contentStyle.Render(content)
	contentLines := strings.Split(renderedContent, "\n")

	middleLines := make([]string, 0, len(contentLines))
	for _, line := range contentLines {
		lineWidth := lipgloss.Width(line)
		if lineWidth < innerWidth {
			line += strings.Repeat(" ", innerWidth-lineWidth)
		}
		middleLines = append(middleLines, vBar+line+vBarRight)
	}

	bottomLeft := m.styles.Border.Render(border.BottomLeft)
	bottomRight := m.styles.Border.Render(border.BottomRight)
	bottomBorder := bottomLeft + strings.Repeat(hBar, innerWidth) + bottomRight

	return topBorder + "\n" + strings.Join(middleLines, "\n") + "\n" + bottomBorder
}
