// Package help renders the keybindings panel.
package help

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/gapscope/internal/ui/components/tooltip"
)

// Section groups bindings or free text lines under a title.
type Section struct {
	Title    string
	Bindings []key.Binding
	Lines    []string
}

// Styles holds the styles used by the help panel.
type Styles struct {
	Title   lipgloss.Style
	Border  lipgloss.Style
	Section lipgloss.Style
	Key     lipgloss.Style
	Desc    lipgloss.Style
}

// Model is the help panel. It is closed until Toggle opens it.
type Model struct {
	styles    Styles
	sections  []Section
	open      bool
	width     int
	height    int
	columnGap int
}

// Option configures the help panel.
type Option func(*Model)

// New creates a help panel.
func New(opts ...Option) Model {
	m := Model{columnGap: 4}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSections sets the help sections.
func WithSections(sections []Section) Option {
	return func(m *Model) { m.sections = sections }
}

// SetSections replaces the help sections.
func (m *Model) SetSections(sections []Section) {
	m.sections = sections
}

// SetSize sets the size of the area the panel is centered in.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Toggle opens a closed panel and closes an open one.
func (m *Model) Toggle() {
	m.open = !m.open
}

// Close closes the panel.
func (m *Model) Close() {
	m.open = false
}

// Open reports whether the panel is shown.
func (m Model) Open() bool {
	return m.open
}

// View renders the panel, or an empty string when it is closed or does not
// fit.
func (m Model) View() string {
	if !m.open || m.width < 12 || m.height < 5 {
		return ""
	}

	width := min(max(m.width*2/3, 40), m.width-2)
	inner := width - 4
	lines := m.columnLines(inner)
	height := min(len(lines)+2, m.height-2)
	if height < 3 {
		return ""
	}
	lines = lines[:min(len(lines), height-2)]
	for i, line := range lines {
		lines[i] = " " + line
	}

	box := tooltip.New(
		tooltip.WithStyles(tooltip.Styles{
			Title:  m.styles.Title,
			Meta:   m.styles.Desc,
			Border: m.styles.Border,
		}),
		tooltip.WithTitle("Help"),
		tooltip.WithMeta("? to close"),
		tooltip.WithSize(width, height),
		tooltip.WithContent(strings.Join(lines, "\n")),
	)
	return box.View()
}

// Origin returns where the panel of the given size is centered.
func (m Model) Origin(width, height int) (int, int) {
	return max((m.width-width)/2, 0), max((m.height-height)/2, 0)
}

func (m Model) columnLines(width int) []string {
	if width <= 0 || len(m.sections) == 0 {
		return nil
	}

	left, right := splitSections(m.sections)
	gap := m.columnGap
	if width <= gap+10 {
		gap = 2
	}
	columnWidth := max((width-gap)/2, 1)
	leftLines := renderSections(left, columnWidth, m.styles)
	rightLines := renderSections(right, columnWidth, m.styles)

	rows := max(len(leftLines), len(rightLines))
	lines := make([]string, 0, rows)
	for i := range rows {
		var l, r string
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		lines = append(lines, padRight(l, columnWidth)+strings.Repeat(" ", gap)+padRight(r, columnWidth))
	}
	return lines
}

// splitSections alternates sections between the two columns.
func splitSections(sections []Section) ([]Section, []Section) {
	var left, right []Section
	for i, section := range sections {
		if i%2 == 0 {
			left = append(left, section)
		} else {
			right = append(right, section)
		}
	}
	return left, right
}

func renderSections(sections []Section, width int, styles Styles) []string {
	if len(sections) == 0 || width <= 0 {
		return nil
	}

	lines := make([]string, 0, len(sections)*4)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		if title := strings.TrimSpace(section.Title); title != "" {
			lines = append(lines, ansi.Truncate(styles.Section.Render(title), width, ""))
		}
		for _, line := range section.Lines {
			lines = append(lines, ansi.Truncate(line, width, ""))
		}

		var keys, descs []string
		keyWidth := 0
		for _, binding := range section.Bindings {
			if !binding.Enabled() {
				continue
			}
			h := binding.Help()
			k := strings.TrimSpace(h.Key)
			if k == "" {
				continue
			}
			keyWidth = max(keyWidth, ansi.StringWidth(k))
			keys = append(keys, k)
			descs = append(descs, strings.TrimSpace(h.Desc))
		}
		for j, k := range keys {
			line := styles.Key.Render(padRight(k, keyWidth))
			if descs[j] != "" {
				line += " " + styles.Desc.Render(descs[j])
			}
			lines = append(lines, ansi.Truncate(line, width, ""))
		}
	}
	return lines
}

func padRight(value string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(value)
	switch {
	case w == width:
		return value
	case w > width:
		return ansi.Truncate(value, width, "")
	default:
		return value + strings.Repeat(" ", width-w)
	}
}
