// Package charts holds layout helpers shared by chart views.
package charts

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// RenderCentered centers content within a given width and height.
// Handles multi-line content by centering vertically and horizontally.
func RenderCentered(width, height int, value string) string {
	if height < 1 {
		return ""
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}
	if width <= 0 {
		return strings.Join(lines, "\n")
	}

	// Handle multi-line content
	contentLines := strings.Split(value, "\n")
	contentHeight := len(contentLines)
	startLine := max((height-contentHeight)/2, 0)

	maxWidthStyle := lipgloss.NewStyle()
	for i, contentLine := range contentLines {
		lineIdx := startLine + i
		if lineIdx >= height {
			break
		}
		trimmed := maxWidthStyle.MaxWidth(width).Render(contentLine)
		pad := max((width-lipgloss.Width(trimmed))/2, 0)
		lines[lineIdx] = strings.Repeat(" ", pad) + trimmed
	}

	return strings.Join(lines, "\n")
}

// Overlay splices fg over bg with its top-left corner at column x, row y.
// Rows of fg outside bg and columns left of zero are dropped; bg lines that
// are too short are padded with spaces.
func Overlay(bg, fg string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, fgLine := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLines[row] = spliceLine(bgLines[row], fgLine, x)
	}
	return strings.Join(bgLines, "\n")
}

func spliceLine(bg, fg string, x int) string {
	if x < 0 {
		fg = ansi.Cut(fg, -x, ansi.StringWidth(fg))
		x = 0
	}
	bgWidth := ansi.StringWidth(bg)
	if bgWidth < x {
		bg += strings.Repeat(" ", x-bgWidth)
		bgWidth = x
	}
	fgWidth := ansi.StringWidth(fg)

	left := ansi.Truncate(bg, x, "")
	right := ""
	if end := x + fgWidth; end < bgWidth {
		right = ansi.Cut(bg, end, bgWidth)
	}
	return left + fg + right
}
