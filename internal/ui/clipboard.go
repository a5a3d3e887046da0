package ui

import (
	"bytes"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/kpumuk/gapscope/internal/dataset"
)

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	entity string
	err    error
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func copySeriesCmd(entity string, rows []dataset.Row, cols dataset.Columns) tea.Cmd {
	if len(rows) == 0 {
		return nil
	}
	return func() tea.Msg {
		var buf bytes.Buffer
		if err := dataset.WriteCSV(&buf, rows, cols); err != nil {
			return copiedMsg{entity: entity, err: err}
		}
		return copiedMsg{entity: entity, err: writeClipboard(buf.String())}
	}
}
