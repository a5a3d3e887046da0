package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes rows with a header named by cols. Parse reads the output
// back unchanged.
func WriteCSV(w io.Writer, rows []Row, cols Columns) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{cols.Entity, cols.Time, cols.X, cols.Y, cols.Size}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Entity,
			strconv.Itoa(r.TimeSlice),
			strconv.FormatFloat(r.MetricX, 'g', -1, 64),
			strconv.FormatFloat(r.MetricY, 'g', -1, 64),
			strconv.FormatFloat(r.Size, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s/%d: %w", r.Entity, r.TimeSlice, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
