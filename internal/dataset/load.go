package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Columns names the source fields that feed each Row field.
type Columns struct {
	Entity string `koanf:"entity"`
	Time   string `koanf:"time"`
	X      string `koanf:"x"`
	Y      string `koanf:"y"`
	Size   string `koanf:"size"`
}

// DefaultColumns returns the gapminder column names.
func DefaultColumns() Columns {
	return Columns{
		Entity: "country",
		Time:   "year",
		X:      "fertility",
		Y:      "life_expectancy",
		Size:   "population",
	}
}

// Load fetches source (a file path or an http(s) URL) and parses it as CSV.
// Records with missing or non-numeric measurements are skipped and counted.
func Load(ctx context.Context, source string, cols Columns) (*Table, error) {
	rc, err := open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	t, err := Parse(rc, cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDataLoad, source, err)
	}
	return t, nil
}

// Parse reads CSV with a header row from r.
func Parse(r io.Reader, cols Columns) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyData
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := columnIndexes(header, cols)
	if err != nil {
		return nil, err
	}

	var (
		rows    []Row
		skipped int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row, ok := parseRecord(record, idx)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyData
	}

	t, err := New(rows)
	if err != nil {
		return nil, err
	}
	t.skipped = skipped
	return t, nil
}

type fieldIndex struct {
	entity, time, x, y, size int
}

func columnIndexes(header []string, cols Columns) (fieldIndex, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(name)] = i
	}
	lookup := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, fmt.Errorf("missing column %q", name)
		}
		return i, nil
	}

	var (
		idx  fieldIndex
		errs []error
		err  error
	)
	if idx.entity, err = lookup(cols.Entity); err != nil {
		errs = append(errs, err)
	}
	if idx.time, err = lookup(cols.Time); err != nil {
		errs = append(errs, err)
	}
	if idx.x, err = lookup(cols.X); err != nil {
		errs = append(errs, err)
	}
	if idx.y, err = lookup(cols.Y); err != nil {
		errs = append(errs, err)
	}
	if idx.size, err = lookup(cols.Size); err != nil {
		errs = append(errs, err)
	}
	return idx, errors.Join(errs...)
}

func parseRecord(record []string, idx fieldIndex) (Row, bool) {
	field := func(i int) string {
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	entity := field(idx.entity)
	if entity == "" {
		return Row{}, false
	}
	year, ok := parseTimeSlice(field(idx.time))
	if !ok {
		return Row{}, false
	}
	x, okX := parseNumber(field(idx.x))
	y, okY := parseNumber(field(idx.y))
	size, okSize := parseNumber(field(idx.size))
	if !okX || !okY || !okSize || size <= 0 {
		return Row{}, false
	}
	return Row{Entity: entity, TimeSlice: year, MetricX: x, MetricY: y, Size: size}, true
}

// parseTimeSlice accepts integer years written as "1980" or "1980.0".
func parseTimeSlice(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, ok := parseNumber(s)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func open(ctx context.Context, source string) (io.ReadCloser, error) {
	if source == "" {
		return nil, errors.New("no data source configured")
	}
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open data file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", source, resp.Status)
	}
	return resp.Body, nil
}
