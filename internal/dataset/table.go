// Package dataset holds the immutable per-entity measurement table.
package dataset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aclements/go-gg/table"
)

var (
	// ErrDataLoad marks a failure to fetch or parse the source.
	ErrDataLoad = errors.New("data load failed")
	// ErrEmptyData is returned when a source yields no usable rows.
	ErrEmptyData = errors.New("no data rows")
	// ErrDuplicateRow is returned when an entity appears twice in one time slice.
	ErrDuplicateRow = errors.New("duplicate row for entity and time slice")
	// ErrInvalidRow is returned for rows that violate the data model.
	ErrInvalidRow = errors.New("invalid row")
)

const (
	colEntity = "entity"
	colTime   = "time"
	colX      = "x"
	colY      = "y"
	colSize   = "size"
)

// Row is one measurement of one entity in one time slice.
type Row struct {
	Entity    string
	TimeSlice int
	MetricX   float64
	MetricY   float64
	Size      float64
}

// Table is an ordered, read-only collection of rows. Every accessor returns
// a fresh copy.
type Table struct {
	data    *table.Table
	skipped int
}

// New builds a table from rows. Sizes must be positive and an entity may
// appear at most once per time slice.
func New(rows []Row) (*Table, error) {
	type key struct {
		entity string
		slice  int
	}
	seen := make(map[key]struct{}, len(rows))

	entities := make([]string, len(rows))
	times := make([]int, len(rows))
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	sizes := make([]float64, len(rows))
	for i, r := range rows {
		if r.Entity == "" {
			return nil, fmt.Errorf("%w: row %d has no entity", ErrInvalidRow, i)
		}
		if !(r.Size > 0) {
			return nil, fmt.Errorf("%w: %s/%d has size %v", ErrInvalidRow, r.Entity, r.TimeSlice, r.Size)
		}
		k := key{entity: r.Entity, slice: r.TimeSlice}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: %s/%d", ErrDuplicateRow, r.Entity, r.TimeSlice)
		}
		seen[k] = struct{}{}

		entities[i] = r.Entity
		times[i] = r.TimeSlice
		xs[i] = r.MetricX
		ys[i] = r.MetricY
		sizes[i] = r.Size
	}

	data := new(table.Builder).
		Add(colEntity, entities).
		Add(colTime, times).
		Add(colX, xs).
		Add(colY, ys).
		Add(colSize, sizes).
		Done()
	return &Table{data: data}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil || t.data == nil {
		return 0
	}
	return t.data.Len()
}

// Skipped returns how many source records were dropped while loading.
func (t *Table) Skipped() int {
	if t == nil {
		return 0
	}
	return t.skipped
}

// Rows returns every row in load order.
func (t *Table) Rows() []Row {
	if t.Len() == 0 {
		return nil
	}
	return rowsOf(t.data)
}

// Slice returns the rows of one time slice, in load order.
func (t *Table) Slice(timeSlice int) []Row {
	if t.Len() == 0 {
		return nil
	}
	return rowsOfGrouping(table.FilterEq(t.data, colTime, timeSlice))
}

// Series returns every row of one entity across all time slices, in load
// order. Callers that need chronological order sort the copy.
func (t *Table) Series(entity string) []Row {
	if t.Len() == 0 {
		return nil
	}
	return rowsOfGrouping(table.FilterEq(t.data, colEntity, entity))
}

// TimeSlices returns the distinct time slices in ascending order.
func (t *Table) TimeSlices() []int {
	if t.Len() == 0 {
		return nil
	}
	times := slices.Clone(t.data.MustColumn(colTime).([]int))
	slices.Sort(times)
	return slices.Compact(times)
}

// Entities returns the distinct entities in ascending order.
func (t *Table) Entities() []string {
	if t.Len() == 0 {
		return nil
	}
	names := slices.Clone(t.data.MustColumn(colEntity).([]string))
	slices.Sort(names)
	return slices.Compact(names)
}

// HasTimeSlice reports whether any row belongs to timeSlice.
func (t *Table) HasTimeSlice(timeSlice int) bool {
	_, ok := slices.BinarySearch(t.TimeSlices(), timeSlice)
	return ok
}

func rowsOfGrouping(g table.Grouping) []Row {
	var out []Row
	for _, gid := range g.Tables() {
		if sub := g.Table(gid); sub != nil {
			out = append(out, rowsOf(sub)...)
		}
	}
	return out
}

func rowsOf(t *table.Table) []Row {
	n := t.Len()
	if n == 0 {
		return nil
	}
	entities := t.MustColumn(colEntity).([]string)
	times := t.MustColumn(colTime).([]int)
	xs := t.MustColumn(colX).([]float64)
	ys := t.MustColumn(colY).([]float64)
	sizes := t.MustColumn(colSize).([]float64)

	out := make([]Row, n)
	for i := range n {
		out[i] = Row{
			Entity:    entities[i],
			TimeSlice: times[i],
			MetricX:   xs[i],
			MetricY:   ys[i],
			Size:      sizes[i],
		}
	}
	return out
}
