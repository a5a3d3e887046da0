// Package extent computes inclusive numeric ranges over a projected field.
package extent

import (
	"errors"
	"math"
)

// ErrEmptyInput is returned when an extent is requested over no values.
var ErrEmptyInput = errors.New("extent of empty input")

// Extent is an inclusive [Min, Max] range.
type Extent struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (e Extent) Span() float64 {
	return e.Max - e.Min
}

// Degenerate reports whether the extent covers a single value.
func (e Extent) Degenerate() bool {
	return e.Min == e.Max
}

// Contains reports whether v lies within the extent.
func (e Extent) Contains(v float64) bool {
	return v >= e.Min && v <= e.Max
}

// Of returns the smallest extent containing every value. Both bounds are
// elements of values. NaN values are skipped.
func Of(values []float64) (Extent, error) {
	var (
		e     Extent
		found bool
	)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if !found {
			e.Min, e.Max = v, v
			found = true
			continue
		}
		e.Min = min(e.Min, v)
		e.Max = max(e.Max, v)
	}
	if !found {
		return Extent{}, ErrEmptyInput
	}
	return e, nil
}

// WithPadding returns Of(values) widened by loPad below and hiPad above.
func WithPadding(values []float64, loPad, hiPad float64) (Extent, error) {
	e, err := Of(values)
	if err != nil {
		return Extent{}, err
	}
	return Extent{Min: e.Min - loPad, Max: e.Max + hiPad}, nil
}

// Project maps every item through fn.
func Project[T any](items []T, fn func(T) float64) []float64 {
	out := make([]float64, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// OfField is Of over a field projected from items.
func OfField[T any](items []T, fn func(T) float64) (Extent, error) {
	return Of(Project(items, fn))
}
