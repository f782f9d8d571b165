// Package loader reads the raw CSV datasets into typed frames and exposes
// them as indicator series. Rows that cannot be parsed are skipped and
// counted; the datasets on disk stay the source of record and are never
// written to.
package loader

import (
	"fmt"
	"math"
	"sort"
	"time"

	"MacroGauge/internal/timeseries"
)

// Frame is one loaded dataset: a date axis plus named numeric columns.
// Missing cells are NaN and drop out when a column is turned into a
// Series.
type Frame struct {
	Name    string
	Dates   []time.Time
	columns map[string][]float64
}

// NewFrame builds an empty frame for the given dataset name.
func NewFrame(name string) *Frame {
	return &Frame{Name: name, columns: make(map[string][]float64)}
}

// AddRow appends one dated row. values may omit columns; those cells read
// as missing.
func (f *Frame) AddRow(date time.Time, values map[string]float64) {
	f.Dates = append(f.Dates, date)
	for col := range f.columns {
		v, ok := values[col]
		if !ok {
			v = math.NaN()
		}
		f.columns[col] = append(f.columns[col], v)
	}
	for col, v := range values {
		if _, ok := f.columns[col]; ok {
			continue
		}
		cells := make([]float64, len(f.Dates))
		for i := range cells {
			cells[i] = math.NaN()
		}
		cells[len(cells)-1] = v
		f.columns[col] = cells
	}
}

// Columns lists the numeric column names.
func (f *Frame) Columns() []string {
	out := make([]string, 0, len(f.columns))
	for col := range f.columns {
		out = append(out, col)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Dates) }

// LatestDate returns the date of the last row, zero when empty.
func (f *Frame) LatestDate() time.Time {
	if len(f.Dates) == 0 {
		return time.Time{}
	}
	return f.Dates[len(f.Dates)-1]
}

// Series extracts one column as a time series, dropping missing cells.
func (f *Frame) Series(column string) (*timeseries.Series, error) {
	cells, ok := f.columns[column]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", f.Name, column, timeseries.ErrUnknownColumn)
	}
	dates := make([]time.Time, 0, len(cells))
	values := make([]float64, 0, len(cells))
	for i, v := range cells {
		if math.IsNaN(v) {
			continue
		}
		dates = append(dates, f.Dates[i])
		values = append(values, v)
	}
	return timeseries.New(column, dates, values)
}

// SumSeries extracts the row-wise sum of several columns, keeping only
// rows where every column is present. Used for FX inflow/outflow totals.
func (f *Frame) SumSeries(name string, columns ...string) (*timeseries.Series, error) {
	dates := make([]time.Time, 0, len(f.Dates))
	values := make([]float64, 0, len(f.Dates))
	for i := range f.Dates {
		sum := 0.0
		complete := true
		for _, col := range columns {
			cells, ok := f.columns[col]
			if !ok {
				return nil, fmt.Errorf("%s.%s: %w", f.Name, col, timeseries.ErrUnknownColumn)
			}
			if math.IsNaN(cells[i]) {
				complete = false
				break
			}
			sum += cells[i]
		}
		if !complete {
			continue
		}
		dates = append(dates, f.Dates[i])
		values = append(values, sum)
	}
	return timeseries.New(name, dates, values)
}

// sortRows orders rows chronologically, keeping the last occurrence of a
// duplicated date. Raw files arrive hand-edited and are not always sorted.
func (f *Frame) sortRows() {
	n := len(f.Dates)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return f.Dates[idx[a]].Before(f.Dates[idx[b]]) })

	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if len(keep) > 0 && f.Dates[idx[i]].Equal(f.Dates[keep[len(keep)-1]]) {
			keep[len(keep)-1] = idx[i]
			continue
		}
		keep = append(keep, idx[i])
	}

	dates := make([]time.Time, len(keep))
	cols := make(map[string][]float64, len(f.columns))
	for col := range f.columns {
		cols[col] = make([]float64, len(keep))
	}
	for out, in := range keep {
		dates[out] = f.Dates[in]
		for col, cells := range f.columns {
			cols[col][out] = cells[in]
		}
	}
	f.Dates = dates
	f.columns = cols
}
