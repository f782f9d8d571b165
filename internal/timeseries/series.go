package timeseries

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptySeries   = errors.New("series has no observations")
	ErrNonMonotonic  = errors.New("observation dates are not strictly increasing")
	ErrLenMismatch   = errors.New("dates and values have different lengths")
	ErrUnknownColumn = errors.New("unknown value column")
)

// Point is a single dated observation.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is an ordered univariate time series. Dates are strictly
// increasing and unique. Gaps between periods are tolerated and never
// interpolated.
type Series struct {
	Name   string
	points []Point
}

// New builds a Series from parallel date and value slices. Input must be
// chronologically sorted with unique dates.
func New(name string, dates []time.Time, values []float64) (*Series, error) {
	if len(dates) != len(values) {
		return nil, fmt.Errorf("%s: dates=%d values=%d, %w", name, len(dates), len(values), ErrLenMismatch)
	}

	pts := make([]Point, 0, len(dates))
	var last time.Time
	for i := range dates {
		if i > 0 && !dates[i].After(last) {
			return nil, fmt.Errorf("%s: index %d, %w", name, i, ErrNonMonotonic)
		}
		last = dates[i]
		pts = append(pts, Point{Date: dates[i], Value: values[i]})
	}

	return &Series{Name: name, points: pts}, nil
}

// Len returns the number of observations.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// At returns the i-th observation, oldest first.
func (s *Series) At(i int) Point { return s.points[i] }

// Last returns the most recent observation.
func (s *Series) Last() (Point, error) {
	if s.Len() == 0 {
		return Point{}, ErrEmptySeries
	}
	return s.points[len(s.points)-1], nil
}

// Prior returns the observation n periods before the latest. Prior(0) is
// the latest observation itself.
func (s *Series) Prior(n int) (Point, error) {
	if s.Len() <= n {
		return Point{}, fmt.Errorf("need %d observations, have %d: %w", n+1, s.Len(), ErrEmptySeries)
	}
	return s.points[len(s.points)-1-n], nil
}

// Tail returns up to the last n observations, fewer when the series is
// shorter.
func (s *Series) Tail(n int) []Point {
	if s.Len() == 0 || n <= 0 {
		return nil
	}
	if n > s.Len() {
		n = s.Len()
	}
	return s.points[len(s.points)-n:]
}

// Values returns all observation values, oldest first.
func (s *Series) Values() []float64 {
	out := make([]float64, s.Len())
	for i, p := range s.points {
		out[i] = p.Value
	}
	return out
}

// Dates returns all observation dates, oldest first.
func (s *Series) Dates() []time.Time {
	out := make([]time.Time, s.Len())
	for i, p := range s.points {
		out[i] = p.Date
	}
	return out
}

// Points returns a copy of all observations.
func (s *Series) Points() []Point {
	out := make([]Point, s.Len())
	copy(out, s.points)
	return out
}

// Since returns the sub-series of observations on or after t.
func (s *Series) Since(t time.Time) *Series {
	for i, p := range s.points {
		if !p.Date.Before(t) {
			return &Series{Name: s.Name, points: s.points[i:]}
		}
	}
	return &Series{Name: s.Name}
}

// Through returns the sub-series of observations up to and including t.
// Used to pin a snapshot to a requested month.
func (s *Series) Through(t time.Time) *Series {
	for i := len(s.points) - 1; i >= 0; i-- {
		if !s.points[i].Date.After(t) {
			return &Series{Name: s.Name, points: s.points[:i+1]}
		}
	}
	return &Series{Name: s.Name}
}
