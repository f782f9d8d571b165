// Package indicator derives per-indicator statistics from raw time series:
// latest observation, period-over-period change, rolling averages and
// threshold classification. All functions are pure; callers own the input
// series and every invocation with the same input yields the same output.
package indicator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"MacroGauge/internal/timeseries"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrInsufficientData = errors.New("insufficient observations for change computation")
	ErrNoThresholds     = errors.New("no classification thresholds configured")
)

// Change is a period-over-period movement. Percent is NaN and
// PercentDefined is false when the prior value is zero, since a percent
// change has no meaning there. The wire shape comes from MarshalJSON,
// which encodes an undefined percent as null.
type Change struct {
	Absolute       float64
	Percent        float64
	PercentDefined bool
}

// Threshold is one ordered classification band: values up to and including
// Upper take Label. The final band of a set acts as the catch-all.
type Threshold struct {
	Upper float64 `json:"upper" yaml:"upper"`
	Label string  `json:"label" yaml:"label"`
}

// Summary is the derived view of a single indicator for one snapshot.
type Summary struct {
	Name       string    `json:"name"`
	LatestDate time.Time `json:"latest_date"`
	Latest     float64   `json:"latest"`
	Prior      float64   `json:"prior"`
	Change     Change    `json:"change"`
	RollingAvg float64   `json:"rolling_avg"`
	Window     int       `json:"window"`
	Label      string    `json:"label,omitempty"`
}

// Latest returns the most recent observation of the series.
func Latest(s *timeseries.Series) (timeseries.Point, error) {
	return s.Last()
}

// MoM computes the change between the two most recent observations.
func MoM(s *timeseries.Series) (Change, error) {
	return ChangeOver(s, 1)
}

// YoY computes the change against the observation twelve periods back,
// positional like the source data (monthly rows).
func YoY(s *timeseries.Series) (Change, error) {
	return ChangeOver(s, 12)
}

// ChangeOver computes the change between the latest observation and the one
// periods entries before it.
func ChangeOver(s *timeseries.Series, periods int) (Change, error) {
	if s.Len() == 0 {
		return Change{}, timeseries.ErrEmptySeries
	}
	if s.Len() <= periods {
		return Change{}, fmt.Errorf("need %d observations, have %d: %w", periods+1, s.Len(), ErrInsufficientData)
	}

	latest, _ := s.Last()
	prior, _ := s.Prior(periods)

	c := Change{Absolute: latest.Value - prior.Value}
	if prior.Value == 0 {
		c.Percent = math.NaN()
		return c, nil
	}
	c.Percent = c.Absolute / prior.Value * 100
	c.PercentDefined = true
	return c, nil
}

// RollingAverage returns the mean of the last window observations, or of
// the whole series when it is shorter. Sparse data is expected, so a short
// series degrades gracefully instead of erroring.
func RollingAverage(s *timeseries.Series, window int) (float64, error) {
	if s.Len() == 0 {
		return 0, timeseries.ErrEmptySeries
	}
	tail := s.Tail(window)
	values := make([]float64, len(tail))
	for i, p := range tail {
		values[i] = p.Value
	}
	return stat.Mean(values, nil), nil
}

// Classify maps a value onto the first band whose upper bound it does not
// exceed, evaluated in ascending order. Values above every bound take the
// final band's label, so the mapping is total over the real line.
func Classify(value float64, thresholds []Threshold) (string, error) {
	if len(thresholds) == 0 {
		return "", ErrNoThresholds
	}
	for _, t := range thresholds {
		if value <= t.Upper {
			return t.Label, nil
		}
	}
	return thresholds[len(thresholds)-1].Label, nil
}

// Options configures Summarize.
type Options struct {
	Window     int         // rolling average window, defaults to 3
	Thresholds []Threshold // optional classification bands
}

// Summarize runs the full pipeline over one series. The change requires at
// least two observations; everything else works from one.
func Summarize(s *timeseries.Series, opt Options) (*Summary, error) {
	if opt.Window <= 0 {
		opt.Window = 3
	}

	latest, err := Latest(s)
	if err != nil {
		return nil, err
	}

	chg, err := MoM(s)
	if err != nil {
		return nil, err
	}
	prior, _ := s.Prior(1)

	avg, err := RollingAverage(s, opt.Window)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Name:       s.Name,
		LatestDate: latest.Date,
		Latest:     latest.Value,
		Prior:      prior.Value,
		Change:     chg,
		RollingAvg: avg,
		Window:     opt.Window,
	}

	if len(opt.Thresholds) > 0 {
		label, err := Classify(latest.Value, opt.Thresholds)
		if err != nil {
			return nil, err
		}
		sum.Label = label
	}

	return sum, nil
}
