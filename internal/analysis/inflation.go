package analysis

import (
	"fmt"

	"MacroGauge/internal/indicator"
	"MacroGauge/internal/timeseries"
)

// InflationBand is the central bank target range for annual inflation.
type InflationBand struct {
	Target float64 `yaml:"target" default:"7"`
	Low    float64 `yaml:"low" default:"6"`
	High   float64 `yaml:"high" default:"8"`
}

// InflationState grades the annual inflation print against the target
// band. yoy is the headline annual rate series; the month step between the
// two latest prints stands in for MoM pressure.
func InflationState(yoy *timeseries.Series, band InflationBand) (*Gauge, error) {
	latest, err := yoy.Last()
	if err != nil {
		return nil, err
	}
	chg, err := indicator.MoM(yoy)
	if err != nil {
		return nil, err
	}

	g := &Gauge{Name: "inflation", Value: latest.Value, MoMChange: chg.Absolute}
	switch {
	case latest.Value > 12 || (chg.Absolute > 0.4 && latest.Value > band.High):
		g.Status = StatusRed
		g.Commentary = "Inflation is materially above target and re-accelerating"
		g.Confidence = 85
	case latest.Value > band.High && latest.Value <= 12:
		g.Status = StatusAmber
		g.Commentary = "Inflation remains above target with limited disinflation progress"
		g.Confidence = 70
	case latest.Value >= band.Low:
		g.Status = StatusGreen
		g.Commentary = "Inflation is within the central bank target range"
		g.Confidence = 90
	default:
		g.Status = StatusGreen
		g.Commentary = "Inflation is below target with easing price pressures"
		g.Confidence = 75
	}
	return g, nil
}

// SummarizeInflation renders the headline sentence used on the dashboard
// and in the brief.
func SummarizeInflation(yoy *timeseries.Series) (string, error) {
	latest, err := yoy.Last()
	if err != nil {
		return "", err
	}
	chg, err := indicator.MoM(yoy)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"As of %s, headline inflation is %.2f%%. Month-on-month change: %.2f%%.",
		latest.Date.Format("Jan 2006"), latest.Value, chg.Absolute,
	), nil
}
