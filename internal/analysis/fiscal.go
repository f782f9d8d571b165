package analysis

import (
	"fmt"
	"time"

	"MacroGauge/internal/timeseries"

	"gonum.org/v1/gonum/stat"
)

// FiscalRegime labels domestic financing conditions.
type FiscalRegime string

const (
	FiscalAccommodative FiscalRegime = "Accommodative"
	FiscalNeutral       FiscalRegime = "Neutral"
	FiscalTightening    FiscalRegime = "Tightening"
	FiscalStressed      FiscalRegime = "Stressed"
	FiscalCritical      FiscalRegime = "Critical"
)

// FiscalInputs are the aligned monthly inputs to the stress index. All
// slices share the Dates axis; rows missing any component must be dropped
// by the caller before construction.
type FiscalInputs struct {
	Dates            []time.Time
	YieldYoY         []float64 // weighted avg T-bill yield, YoY %
	ShortTermRatio   []float64 // 91d+182d outstanding over total outstanding
	IssuancePressure []float64 // 12m rolling sales over outstanding
}

// FiscalPoint is one month of the stress index.
type FiscalPoint struct {
	Date   time.Time    `json:"date"`
	Index  float64      `json:"index"`
	Regime FiscalRegime `json:"regime"`
}

// FiscalStress standardizes the three pressure components over the whole
// sample, clips each z-score to [-3, 3] and averages them into the index.
func FiscalStress(in FiscalInputs) ([]FiscalPoint, error) {
	n := len(in.Dates)
	if n == 0 {
		return nil, timeseries.ErrEmptySeries
	}
	if len(in.YieldYoY) != n || len(in.ShortTermRatio) != n || len(in.IssuancePressure) != n {
		return nil, timeseries.ErrLenMismatch
	}

	zYield := zscores(in.YieldYoY)
	zRoll := zscores(in.ShortTermRatio)
	zIssue := zscores(in.IssuancePressure)

	out := make([]FiscalPoint, n)
	for i := 0; i < n; i++ {
		idx := (clip(zYield[i], -3, 3) + clip(zRoll[i], -3, 3) + clip(zIssue[i], -3, 3)) / 3
		out[i] = FiscalPoint{Date: in.Dates[i], Index: idx, Regime: fiscalRegime(idx)}
	}
	return out, nil
}

func fiscalRegime(x float64) FiscalRegime {
	switch {
	case x <= -0.5:
		return FiscalAccommodative
	case x <= 0.5:
		return FiscalNeutral
	case x <= 1.5:
		return FiscalTightening
	case x <= 2.5:
		return FiscalStressed
	default:
		return FiscalCritical
	}
}

// FiscalState reduces the index series to a gauge with regime commentary.
func FiscalState(points []FiscalPoint) (*Gauge, error) {
	if len(points) == 0 {
		return nil, timeseries.ErrEmptySeries
	}
	latest := points[len(points)-1]
	prev := latest
	if len(points) > 1 {
		prev = points[len(points)-2]
	}

	g := &Gauge{
		Name:      "fiscal",
		Label:     string(latest.Regime),
		Value:     latest.Index,
		MoMChange: latest.Index - prev.Index,
	}

	head := fmt.Sprintf(
		"The Fiscal Stress Index currently stands at %.2f, placing the domestic financing environment in a %s regime. ",
		latest.Index, latest.Regime,
	)
	switch latest.Regime {
	case FiscalStressed, FiscalCritical:
		g.Status = StatusRed
		g.Confidence = 85
		g.Commentary = head + "This reflects rising funding costs, elevated rollover exposure, and increased issuance pressure, which together signal heightened vulnerability in domestic debt markets."
	case FiscalTightening:
		g.Status = StatusAmber
		g.Confidence = 70
		g.Commentary = head + "Financing conditions are tightening, suggesting emerging cost and liquidity pressures that warrant close monitoring."
	default:
		g.Status = StatusGreen
		g.Confidence = 90
		g.Commentary = head + "Domestic financing conditions remain broadly supportive, with manageable costs and refinancing risks."
	}
	return g, nil
}

// FiscalTrafficLight grades issuance against the opening balance: the
// higher the share of the stock re-sold this month, the tighter the
// financing pressure.
func FiscalTrafficLight(sales, openingBalance *timeseries.Series) (*Gauge, error) {
	latest, err := sales.Last()
	if err != nil {
		return nil, err
	}
	open, err := openingBalance.Last()
	if err != nil {
		return nil, err
	}

	var ratio float64
	if open.Value != 0 {
		ratio = latest.Value / open.Value
	}

	g := &Gauge{Name: "fiscal", Value: latest.Value}
	if prior, err := sales.Prior(1); err == nil && prior.Value != 0 {
		g.MoMChange = (latest.Value - prior.Value) / prior.Value * 100
	}
	switch {
	case ratio < 0.2:
		g.Status = StatusGreen
	case ratio < 0.4:
		g.Status = StatusAmber
	default:
		g.Status = StatusRed
	}
	g.Commentary = fmt.Sprintf("MoM T-bills sales change: %.2f%%", g.MoMChange)
	g.Confidence = Confidence(g.MoMChange/100, nil, nil)
	return g, nil
}

// zscores standardizes against the full-sample mean and sample stddev.
func zscores(xs []float64) []float64 {
	mean, std := stat.MeanStdDev(xs, nil)
	std = guardZero(std)
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = (x - mean) / std
	}
	return out
}
