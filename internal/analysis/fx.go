package analysis

import (
	"fmt"
	"time"

	"MacroGauge/internal/indicator"
	"MacroGauge/internal/timeseries"

	"gonum.org/v1/gonum/stat"
)

// Stress index component weights.
const (
	fxWeightPrice    = 0.35
	fxWeightVol      = 0.25
	fxWeightMoM      = 0.25
	fxWeightReserves = 0.15
)

// StressPoint holds the z-score components and the weighted FX stress
// index for one month. The index is clipped to [-3, 3].
type StressPoint struct {
	Date      time.Time `json:"date"`
	ZPrice    float64   `json:"z_price"`
	ZVol      float64   `json:"z_vol"`
	ZMoM      float64   `json:"z_mom"`
	ZReserves float64   `json:"z_reserves"`
	Index     float64   `json:"index"`
}

// FXSummary is the headline month-over-month FX reading.
type FXSummary struct {
	Date       time.Time        `json:"date"`
	Rate       float64          `json:"rate"`
	Change     indicator.Change `json:"change"`
	Direction  string           `json:"direction"`
	Commentary string           `json:"commentary"`
}

// SummarizeFX reads the latest USD/ZMW level and wording for the month
// move. Depreciation (rate up) reads as the Kwacha weakening.
func SummarizeFX(fx *timeseries.Series) (*FXSummary, error) {
	latest, err := fx.Last()
	if err != nil {
		return nil, err
	}
	chg, err := indicator.MoM(fx)
	if err != nil {
		return nil, err
	}

	direction := "remained stable"
	switch {
	case chg.Absolute > 0:
		direction = "weakened"
	case chg.Absolute < 0:
		direction = "strengthened"
	}

	s := &FXSummary{
		Date:      latest.Date,
		Rate:      latest.Value,
		Change:    chg,
		Direction: direction,
	}
	s.Commentary = fmt.Sprintf(
		"As of %s, the ZMW vs USD stands at %.2f. Compared to last month the ZMW %s by %.2f%%.",
		latest.Date.Format("Jan 2006"), latest.Value, direction, abs(chg.Percent),
	)
	return s, nil
}

// FXStressComponents computes rolling z-scores of the FX level, its
// volatility and its month move, plus an inverse reserves z-score when a
// reserves series is supplied. Rolling statistics shrink to the available
// history at the head of the series.
func FXStressComponents(fx *timeseries.Series, reserves *timeseries.Series, window int) ([]StressPoint, error) {
	if fx.Len() == 0 {
		return nil, timeseries.ErrEmptySeries
	}
	if window <= 0 {
		window = 12
	}

	pts := fx.Points()
	n := len(pts)

	mom := make([]float64, n)
	for i := 1; i < n; i++ {
		if pts[i-1].Value != 0 {
			mom[i] = (pts[i].Value - pts[i-1].Value) / pts[i-1].Value * 100
		}
	}

	stds := make([]float64, n)
	out := make([]StressPoint, n)
	for i := 0; i < n; i++ {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		values := make([]float64, 0, window)
		for j := lo; j <= i; j++ {
			values = append(values, pts[j].Value)
		}
		mean := stat.Mean(values, nil)
		std := guardZero(stat.StdDev(values, nil))
		stds[i] = std

		momWin := mom[lo : i+1]
		momStd := guardZero(stat.StdDev(momWin, nil))

		stdWin := stds[lo : i+1]
		stdMean := guardZero(stat.Mean(stdWin, nil))

		out[i] = StressPoint{
			Date:   pts[i].Date,
			ZPrice: (pts[i].Value - mean) / std,
			ZVol:   std / stdMean,
			ZMoM:   mom[i] / momStd,
		}
	}

	if reserves != nil && reserves.Len() > 0 {
		zres := reserveStress(reserves, window)
		for i := range out {
			if z, ok := zres[out[i].Date]; ok {
				out[i].ZReserves = z
			}
		}
	}

	for i := range out {
		idx := out[i].ZPrice*fxWeightPrice +
			out[i].ZVol*fxWeightVol +
			out[i].ZMoM*fxWeightMoM +
			out[i].ZReserves*fxWeightReserves
		out[i].Index = clip(idx, -3, 3)
	}
	return out, nil
}

// reserveStress inverts the reserves z-score: falling reserves raise FX
// stress.
func reserveStress(reserves *timeseries.Series, window int) map[time.Time]float64 {
	pts := reserves.Points()
	out := make(map[time.Time]float64, len(pts))
	for i := range pts {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		values := make([]float64, 0, window)
		for j := lo; j <= i; j++ {
			values = append(values, pts[j].Value)
		}
		mean := stat.Mean(values, nil)
		std := guardZero(stat.StdDev(values, nil))
		out[pts[i].Date] = (mean - pts[i].Value) / std
	}
	return out
}

// FXStressState reduces the stress series to a gauge reading.
func FXStressState(points []StressPoint) (*Gauge, error) {
	if len(points) == 0 {
		return nil, timeseries.ErrEmptySeries
	}
	latest := points[len(points)-1]
	prev := latest
	if len(points) > 1 {
		prev = points[len(points)-2]
	}

	g := &Gauge{
		Name:      "fx_stress",
		Value:     latest.Index,
		MoMChange: latest.Index - prev.Index,
	}
	switch {
	case latest.Index >= 2:
		g.Status = StatusRed
		g.Label = "Severe FX Stress"
		g.Commentary = "Severe FX stress with disorderly market dynamics and elevated volatility."
		g.Confidence = 85
	case latest.Index >= 1:
		g.Status = StatusAmber
		g.Label = "Elevated FX Pressure"
		g.Commentary = "FX pressures elevated with rising volatility and moderate currency depreciation."
		g.Confidence = 70
	default:
		g.Status = StatusGreen
		g.Label = "FX Stable"
		g.Commentary = "FX conditions stable within historical norms, manageable volatility."
		g.Confidence = 90
	}
	return g, nil
}

// FXTrafficLight grades the raw month move: appreciation is green, up to
// 3% depreciation amber, beyond that red.
func FXTrafficLight(fx *timeseries.Series) (*Gauge, error) {
	latest, err := fx.Last()
	if err != nil {
		return nil, err
	}
	chg, err := indicator.MoM(fx)
	if err != nil {
		return nil, err
	}

	g := &Gauge{Name: "fx", Value: latest.Value, MoMChange: chg.Percent}
	switch {
	case chg.Percent < 0:
		g.Status = StatusGreen
	case chg.Percent < 3:
		g.Status = StatusAmber
	default:
		g.Status = StatusRed
	}
	g.Commentary = fmt.Sprintf("1-month %% change: %.2f%%", chg.Percent)
	g.Confidence = Confidence(chg.Percent, nil, nil)
	return g, nil
}
