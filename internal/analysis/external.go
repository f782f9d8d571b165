package analysis

import (
	"fmt"

	"MacroGauge/internal/indicator"
	"MacroGauge/internal/timeseries"
)

// ExternalState grades gross international reserves in billions of ZMW.
// Above 5.0B is comfortable, 4.0-5.0B warrants watching, below that the
// external buffer is thin.
func ExternalState(grossReserves *timeseries.Series) (*Gauge, error) {
	latest, err := grossReserves.Last()
	if err != nil {
		return nil, err
	}

	billions := latest.Value / 1e3
	g := &Gauge{Name: "external", Value: billions}
	if chg, err := indicator.MoM(grossReserves); err == nil {
		g.MoMChange = chg.Percent
	}
	switch {
	case billions >= 5.0:
		g.Status = StatusGreen
	case billions >= 4.0:
		g.Status = StatusAmber
	default:
		g.Status = StatusRed
	}
	g.Commentary = fmt.Sprintf("Gross reserves: %.1f B ZMW", billions)
	g.Confidence = Confidence(g.MoMChange, nil, nil)
	return g, nil
}

// LiquidityState grades banking system reserves by their month move: any
// growth is green, a drawdown within 5% amber, beyond that red.
func LiquidityState(totalReserves *timeseries.Series) (*Gauge, error) {
	latest, err := totalReserves.Last()
	if err != nil {
		return nil, err
	}
	chg, err := indicator.MoM(totalReserves)
	if err != nil {
		return nil, err
	}

	g := &Gauge{Name: "liquidity", Value: latest.Value, MoMChange: chg.Percent}
	switch {
	case chg.Percent > 0:
		g.Status = StatusGreen
	case chg.Percent > -5:
		g.Status = StatusAmber
	default:
		g.Status = StatusRed
	}
	g.Commentary = fmt.Sprintf("MoM %% change in reserves: %.2f%%", chg.Percent)
	g.Confidence = Confidence(chg.Percent, nil, nil)
	return g, nil
}

// PolicyRateState grades the BoZ policy rate level.
func PolicyRateState(policyRate *timeseries.Series) (*Gauge, error) {
	latest, err := policyRate.Last()
	if err != nil {
		return nil, err
	}

	g := &Gauge{Name: "policy", Value: latest.Value}
	if chg, err := indicator.MoM(policyRate); err == nil {
		g.MoMChange = chg.Absolute
	}
	switch {
	case latest.Value <= 7:
		g.Status = StatusGreen
	case latest.Value <= 10:
		g.Status = StatusAmber
	default:
		g.Status = StatusRed
	}
	g.Commentary = fmt.Sprintf("BoZ policy rate: %.2f%%", latest.Value)
	g.Confidence = Confidence(g.MoMChange, nil, nil)
	return g, nil
}

// SummarizeReserves renders the USD reserves line with import cover.
func SummarizeReserves(reservesUSD, importCover *timeseries.Series) (string, error) {
	latest, err := reservesUSD.Last()
	if err != nil {
		return "", err
	}
	cover, err := importCover.Last()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"As of %s, international reserves are USD %.2f million, covering %.2f months of import.",
		latest.Date.Format("Jan 2006"), latest.Value, cover.Value,
	), nil
}
