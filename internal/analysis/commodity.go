package analysis

import (
	"fmt"

	"MacroGauge/internal/indicator"
	"MacroGauge/internal/timeseries"
)

// CommodityBases are the reference price levels the traffic lights grade
// against.
type CommodityBases struct {
	Copper float64 `yaml:"copper" default:"8000"` // USD per tonne
	Oil    float64 `yaml:"oil" default:"70"`      // USD per barrel
}

// CopperSummary reads copper prices: higher is good for export earnings.
func CopperSummary(copper *timeseries.Series, base float64) (*Gauge, string, error) {
	latest, err := copper.Last()
	if err != nil {
		return nil, "", err
	}

	g := &Gauge{Name: "copper", Value: latest.Value}
	if chg, err := indicator.MoM(copper); err == nil {
		g.MoMChange = chg.Percent
	}
	switch {
	case latest.Value >= base:
		g.Status = StatusGreen
	case latest.Value >= base*0.9:
		g.Status = StatusAmber
	default:
		g.Status = StatusRed
	}
	g.Commentary = fmt.Sprintf("Copper: %.2f USD/Tonne", latest.Value)
	g.Confidence = Confidence(g.MoMChange, nil, nil)

	direction := "lower"
	var yoyPct float64
	if yoy, err := indicator.YoY(copper); err == nil && yoy.PercentDefined {
		yoyPct = yoy.Percent
		if yoy.Percent > 0 {
			direction = "higher"
		}
	}
	commentary := fmt.Sprintf(
		"Copper prices averaged USD %.0f per tonne in %s. Prices are %s by %.1f%% year-on-year, with implications for export earnings, fiscal revenues, and foreign exchange inflows.",
		latest.Value, latest.Date.Format("January 2006"), direction, abs(yoyPct),
	)
	return g, commentary, nil
}

// OilSummary reads oil prices: lower is good for the import bill.
func OilSummary(oil *timeseries.Series, base float64) (*Gauge, string, error) {
	latest, err := oil.Last()
	if err != nil {
		return nil, "", err
	}

	g := &Gauge{Name: "oil", Value: latest.Value}
	var momPct float64
	if chg, err := indicator.MoM(oil); err == nil {
		momPct = chg.Percent
		g.MoMChange = momPct
	}
	switch {
	case latest.Value <= base:
		g.Status = StatusGreen
	case latest.Value <= base*1.1:
		g.Status = StatusAmber
	default:
		g.Status = StatusRed
	}
	g.Commentary = fmt.Sprintf("Oil: %.2f USD/barrel", latest.Value)
	g.Confidence = Confidence(momPct, nil, nil)

	commentary := fmt.Sprintf(
		"Global oil prices stood at USD %.2f per barrel in %s. Month-on-month prices moved %+.1f%%, with direct pass-through risks to fuel prices, transport costs, and headline inflation.",
		latest.Value, latest.Date.Format("January 2006"), momPct,
	)
	return g, commentary, nil
}

// MaizeSummary reads maize prices, the food-inflation anchor.
func MaizeSummary(maize *timeseries.Series) (string, error) {
	latest, err := maize.Last()
	if err != nil {
		return "", err
	}

	direction := "down"
	var yoyPct float64
	if yoy, err := indicator.YoY(maize); err == nil && yoy.PercentDefined {
		yoyPct = yoy.Percent
		if yoy.Percent > 0 {
			direction = "up"
		}
	}
	return fmt.Sprintf(
		"Maize prices averaged K %.2f per 50kg bag in %s. Prices are %s %.1f%% year-on-year, reflecting domestic supply conditions, seasonal factors, and food security dynamics.",
		latest.Value, latest.Date.Format("January 2006"), direction, abs(yoyPct),
	), nil
}

// SummarizeCommodities renders the combined latest-price block used by the
// brief.
func SummarizeCommodities(copper, oil, maize *timeseries.Series) (string, error) {
	cu, err := copper.Last()
	if err != nil {
		return "", err
	}
	br, err := oil.Last()
	if err != nil {
		return "", err
	}
	mz, err := maize.Last()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"As of %s, commodity prices are:\n- Copper: $%.2f/t\n- Oil: $%.2f/barrel\n- Maize (Zambia, 50Kg): K%.2f",
		cu.Date.Format("Jan 2006"), cu.Value, br.Value, mz.Value,
	), nil
}
