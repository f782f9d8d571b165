package analysis

import (
	"fmt"

	"MacroGauge/internal/indicator"
	"MacroGauge/internal/timeseries"
)

// BillsSummary reads T-bill issuance: YoY change in total sales and
// outstanding balances, plus the tenor dominating recent issuance.
func BillsSummary(totalSales, outstanding *timeseries.Series, latestByTenor map[string]float64) (string, error) {
	salesYoY, err := indicator.YoY(totalSales)
	if err != nil {
		return "", err
	}
	balYoY, err := indicator.YoY(outstanding)
	if err != nil {
		return "", err
	}

	text := fmt.Sprintf(
		"Total T-Bill sales changed %.2f%% YoY, with outstanding balances changing %.2f%% YoY. ",
		salesYoY.Percent, balYoY.Percent,
	)
	if top := topTenor(latestByTenor); top != "" {
		text += fmt.Sprintf("The %s tenor dominates recent issuance.", top)
	}
	return text, nil
}

// BondsSummary reads the outstanding government bond stock: YoY change of
// the total plus the largest tenor bucket.
func BondsSummary(totalStock *timeseries.Series, latestByTenor map[string]float64) (string, error) {
	yoy, err := indicator.YoY(totalStock)
	if err != nil {
		return "", err
	}

	text := fmt.Sprintf("Total government bond stock changed %.2f%% YoY. ", yoy.Percent)
	if top := topTenor(latestByTenor); top != "" {
		text += fmt.Sprintf("The %s tenor represents the largest portion of outstanding bonds.", top)
	}
	return text, nil
}

// topTenor returns the key with the largest value, ties broken by name for
// determinism.
func topTenor(byTenor map[string]float64) string {
	var top string
	var best float64
	for tenor, v := range byTenor {
		if top == "" || v > best || (v == best && tenor < top) {
			top = tenor
			best = v
		}
	}
	return top
}
