// Package brief assembles the monthly macro snapshot from the loaded
// datasets and renders the exportable brief text.
package brief

import (
	"MacroGauge/internal/indicator"
	"MacroGauge/internal/loader"
)

// Definition binds one named indicator to its dataset column and default
// classification bands.
type Definition struct {
	Name       string
	Dataset    string
	Column     string
	Window     int
	Thresholds []indicator.Threshold
}

// Registry lists the indicators exposed on /api/indicators. Bands grade
// the latest level; the final band is the catch-all.
func Registry() []Definition {
	return []Definition{
		{
			Name:    "fx_rate",
			Dataset: loader.DatasetForex,
			Column:  loader.ColUSDZMW,
		},
		{
			Name:    "inflation_yoy",
			Dataset: loader.DatasetInflation,
			Column:  loader.ColInflationAnnual,
			Window:  12,
			Thresholds: []indicator.Threshold{
				{Upper: 6, Label: "below target"},
				{Upper: 8, Label: "within target"},
				{Upper: 12, Label: "above target"},
				{Upper: 100, Label: "elevated"},
			},
		},
		{
			Name:    "policy_rate",
			Dataset: loader.DatasetLendingRates,
			Column:  loader.ColPolicyRate,
			Thresholds: []indicator.Threshold{
				{Upper: 7, Label: "accommodative"},
				{Upper: 10, Label: "neutral"},
				{Upper: 100, Label: "tight"},
			},
		},
		{
			Name:    "liquidity_reserves",
			Dataset: loader.DatasetLiquidity,
			Column:  loader.ColTotalReserves,
		},
		{
			Name:    "tbill_sales",
			Dataset: loader.DatasetBills,
			Column:  loader.ColTotalSales,
			Window:  12,
		},
		{
			Name:    "gross_reserves",
			Dataset: loader.DatasetBozForex,
			Column:  loader.ColGrossReserves,
			Thresholds: []indicator.Threshold{
				{Upper: 4000, Label: "thin"},
				{Upper: 5000, Label: "adequate"},
				{Upper: 1e9, Label: "comfortable"},
			},
		},
		{
			Name:    "import_cover",
			Dataset: loader.DatasetBozForex,
			Column:  loader.ColImportCover,
			Thresholds: []indicator.Threshold{
				{Upper: 3, Label: "below benchmark"},
				{Upper: 100, Label: "adequate"},
			},
		},
		{
			Name:    "copper_price",
			Dataset: loader.DatasetCommodity,
			Column:  loader.ColCopper,
		},
		{
			Name:    "oil_price",
			Dataset: loader.DatasetCommodity,
			Column:  loader.ColOil,
		},
		{
			Name:    "maize_price",
			Dataset: loader.DatasetCommodity,
			Column:  loader.ColMaize,
		},
		{
			Name:    "broad_money_m2",
			Dataset: loader.DatasetMoneySupply,
			Column:  loader.ColBroadMoney,
			Window:  12,
		},
		{
			Name:    "tbill_weighted_yield",
			Dataset: loader.DatasetBillRates,
			Column:  loader.ColWeightedAvg,
		},
	}
}

// Lookup finds a registry entry by name.
func Lookup(name string) (Definition, bool) {
	for _, d := range Registry() {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
