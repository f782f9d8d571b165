package loader

// Column names as they appear in the raw CSV headers. The files come out
// of spreadsheet exports, quirks included (note the space in the bills
// opening balance header).
const (
	ColUSDZMW = "USDZMW"

	ColInflationAnnual = "Inflation_Annual"

	ColTotalReserves = "Total_Reserves"

	ColPolicyRate = "BoZ_Policy_Rate"

	ColTotalSales         = "Total_Sales"
	ColOpeningBalance     = "Opening _Balance"
	ColOutstandingBalance = "Outstanding_Balance"
	ColOutstanding91      = "Outstanding_Balance_91_days"
	ColOutstanding182     = "Outstanding_Balance_182_days"

	ColGrossReserves = "Gross_International_Reserves"
	ColReservesUSD   = "Reserves_USD"
	ColImportCover   = "Months_Import_Cover"

	ColCopper = "Copper_US_Tonne"
	ColOil    = "Oil_US_barrel"
	ColMaize  = "Maize_K_50Kg"

	ColWeightedAvg = "Weighted Av."

	ColBroadMoney = "Broad_Money_M2"
)

// BillTenorCols are the per-tenor sales columns in bills.csv.
var BillTenorCols = []string{"91_days", "182_days", "273_days", "364_days"}

// BondStockCols are the outstanding-stock columns in bonds.csv.
var BondStockCols = []string{
	"Bonds_24_months", "Bonds_3_year", "Bonds_5_year",
	"Bonds_7_year", "Bonds_10_year", "Bonds_15_year",
}

// CurveTenorCols are the yield columns in bill_rates.csv, short to long.
var CurveTenorCols = []string{
	"91 days", "182 days", "273 days", "364 days",
	"24 months", "3 year", "5 year", "7 year", "10 year", "15 year",
}
