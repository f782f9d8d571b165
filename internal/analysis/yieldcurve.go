package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"MacroGauge/internal/timeseries"

	"gonum.org/v1/gonum/stat"
)

// CurveRegime labels the shape of the yield curve.
type CurveRegime string

const (
	CurveInverted CurveRegime = "Inverted"
	CurveFlat     CurveRegime = "Flat"
	CurveNormal   CurveRegime = "Normal"
)

// PolicyStance classifies the prevailing monetary conditions.
type PolicyStance string

const (
	StanceTight         PolicyStance = "Tight"
	StanceNeutral       PolicyStance = "Neutral"
	StanceAccommodative PolicyStance = "Accommodative"
)

// CurvePoint is one tenor on the latest yield curve.
type CurvePoint struct {
	Tenor          string  `json:"tenor"`
	MaturityMonths int     `json:"maturity_months"`
	Yield          float64 `json:"yield"`
}

// YieldCurve is the latest observed curve with its shape reading.
type YieldCurve struct {
	Date       time.Time    `json:"date"`
	Points     []CurvePoint `json:"points"`
	ShortAvg   float64      `json:"short_avg"`
	LongAvg    float64      `json:"long_avg"`
	Slope      float64      `json:"slope"` // short minus long, positive = inverted
	Regime     CurveRegime  `json:"regime"`
	Commentary string       `json:"commentary"`
}

// Tenors splits the curve into the short and long ends used for the slope.
var (
	ShortTenors = []string{"91 days", "182 days", "273 days", "364 days"}
	LongTenors  = []string{"5 year", "7 year", "10 year", "15 year"}

	// TenorMonths maps tenor names to maturity in months for plotting.
	TenorMonths = map[string]int{
		"91 days": 3, "182 days": 6, "273 days": 9, "364 days": 12,
		"24 months": 24, "3 year": 36, "5 year": 60, "7 year": 84,
		"10 year": 120, "15 year": 180,
	}
)

// BuildYieldCurve assembles the latest curve from per-tenor series. Tenors
// with no data for the latest month are left off the curve rather than
// interpolated.
func BuildYieldCurve(tenorSeries map[string]*timeseries.Series) (*YieldCurve, error) {
	var asOf time.Time
	for _, s := range tenorSeries {
		if p, err := s.Last(); err == nil && p.Date.After(asOf) {
			asOf = p.Date
		}
	}
	if asOf.IsZero() {
		return nil, timeseries.ErrEmptySeries
	}

	yc := &YieldCurve{Date: asOf}
	var shortYields, longYields []float64
	for tenor, months := range TenorMonths {
		s, ok := tenorSeries[tenor]
		if !ok {
			continue
		}
		p, err := s.Last()
		if err != nil || !p.Date.Equal(asOf) {
			continue
		}
		yc.Points = append(yc.Points, CurvePoint{Tenor: tenor, MaturityMonths: months, Yield: p.Value})
		if contains(ShortTenors, tenor) {
			shortYields = append(shortYields, p.Value)
		}
		if contains(LongTenors, tenor) {
			longYields = append(longYields, p.Value)
		}
	}
	sortCurve(yc.Points)

	if len(shortYields) == 0 || len(longYields) == 0 {
		yc.Regime = CurveFlat
		yc.Commentary = "Insufficient data to determine the yield curve shape."
		return yc, nil
	}

	yc.ShortAvg = stat.Mean(shortYields, nil)
	yc.LongAvg = stat.Mean(longYields, nil)
	yc.Slope = yc.ShortAvg - yc.LongAvg

	switch {
	case yc.Slope > 0.5:
		yc.Regime = CurveInverted
		yc.Commentary = "This configuration increases rollover risk and amplifies fiscal stress, especially where short-term issuance dominates."
	case yc.Slope > -0.5:
		yc.Regime = CurveFlat
		yc.Commentary = "This suggests uncertainty in market expectations and limited scope for cost-efficient debt terming."
	default:
		yc.Regime = CurveNormal
		yc.Commentary = "This supports stable financing conditions and reduces short-term refinancing pressure."
	}
	return yc, nil
}

// RecessionRisk is the probability-weighted recession reading from yield
// curve signals.
type RecessionRisk struct {
	Probability     float64 `json:"probability"`
	Band            string  `json:"band"`
	TermSpread      float64 `json:"term_spread"`
	InversionMonths int     `json:"inversion_months"`
	Commentary      string  `json:"commentary"`
}

// RecessionProbability scores inversion depth, inversion persistence over
// the last six months and short-rate momentum, weighted 0.4/0.4/0.2.
func RecessionProbability(tenY, shortRate *timeseries.Series) (*RecessionRisk, error) {
	spread, err := TermSpread(tenY, shortRate)
	if err != nil {
		return nil, err
	}

	inversionMonths := 0
	shortPts := shortRate.Points()
	longByDate := make(map[time.Time]float64, tenY.Len())
	for _, p := range tenY.Points() {
		longByDate[p.Date] = p.Value
	}
	lo := len(shortPts) - 6
	if lo < 0 {
		lo = 0
	}
	for _, p := range shortPts[lo:] {
		if l, ok := longByDate[p.Date]; ok && l-p.Value < 0 {
			inversionMonths++
		}
	}

	var depthScore float64
	switch {
	case spread < -1.0:
		depthScore = 1.0
	case spread < -0.5:
		depthScore = 0.7
	case spread < 0:
		depthScore = 0.4
	}

	var durationScore float64
	switch {
	case inversionMonths >= 4:
		durationScore = 1.0
	case inversionMonths >= 2:
		durationScore = 0.6
	}

	var policyScore float64
	if c, err := yoyPercent(shortRate); err == nil {
		switch {
		case c > 30:
			policyScore = 1.0
		case c > 15:
			policyScore = 0.5
		}
	}

	r := &RecessionRisk{
		Probability:     (0.4*depthScore + 0.4*durationScore + 0.2*policyScore) * 100,
		TermSpread:      spread,
		InversionMonths: inversionMonths,
	}
	switch {
	case r.Probability >= 60:
		r.Band = "High"
	case r.Probability >= 40:
		r.Band = "Elevated"
	case r.Probability >= 20:
		r.Band = "Moderate"
	default:
		r.Band = "Low"
	}
	r.Commentary = fmt.Sprintf(
		"Market-implied recession probability is estimated at %.0f%%. The yield curve term spread stands at %.2f percentage points, with inversion persisting for approximately %d months. Overall recession risk is assessed as %s.",
		r.Probability, r.TermSpread, r.InversionMonths, strings.ToLower(r.Band),
	)
	return r, nil
}

// StanceReading is the policy stance assessment.
type StanceReading struct {
	Stance       PolicyStance `json:"stance"`
	ShortRateYoY float64      `json:"short_rate_yoy"`
	TermSpread   float64      `json:"term_spread"`
	Commentary   string       `json:"commentary"`
}

// ClassifyPolicyStance reads monetary conditions off short-rate momentum
// and the term spread.
func ClassifyPolicyStance(tenY, shortRate *timeseries.Series) (*StanceReading, error) {
	spread, err := TermSpread(tenY, shortRate)
	if err != nil {
		return nil, err
	}
	yoy, err := yoyPercent(shortRate)
	if err != nil {
		return nil, err
	}

	r := &StanceReading{ShortRateYoY: yoy, TermSpread: spread}
	var signal string
	switch {
	case yoy > 20 && spread < 0:
		r.Stance = StanceTight
		signal = "Restrictive financial conditions with elevated recession risk."
	case abs(spread) < 0.5 && abs(yoy) < 10:
		r.Stance = StanceNeutral
		signal = "Balanced policy stance with no strong directional pressure."
	default:
		r.Stance = StanceAccommodative
		signal = "Supportive policy stance aimed at stimulating growth."
	}
	r.Commentary = fmt.Sprintf(
		"Current policy stance is assessed as %s. Short-term yields are changing at %.1f%% YoY, while the yield curve spread stands at %.2f percentage points. %s",
		r.Stance, yoy, spread, signal,
	)
	return r, nil
}

// TermSpread is the 10-year yield minus the 91-day yield at the latest
// month where both tenors have observations.
func TermSpread(tenY, shortRate *timeseries.Series) (float64, error) {
	shortByDate := make(map[time.Time]float64, shortRate.Len())
	for _, p := range shortRate.Points() {
		shortByDate[p.Date] = p.Value
	}
	pts := tenY.Points()
	for i := len(pts) - 1; i >= 0; i-- {
		if s, ok := shortByDate[pts[i].Date]; ok {
			return pts[i].Value - s, nil
		}
	}
	return 0, timeseries.ErrEmptySeries
}

func yoyPercent(s *timeseries.Series) (float64, error) {
	latest, err := s.Last()
	if err != nil {
		return 0, err
	}
	prior, err := s.Prior(12)
	if err != nil {
		return 0, err
	}
	if prior.Value == 0 {
		return 0, nil
	}
	return (latest.Value - prior.Value) / prior.Value * 100, nil
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func sortCurve(pts []CurvePoint) {
	sort.Slice(pts, func(i, j int) bool { return pts[i].MaturityMonths < pts[j].MaturityMonths })
}
