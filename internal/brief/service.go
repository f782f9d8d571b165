package brief

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MacroGauge/internal/analysis"
	"MacroGauge/internal/commentary"
	"MacroGauge/internal/domain/models"
	"MacroGauge/internal/indicator"
	"MacroGauge/internal/loader"
	"MacroGauge/internal/timeseries"
	"MacroGauge/pkg/cache"
	"MacroGauge/pkg/logger"
	"MacroGauge/pkg/util"
)

var ErrUnknownIndicator = errors.New("unknown indicator")

// Config carries the analysis tuning handed down from the app config.
type Config struct {
	Window       int
	StressWindow int
	Inflation    analysis.InflationBand
	Bases        analysis.CommodityBases
	Title        string
	CacheTTL     time.Duration
}

// Metrics is the sink for snapshot instrumentation.
type Metrics interface {
	RecordIndicatorStatus(indicator string, level int)
	RecordLatency(op string, seconds float64)
	RecordError(kind string)
}

// Service builds monthly snapshots, risk panels and rendered briefs on
// top of the dataset store.
type Service struct {
	store   *loader.Store
	cache   cache.Service
	logger  *logger.Logger
	metrics Metrics
	cfg     Config
}

// NewService wires the snapshot builder.
func NewService(store *loader.Store, c cache.Service, l *logger.Logger, m Metrics, cfg Config) *Service {
	if cfg.Window <= 0 {
		cfg.Window = 3
	}
	if cfg.StressWindow <= 0 {
		cfg.StressWindow = 12
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &Service{store: store, cache: c, logger: l, metrics: m, cfg: cfg}
}

// ResolveMonth picks the snapshot month: the requested one, or the latest
// month observed across all datasets when unset.
func (s *Service) ResolveMonth(requested string) (time.Time, error) {
	if requested == "" {
		latest := s.store.LatestDate()
		if latest.IsZero() {
			return time.Time{}, timeseries.ErrEmptySeries
		}
		return util.MonthStart(latest), nil
	}
	m, ok := util.ParseMonth(requested)
	if !ok {
		return time.Time{}, fmt.Errorf("unparseable month %q", requested)
	}
	return m, nil
}

// Indicators computes the summary of every registered indicator. Per-row
// failures degrade to an error string so one broken dataset does not
// empty the list.
func (s *Service) Indicators(window int) []models.IndicatorInfo {
	defs := Registry()
	out := make([]models.IndicatorInfo, 0, len(defs))
	for _, d := range defs {
		info := models.IndicatorInfo{Name: d.Name, Dataset: d.Dataset, Column: d.Column}
		sum, err := s.summarize(d, window)
		if err != nil {
			info.Error = err.Error()
		} else {
			info.Summary = sum
		}
		out = append(out, info)
	}
	return out
}

// Indicator computes one registered indicator's summary.
func (s *Service) Indicator(name string, window int) (*indicator.Summary, error) {
	d, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownIndicator)
	}
	return s.summarize(d, window)
}

func (s *Service) summarize(d Definition, window int) (*indicator.Summary, error) {
	series, err := s.store.Series(d.Dataset, d.Column)
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		window = d.Window
	}
	if window <= 0 {
		window = s.cfg.Window
	}
	return indicator.Summarize(series, indicator.Options{Window: window, Thresholds: d.Thresholds})
}

// Snapshot returns the monthly snapshot, cached per month.
func (s *Service) Snapshot(ctx context.Context, month string) (*models.Snapshot, error) {
	asOf, err := s.ResolveMonth(month)
	if err != nil {
		return nil, err
	}

	key := cache.GenerateKey("snapshot", util.FormatMonthShort(asOf))
	if s.cache != nil {
		if cached, err := cache.GetTyped[models.Snapshot](ctx, s.cache, key); err == nil {
			return &cached, nil
		}
	}

	start := time.Now()
	snap, err := s.build(asOf)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("snapshot_build")
		}
		return nil, err
	}
	elapsed := time.Since(start).Seconds()
	if s.metrics != nil {
		s.metrics.RecordLatency("snapshot_build", elapsed)
	}
	if s.logger != nil {
		s.logger.Debug("snapshot built",
			logger.String("month", snap.Month),
			logger.Float("seconds", elapsed),
		)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, snap, s.cfg.CacheTTL); err != nil && s.logger != nil {
			s.logger.Warn("snapshot cache write failed", logger.Error(err))
		}
	}
	return snap, nil
}

// build assembles the full snapshot for one month. Gauges whose dataset
// is missing are skipped with a warning; the snapshot fails only when
// nothing at all could be read.
func (s *Service) build(asOf time.Time) (*models.Snapshot, error) {
	end := util.MonthEnd(asOf)

	snap := &models.Snapshot{
		Month:    util.FormatMonth(asOf),
		AsOf:     asOf,
		LoadedAt: s.store.LoadedAt(),
		Gauges:   make(map[string]*analysis.Gauge),
		Sections: make(map[string]string),
	}

	fx := s.seriesThrough(loader.DatasetForex, loader.ColUSDZMW, end)
	inflation := s.seriesThrough(loader.DatasetInflation, loader.ColInflationAnnual, end)
	liquidity := s.seriesThrough(loader.DatasetLiquidity, loader.ColTotalReserves, end)
	policy := s.seriesThrough(loader.DatasetLendingRates, loader.ColPolicyRate, end)
	sales := s.seriesThrough(loader.DatasetBills, loader.ColTotalSales, end)
	opening := s.seriesThrough(loader.DatasetBills, loader.ColOpeningBalance, end)
	gross := s.seriesThrough(loader.DatasetBozForex, loader.ColGrossReserves, end)
	reservesUSD := s.seriesThrough(loader.DatasetBozForex, loader.ColReservesUSD, end)
	cover := s.seriesThrough(loader.DatasetBozForex, loader.ColImportCover, end)
	copper := s.seriesThrough(loader.DatasetCommodity, loader.ColCopper, end)
	oil := s.seriesThrough(loader.DatasetCommodity, loader.ColOil, end)
	maize := s.seriesThrough(loader.DatasetCommodity, loader.ColMaize, end)

	in := commentary.Inputs{}

	if fx != nil {
		if g, err := analysis.FXTrafficLight(fx); err == nil {
			snap.Gauges["fx"] = g
			in.FX = g
		}
		if sum, err := analysis.SummarizeFX(fx); err == nil {
			snap.Sections["fx"] = sum.Commentary
		}
	}
	if inflation != nil {
		if g, err := analysis.InflationState(inflation, s.cfg.Inflation); err == nil {
			snap.Gauges["inflation"] = g
			in.Inflation = g
		}
		if text, err := analysis.SummarizeInflation(inflation); err == nil {
			snap.Sections["inflation"] = text
		}
	}
	if liquidity != nil {
		if g, err := analysis.LiquidityState(liquidity); err == nil {
			snap.Gauges["liquidity"] = g
			in.Liquidity = g
		}
	}
	if policy != nil {
		if g, err := analysis.PolicyRateState(policy); err == nil {
			snap.Gauges["policy"] = g
			rate := g.Value
			in.PolicyRate = &rate
		}
	}
	if sales != nil && opening != nil {
		if g, err := analysis.FiscalTrafficLight(sales, opening); err == nil {
			snap.Gauges["fiscal"] = g
			in.Fiscal = g
		}
	}
	if gross != nil {
		if g, err := analysis.ExternalState(gross); err == nil {
			snap.Gauges["external"] = g
			in.External = g
		}
	}
	if reservesUSD != nil && cover != nil {
		if text, err := analysis.SummarizeReserves(reservesUSD, cover); err == nil {
			snap.Sections["reserves"] = text
		}
	}
	if copper != nil {
		if g, text, err := analysis.CopperSummary(copper, s.cfg.Bases.Copper); err == nil {
			snap.Gauges["copper"] = g
			in.Copper = g
			snap.Sections["copper"] = text
		}
	}
	if oil != nil {
		if g, text, err := analysis.OilSummary(oil, s.cfg.Bases.Oil); err == nil {
			snap.Gauges["oil"] = g
			in.Oil = g
			snap.Sections["oil"] = text
		}
	}
	if maize != nil {
		if text, err := analysis.MaizeSummary(maize); err == nil {
			snap.Sections["maize"] = text
		}
	}
	if copper != nil && oil != nil && maize != nil {
		if text, err := analysis.SummarizeCommodities(copper, oil, maize); err == nil {
			snap.Sections["commodities"] = text
		}
	}

	s.fiscalSections(snap, end)
	s.curveSections(snap, end)

	if len(snap.Gauges) == 0 {
		return nil, fmt.Errorf("no gauges computable for %s", snap.Month)
	}

	snap.Headline, snap.Details = commentary.Headline(in)
	var fxMoM, inflMoM float64
	if in.FX != nil {
		fxMoM = in.FX.MoMChange
	}
	if in.Inflation != nil {
		inflMoM = in.Inflation.MoMChange
	}
	snap.WhatChanged = commentary.WhatChanged(fxMoM, inflMoM)
	snap.BaseCase = commentary.BaseCase(in.FX, in.Inflation)
	snap.Closing = commentary.ClosingSummary(snap.Month, snap.Gauges)

	if s.metrics != nil {
		for name, g := range snap.Gauges {
			s.metrics.RecordIndicatorStatus(name, statusLevel(g.Status))
		}
	}
	return snap, nil
}

// fiscalSections fills the fiscal stress and debt issuance commentary.
func (s *Service) fiscalSections(snap *models.Snapshot, end time.Time) {
	if points, err := s.fiscalStress(end); err == nil {
		if g, err := analysis.FiscalState(points); err == nil {
			snap.Sections["fiscal"] = g.Commentary
		}
	}

	sales := s.seriesThrough(loader.DatasetBills, loader.ColTotalSales, end)
	outstanding := s.seriesThrough(loader.DatasetBills, loader.ColOutstandingBalance, end)
	if sales != nil && outstanding != nil {
		if text, err := analysis.BillsSummary(sales, outstanding, s.latestByColumn(loader.DatasetBills, loader.BillTenorCols, end)); err == nil {
			snap.Sections["tbills"] = text
		}
	}

	if frame, err := s.store.Frame(loader.DatasetBonds); err == nil {
		if total, err := frame.SumSeries("Bonds_TOTAL", loader.BondStockCols...); err == nil {
			if text, err := analysis.BondsSummary(total.Through(end), s.latestByColumn(loader.DatasetBonds, loader.BondStockCols, end)); err == nil {
				snap.Sections["bonds"] = text
			}
		}
	}
}

// curveSections fills the yield curve commentary.
func (s *Service) curveSections(snap *models.Snapshot, end time.Time) {
	curve, err := analysis.BuildYieldCurve(s.tenorSeries(end))
	if err != nil {
		return
	}
	snap.Sections["yield_curve"] = fmt.Sprintf(
		"The yield curve is currently %s, with short-term yields averaging %.2f%% and long-term yields at %.2f%%. %s",
		string(curve.Regime), curve.ShortAvg, curve.LongAvg, curve.Commentary,
	)
}

// Risk computes the stress-index panel.
func (s *Service) Risk(ctx context.Context) (*models.RiskPanel, error) {
	latest := s.store.LatestDate()
	if latest.IsZero() {
		return nil, timeseries.ErrEmptySeries
	}
	panel := &models.RiskPanel{AsOf: latest}

	fx := s.seriesThrough(loader.DatasetForex, loader.ColUSDZMW, latest)
	gross := s.seriesThrough(loader.DatasetBozForex, loader.ColGrossReserves, latest)
	if fx != nil {
		points, err := analysis.FXStressComponents(fx, gross, s.cfg.StressWindow)
		if err != nil {
			return nil, fmt.Errorf("fx stress: %w", err)
		}
		panel.FXStress = points
		if g, err := analysis.FXStressState(points); err == nil {
			panel.FXStressState = g
		}
	}

	if points, err := s.fiscalStress(latest); err == nil {
		panel.FiscalStress = points
		if g, err := analysis.FiscalState(points); err == nil {
			panel.FiscalStressState = g
		}
	} else if s.logger != nil {
		s.logger.Warn("fiscal stress unavailable", logger.Error(err))
	}

	tenors := s.tenorSeries(latest)
	if curve, err := analysis.BuildYieldCurve(tenors); err == nil {
		panel.YieldCurve = curve
	}
	tenY, okLong := tenors["10 year"]
	short, okShort := tenors["91 days"]
	if okLong && okShort {
		if r, err := analysis.RecessionProbability(tenY, short); err == nil {
			panel.Recession = r
		}
		if st, err := analysis.ClassifyPolicyStance(tenY, short); err == nil {
			panel.Stance = st
		}
	}

	if panel.FXStress == nil && panel.FiscalStress == nil && panel.YieldCurve == nil {
		return nil, timeseries.ErrEmptySeries
	}
	return panel, nil
}

// Brief renders the export text for one month and format, cached per
// (month, format).
func (s *Service) Brief(ctx context.Context, month, format string) (*models.Brief, error) {
	asOf, err := s.ResolveMonth(month)
	if err != nil {
		return nil, err
	}

	key := cache.GenerateKeyWithParams("brief", util.FormatMonthShort(asOf), format)
	if s.cache != nil {
		if cached, err := cache.GetTyped[models.Brief](ctx, s.cache, key); err == nil {
			return &cached, nil
		}
	}

	snap, err := s.Snapshot(ctx, util.FormatMonth(asOf))
	if err != nil {
		return nil, err
	}
	text, err := Render(s.cfg.Title, snap, format)
	if err != nil {
		return nil, err
	}

	b := &models.Brief{
		Month:    snap.Month,
		Format:   format,
		Filename: fmt.Sprintf("macro_brief_%s_%s.txt", format, util.FormatMonthShort(asOf)),
		Text:     text,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, b, s.cfg.CacheTTL); err != nil && s.logger != nil {
			s.logger.Warn("brief cache write failed", logger.Error(err))
		}
	}
	return b, nil
}

// Invalidate drops every cached snapshot and brief, called when the
// underlying datasets reload.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, prefix := range []string{"snapshot", "brief"} {
		if err := s.cache.DeleteByPattern(ctx, cache.BuildPattern(prefix)); err != nil && s.logger != nil {
			s.logger.Warn("cache invalidation failed",
				logger.String("prefix", prefix), logger.Error(err))
		}
	}
}

// Health reports liveness with data freshness.
func (s *Service) Health() models.Health {
	h := models.Health{
		Status:     "ok",
		Datasets:   len(s.store.Datasets()),
		LatestDate: s.store.LatestDate(),
		LoadedAt:   s.store.LoadedAt(),
	}
	if h.Datasets == 0 {
		h.Status = "degraded"
	}
	return h
}

// seriesThrough reads one column pinned to the snapshot month, nil when
// the dataset or column is unavailable.
func (s *Service) seriesThrough(dataset, column string, end time.Time) *timeseries.Series {
	series, err := s.store.Series(dataset, column)
	if err != nil {
		if s.logger != nil {
			s.logger.Debug("series unavailable",
				logger.String("dataset", dataset),
				logger.String("column", column),
				logger.Error(err),
			)
		}
		return nil
	}
	pinned := series.Through(end)
	if pinned.Len() == 0 {
		return nil
	}
	return pinned
}

// latestByColumn reads the last observed value of several columns, used
// for tenor composition.
func (s *Service) latestByColumn(dataset string, columns []string, end time.Time) map[string]float64 {
	out := make(map[string]float64, len(columns))
	for _, col := range columns {
		if series := s.seriesThrough(dataset, col, end); series != nil {
			if p, err := series.Last(); err == nil {
				out[col] = p.Value
			}
		}
	}
	return out
}

// tenorSeries reads the per-tenor yield series off the bill rates file.
func (s *Service) tenorSeries(end time.Time) map[string]*timeseries.Series {
	out := make(map[string]*timeseries.Series, len(loader.CurveTenorCols))
	for _, tenor := range loader.CurveTenorCols {
		if series := s.seriesThrough(loader.DatasetBillRates, tenor, end); series != nil {
			out[tenor] = series
		}
	}
	return out
}

// fiscalStress aligns the yield, rollover and issuance components on
// their common months and runs the fiscal stress index over them.
func (s *Service) fiscalStress(end time.Time) ([]analysis.FiscalPoint, error) {
	wav := s.seriesThrough(loader.DatasetBillRates, loader.ColWeightedAvg, end)
	sales := s.seriesThrough(loader.DatasetBills, loader.ColTotalSales, end)
	outstanding := s.seriesThrough(loader.DatasetBills, loader.ColOutstandingBalance, end)
	out91 := s.seriesThrough(loader.DatasetBills, loader.ColOutstanding91, end)
	out182 := s.seriesThrough(loader.DatasetBills, loader.ColOutstanding182, end)
	if wav == nil || sales == nil || outstanding == nil || out91 == nil || out182 == nil {
		return nil, timeseries.ErrEmptySeries
	}

	yieldYoY := yoyByDate(wav)
	shortRatio := ratioByDate(out91, out182, outstanding)
	issuance := issuanceByDate(sales, outstanding)

	var in analysis.FiscalInputs
	for _, p := range wav.Points() {
		y, ok1 := yieldYoY[p.Date]
		r, ok2 := shortRatio[p.Date]
		i, ok3 := issuance[p.Date]
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		in.Dates = append(in.Dates, p.Date)
		in.YieldYoY = append(in.YieldYoY, y)
		in.ShortTermRatio = append(in.ShortTermRatio, r)
		in.IssuancePressure = append(in.IssuancePressure, i)
	}
	return analysis.FiscalStress(in)
}

// yoyByDate is the positional 12-period percent change per date.
func yoyByDate(s *timeseries.Series) map[time.Time]float64 {
	pts := s.Points()
	out := make(map[time.Time]float64, len(pts))
	for i := 12; i < len(pts); i++ {
		if pts[i-12].Value == 0 {
			continue
		}
		out[pts[i].Date] = (pts[i].Value - pts[i-12].Value) / pts[i-12].Value * 100
	}
	return out
}

// ratioByDate is (a+b)/c on dates where all three are observed.
func ratioByDate(a, b, c *timeseries.Series) map[time.Time]float64 {
	bv := make(map[time.Time]float64, b.Len())
	for _, p := range b.Points() {
		bv[p.Date] = p.Value
	}
	cv := make(map[time.Time]float64, c.Len())
	for _, p := range c.Points() {
		cv[p.Date] = p.Value
	}
	out := make(map[time.Time]float64, a.Len())
	for _, p := range a.Points() {
		vb, ok1 := bv[p.Date]
		vc, ok2 := cv[p.Date]
		if !ok1 || !ok2 || vc == 0 {
			continue
		}
		out[p.Date] = (p.Value + vb) / vc
	}
	return out
}

// issuanceByDate is the rolling 12-month sales sum over the outstanding
// balance.
func issuanceByDate(sales, outstanding *timeseries.Series) map[time.Time]float64 {
	ov := make(map[time.Time]float64, outstanding.Len())
	for _, p := range outstanding.Points() {
		ov[p.Date] = p.Value
	}
	pts := sales.Points()
	out := make(map[time.Time]float64, len(pts))
	for i := 11; i < len(pts); i++ {
		sum := 0.0
		for j := i - 11; j <= i; j++ {
			sum += pts[j].Value
		}
		o, ok := ov[pts[i].Date]
		if !ok || o == 0 {
			continue
		}
		out[pts[i].Date] = sum / o
	}
	return out
}

func statusLevel(st analysis.Status) int {
	switch st {
	case analysis.StatusRed:
		return 2
	case analysis.StatusAmber:
		return 1
	default:
		return 0
	}
}
