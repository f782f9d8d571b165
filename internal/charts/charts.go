// Package charts renders the dashboard visuals with go-echarts: indicator
// line charts, the latest yield curve and the traffic-light gauge grid.
package charts

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"MacroGauge/internal/analysis"
	"MacroGauge/internal/timeseries"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineTSeries generates a multi-line chart for some arbitrary time/value
// combination. Each y slice must have the same length as t; NaN cells are
// dropped.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	axis := make([]string, 0, len(t))
	for _, ts := range t {
		axis = append(axis, ts.Format("2006-01"))
	}

	lineData := make([][]opts.LineData, len(y))
	for i := range y {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := range y[i] {
			if math.IsNaN(y[i][j]) {
				lineData[i] = append(lineData[i], opts.LineData{Value: nil})
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(axis)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}
	return line
}

// LineSeries charts one indicator series.
func LineSeries(title string, s *timeseries.Series) *charts.Line {
	return LineTSeries(title, []string{s.Name}, s.Dates(), [][]float64{s.Values()})
}

// StressLine charts the FX stress index with its component z-scores.
func StressLine(points []analysis.StressPoint) *charts.Line {
	t := make([]time.Time, len(points))
	index := make([]float64, len(points))
	zPrice := make([]float64, len(points))
	zVol := make([]float64, len(points))
	for i, p := range points {
		t[i] = p.Date
		index[i] = p.Index
		zPrice[i] = p.ZPrice
		zVol[i] = p.ZVol
	}
	return LineTSeries(
		"FX Stress Index",
		[]string{"Index", "Price z-score", "Volatility z-score"},
		t,
		[][]float64{index, zPrice, zVol},
	)
}

// FiscalLine charts the fiscal stress index.
func FiscalLine(points []analysis.FiscalPoint) *charts.Line {
	t := make([]time.Time, len(points))
	index := make([]float64, len(points))
	for i, p := range points {
		t[i] = p.Date
		index[i] = p.Index
	}
	return LineTSeries("Fiscal Stress Index", []string{"Index"}, t, [][]float64{index})
}

// YieldCurveLine charts the latest curve, yield against maturity.
func YieldCurveLine(curve *analysis.YieldCurve) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    fmt.Sprintf("Yield Curve — %s", curve.Date.Format("Jan 2006")),
				Subtitle: fmt.Sprintf("Regime: %s", curve.Regime),
			},
		),
	)

	axis := make([]string, 0, len(curve.Points))
	data := make([]opts.LineData, 0, len(curve.Points))
	for _, p := range curve.Points {
		axis = append(axis, p.Tenor)
		data = append(data, opts.LineData{Value: p.Yield})
	}
	line.SetXAxis(axis).AddSeries("Yield (%)", data)
	return line
}

// GaugeDial renders one traffic-light reading as an echarts gauge dial.
func GaugeDial(g *analysis.Gauge) *charts.Gauge {
	dial := charts.NewGauge()
	dial.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    g.Name,
				Subtitle: fmt.Sprintf("%s | MoM %+.2f%%", g.Status, g.MoMChange),
			},
		),
	)
	dial.AddSeries(g.Name, []opts.GaugeData{{Name: g.Name, Value: g.Value}})
	return dial
}

// Dashboard composes the gauge grid and charts into one HTML page and
// writes it to w.
func Dashboard(w io.Writer, gauges map[string]*analysis.Gauge, series []*timeseries.Series, stress []analysis.StressPoint, fiscal []analysis.FiscalPoint, curve *analysis.YieldCurve) error {
	page := components.NewPage()
	page.PageTitle = "MacroGauge"

	names := make([]string, 0, len(gauges))
	for name := range gauges {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		page.AddCharts(GaugeDial(gauges[name]))
	}

	for _, s := range series {
		page.AddCharts(LineSeries(s.Name, s))
	}
	if len(stress) > 0 {
		page.AddCharts(StressLine(stress))
	}
	if len(fiscal) > 0 {
		page.AddCharts(FiscalLine(fiscal))
	}
	if curve != nil && len(curve.Points) > 0 {
		page.AddCharts(YieldCurveLine(curve))
	}

	return page.Render(w)
}
