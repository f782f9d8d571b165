package brief

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroGauge/internal/domain/models"
	"MacroGauge/internal/loader"
	"MacroGauge/pkg/cache"
)

// countingMetrics verifies how often the snapshot pipeline actually runs.
type countingMetrics struct {
	statuses  map[string]int
	latencies int
}

func (m *countingMetrics) RecordIndicatorStatus(indicator string, level int) {
	if m.statuses == nil {
		m.statuses = make(map[string]int)
	}
	m.statuses[indicator] = level
}

func (m *countingMetrics) RecordLatency(string, float64) { m.latencies++ }

func (m *countingMetrics) RecordError(string) {}

// writeMonthly renders day-first CSV rows, one per month starting at
// January 2024.
func writeMonthly(t *testing.T, dir, file, header string, rows []string) {
	t.Helper()
	var b strings.Builder
	b.WriteString(header + "\n")
	for i, row := range rows {
		d := time.Date(2024, time.Month(1+i), 1, 0, 0, 0, 0, time.UTC)
		fmt.Fprintf(&b, "%s,%s\n", d.Format("02/01/2006"), row)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(b.String()), 0o644))
}

func newTestService(t *testing.T, m Metrics) *Service {
	t.Helper()
	dir := t.TempDir()

	writeMonthly(t, dir, "forex_rates.csv", "Date,USDZMW", []string{
		"25.1", "25.6", "26.0", "26.4", "26.2", "26.9",
		"27.3", "27.1", "27.8", "28.2", "28.0", "28.5", "28.9", "29.4",
	})
	writeMonthly(t, dir, "inflation.csv", "Month,Inflation_Annual", []string{
		"13.1", "13.5", "13.8", "14.0", "13.7", "14.2",
		"14.6", "14.4", "15.0", "15.3", "15.1", "15.6", "15.9", "16.2",
	})
	writeMonthly(t, dir, "commodity.csv", "Date,Copper_US_Tonne,Oil_US_barrel,Maize_K_50Kg", []string{
		"8450,78,330", "8520,80,335", "8600,82,340", "8550,79,345",
		"8700,81,350", "8800,83,352", "8750,85,358", "8900,84,360",
		"9000,86,365", "9100,85,370", "9050,87,372", "9200,88,378",
		"9300,86,382", "9400,89,390",
	})

	store, err := loader.NewStore(loader.New(dir, nil), nil, nil)
	require.NoError(t, err)

	return NewService(store, cache.NewMemoryCache(), nil, m, Config{Title: "Test Brief"})
}

func TestResolveMonth(t *testing.T) {
	svc := newTestService(t, nil)

	// unset resolves to the latest observed month
	m, err := svc.ResolveMonth("")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), m)

	m, err = svc.ResolveMonth("March 2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), m)

	_, err = svc.ResolveMonth("quarter 3")
	require.Error(t, err)
}

func TestRegistryLookup(t *testing.T) {
	d, ok := Lookup("inflation_yoy")
	require.True(t, ok)
	assert.Equal(t, loader.DatasetInflation, d.Dataset)
	assert.NotEmpty(t, d.Thresholds)

	_, ok = Lookup("gdp")
	assert.False(t, ok)
}

func TestIndicator(t *testing.T) {
	svc := newTestService(t, nil)

	sum, err := svc.Indicator("fx_rate", 3)
	require.NoError(t, err)
	assert.Equal(t, 29.4, sum.Latest)
	assert.Equal(t, 3, sum.Window)
	assert.InDelta(t, 0.5, sum.Change.Absolute, 1e-9)

	// inflation carries its classification band
	sum, err = svc.Indicator("inflation_yoy", 0)
	require.NoError(t, err)
	assert.Equal(t, "elevated", sum.Label)

	_, err = svc.Indicator("gdp", 3)
	assert.ErrorIs(t, err, ErrUnknownIndicator)
}

func TestIndicatorsDegradesPerRow(t *testing.T) {
	svc := newTestService(t, nil)

	infos := svc.Indicators(3)
	require.Len(t, infos, len(Registry()))

	byName := make(map[string]models.IndicatorInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}

	require.NotNil(t, byName["fx_rate"].Summary)
	assert.Empty(t, byName["fx_rate"].Error)

	// policy rate file is absent; the row reports instead of vanishing
	assert.Nil(t, byName["policy_rate"].Summary)
	assert.NotEmpty(t, byName["policy_rate"].Error)
}

func TestSnapshotBuild(t *testing.T) {
	m := &countingMetrics{}
	svc := newTestService(t, m)

	snap, err := svc.Snapshot(context.Background(), "February 2025")
	require.NoError(t, err)

	assert.Equal(t, "February 2025", snap.Month)
	for _, name := range []string{"fx", "inflation", "copper", "oil"} {
		assert.Contains(t, snap.Gauges, name)
	}
	for _, key := range []string{"fx", "inflation", "copper", "oil", "maize", "commodities"} {
		assert.Contains(t, snap.Sections, key)
	}

	assert.NotEmpty(t, snap.Headline)
	assert.NotEmpty(t, snap.WhatChanged)
	assert.NotEmpty(t, snap.BaseCase)
	assert.Contains(t, snap.Closing, "February 2025")

	// kwacha moved up on the month
	assert.Contains(t, snap.WhatChanged, "Kwacha weakened on month-on-month basis")

	assert.Contains(t, m.statuses, "fx")
}

func TestSnapshotPinnedToMonth(t *testing.T) {
	svc := newTestService(t, nil)

	snap, err := svc.Snapshot(context.Background(), "June 2024")
	require.NoError(t, err)
	assert.Equal(t, 26.9, snap.Gauges["fx"].Value)
}

func TestSnapshotCached(t *testing.T) {
	m := &countingMetrics{}
	svc := newTestService(t, m)

	_, err := svc.Snapshot(context.Background(), "February 2025")
	require.NoError(t, err)
	snap, err := svc.Snapshot(context.Background(), "February 2025")
	require.NoError(t, err)

	assert.Equal(t, "February 2025", snap.Month)
	// second call served from cache, so the pipeline ran once
	assert.Equal(t, 1, m.latencies)

	// invalidation forces the next call back through the pipeline
	svc.Invalidate(context.Background())
	_, err = svc.Snapshot(context.Background(), "February 2025")
	require.NoError(t, err)
	assert.Equal(t, 2, m.latencies)
}

func TestSnapshotNoData(t *testing.T) {
	dir := t.TempDir()
	writeMonthly(t, dir, "forex_rates.csv", "Date,USDZMW", []string{"25.1", "25.6"})
	store, err := loader.NewStore(loader.New(dir, nil), nil, nil)
	require.NoError(t, err)
	svc := NewService(store, nil, nil, nil, Config{})

	// month before any observation
	_, err = svc.Snapshot(context.Background(), "January 2020")
	require.Error(t, err)
}

func TestBrief(t *testing.T) {
	svc := newTestService(t, nil)

	b, err := svc.Brief(context.Background(), "", FormatBlog)
	require.NoError(t, err)
	assert.Equal(t, "February 2025", b.Month)
	assert.Equal(t, "macro_brief_blog_Feb_2025.txt", b.Filename)
	assert.True(t, strings.HasPrefix(b.Text, "Test Brief (February 2025)"))
	assert.Contains(t, b.Text, "FX Overview:")
	assert.Contains(t, b.Text, "Inflation:")

	wa, err := svc.Brief(context.Background(), "", FormatWhatsApp)
	require.NoError(t, err)
	assert.NotContains(t, wa.Text, "\n\n")

	li, err := svc.Brief(context.Background(), "", FormatLinkedIn)
	require.NoError(t, err)
	assert.NotContains(t, li.Text, "\n")
	assert.Contains(t, li.Text, " | ")

	_, err = svc.Brief(context.Background(), "", "carrier-pigeon")
	require.Error(t, err)
}

func TestRenderLayout(t *testing.T) {
	snap := &models.Snapshot{
		Month: "March 2024",
		Sections: map[string]string{
			"fx":        "FX text.",
			"tbills":    "Bills text.",
			"bonds":     "Bonds text.",
			"inflation": "Inflation text.",
		},
	}

	out, err := Render("Title", snap, FormatBlog)
	require.NoError(t, err)

	// sections come out in layout order regardless of map order
	fxAt := strings.Index(out, "FX Overview:")
	inflAt := strings.Index(out, "Inflation:")
	billsAt := strings.Index(out, "T-Bills & Bonds:")
	require.True(t, fxAt >= 0 && inflAt >= 0 && billsAt >= 0)
	assert.Less(t, fxAt, inflAt)
	assert.Less(t, inflAt, billsAt)

	// bonds rides along under the T-bills heading
	assert.Contains(t, out, "T-Bills & Bonds:\nBills text.\nBonds text.")

	// absent sections leave no dangling heading
	assert.NotContains(t, out, "Yield Curve:")
}

func TestHealth(t *testing.T) {
	svc := newTestService(t, nil)

	h := svc.Health()
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, 3, h.Datasets)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), h.LatestDate)
}
