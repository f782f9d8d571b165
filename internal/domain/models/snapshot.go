package models

import (
	"time"

	"MacroGauge/internal/analysis"
	"MacroGauge/internal/commentary"
	"MacroGauge/internal/indicator"
)

// Snapshot is the full monthly macro reading served on /api/snapshot: the
// gauge grid plus the narrative blocks built from it.
type Snapshot struct {
	Month    string    `json:"month"`
	AsOf     time.Time `json:"as_of"`
	LoadedAt time.Time `json:"loaded_at"`

	Gauges map[string]*analysis.Gauge `json:"gauges"`

	Headline    string                       `json:"headline"`
	Details     map[string]commentary.Detail `json:"details"`
	WhatChanged []string                     `json:"what_changed"`
	BaseCase    string                       `json:"base_case"`
	Closing     string                       `json:"closing"`

	// Sections are the per-topic commentary blocks the brief is built from.
	Sections map[string]string `json:"sections"`
}

// RiskPanel is the stress-index view served on /api/risk.
type RiskPanel struct {
	AsOf time.Time `json:"as_of"`

	FXStress      []analysis.StressPoint `json:"fx_stress"`
	FXStressState *analysis.Gauge        `json:"fx_stress_state"`

	FiscalStress      []analysis.FiscalPoint `json:"fiscal_stress"`
	FiscalStressState *analysis.Gauge        `json:"fiscal_stress_state"`

	YieldCurve *analysis.YieldCurve    `json:"yield_curve,omitempty"`
	Recession  *analysis.RecessionRisk `json:"recession,omitempty"`
	Stance     *analysis.StanceReading `json:"stance,omitempty"`
}

// IndicatorInfo pairs an indicator's registry entry with its computed
// summary for the indicator list endpoint.
type IndicatorInfo struct {
	Name    string             `json:"name"`
	Dataset string             `json:"dataset"`
	Column  string             `json:"column"`
	Summary *indicator.Summary `json:"summary,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Health is the liveness payload with data freshness.
type Health struct {
	Status     string    `json:"status"`
	Datasets   int       `json:"datasets"`
	LatestDate time.Time `json:"latest_date"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// Brief is one rendered brief document.
type Brief struct {
	Month    string `json:"month"`
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Text     string `json:"text"`
}
