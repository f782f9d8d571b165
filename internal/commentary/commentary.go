// Package commentary assembles the narrative text blocks shown on the
// dashboard and in the exported brief from gauge readings.
package commentary

import (
	"fmt"
	"sort"
	"strings"

	"MacroGauge/internal/analysis"
)

// Inputs are the gauge readings the headline is written from. Nil gauges
// are skipped so a missing dataset degrades to a shorter paragraph.
type Inputs struct {
	FX        *analysis.Gauge
	Inflation *analysis.Gauge
	Liquidity *analysis.Gauge
	Fiscal    *analysis.Gauge
	External  *analysis.Gauge
	Copper    *analysis.Gauge
	Oil       *analysis.Gauge

	PolicyRate *float64
}

// Detail is one metric's sentence with its month move.
type Detail struct {
	Commentary string  `json:"commentary"`
	MoM        float64 `json:"mom"`
}

// Headline writes the single-paragraph macro summary and the per-metric
// details backing it.
func Headline(in Inputs) (string, map[string]Detail) {
	details := make(map[string]Detail)
	var sentences []string

	add := func(key, text string, mom float64) {
		details[key] = Detail{Commentary: text, MoM: mom}
		sentences = append(sentences, text)
	}

	if g := in.FX; g != nil {
		var text string
		switch g.Status {
		case analysis.StatusRed:
			text = fmt.Sprintf("The Kwacha experienced significant depreciation (%+.2f%% MoM), reflecting elevated FX market pressures", g.MoMChange)
		case analysis.StatusAmber:
			text = fmt.Sprintf("The Kwacha traded with moderate depreciation (%+.2f%% MoM) amid seasonal FX demand", g.MoMChange)
		default:
			text = fmt.Sprintf("FX conditions remained broadly stable (%+.2f%% MoM)", g.MoMChange)
		}
		add("FX", text, g.MoMChange)
	}

	if g := in.Inflation; g != nil {
		var text string
		switch g.Status {
		case analysis.StatusRed:
			text = fmt.Sprintf("Inflation remains elevated at %.1f%%, above the central bank target, with %+.2f%% MoM pressure", g.Value, g.MoMChange)
		case analysis.StatusAmber:
			text = fmt.Sprintf("Inflation slightly exceeds target at %.1f%%, with persistent MoM price pressures (%+.2f%%)", g.Value, g.MoMChange)
		default:
			text = fmt.Sprintf("Inflation is within target at %.1f%%, with MoM trends easing (%+.2f%%)", g.Value, g.MoMChange)
		}
		add("Inflation", text, g.MoMChange)
	}

	if g := in.Liquidity; g != nil {
		var text string
		switch g.Status {
		case analysis.StatusRed:
			text = fmt.Sprintf("Banking system liquidity remains strained, with total reserves changing %+.2f%% MoM", g.MoMChange)
		case analysis.StatusAmber:
			text = fmt.Sprintf("Liquidity conditions are somewhat tight, total reserves moved %+.2f%% MoM", g.MoMChange)
		default:
			text = fmt.Sprintf("Liquidity is broadly stable, total reserves changed %+.2f%% MoM", g.MoMChange)
		}
		add("Liquidity", text, g.MoMChange)
	}

	if g := in.Fiscal; g != nil {
		var text string
		switch g.Status {
		case analysis.StatusRed:
			text = fmt.Sprintf("Fiscal operations show high pressure, with T-bills sales increasing %+.2f%% MoM", g.MoMChange)
		case analysis.StatusAmber:
			text = fmt.Sprintf("Fiscal position is moderately tight, T-bills sales moved %+.2f%% MoM", g.MoMChange)
		default:
			text = fmt.Sprintf("Fiscal flows remain manageable, T-bills sales changed %+.2f%% MoM", g.MoMChange)
		}
		add("Fiscal", text, g.MoMChange)
	}

	if g := in.External; g != nil {
		var adjective string
		switch g.Status {
		case analysis.StatusRed:
			adjective = "under significant pressure"
		case analysis.StatusAmber:
			adjective = "showing moderate stress"
		default:
			adjective = "stable"
		}
		text := fmt.Sprintf("External sector is %s, gross reserves %.1f B ZMW (%+.2f%% MoM)", adjective, g.Value, g.MoMChange)
		add("External", text, g.MoMChange)
	}

	for _, c := range []struct {
		key string
		g   *analysis.Gauge
	}{{"Copper", in.Copper}, {"Oil", in.Oil}} {
		if c.g == nil {
			continue
		}
		var text string
		switch c.g.Status {
		case analysis.StatusRed:
			text = fmt.Sprintf("%s prices show significant volatility, changing %+.2f%% MoM", c.key, c.g.MoMChange)
		case analysis.StatusAmber:
			text = fmt.Sprintf("%s prices are moderately volatile, MoM change %+.2f%%", c.key, c.g.MoMChange)
		default:
			text = fmt.Sprintf("%s prices remain stable, MoM change %+.2f%%", c.key, c.g.MoMChange)
		}
		add(c.key, text, c.g.MoMChange)
	}

	if in.PolicyRate != nil {
		text := fmt.Sprintf("Monetary policy remains accommodative with BoZ policy rate at %.2f%%", *in.PolicyRate)
		details["Policy"] = Detail{Commentary: text}
		sentences = append(sentences, text)
	}

	return strings.Join(sentences, ". ") + ".", details
}

// WhatChanged lists the month-over-month direction bullets.
func WhatChanged(fxMoM, inflationMoM float64) []string {
	var bullets []string
	if fxMoM > 0 {
		bullets = append(bullets, "Kwacha weakened on month-on-month basis")
	} else {
		bullets = append(bullets, "Kwacha stabilized compared to previous month")
	}
	if inflationMoM > 0 {
		bullets = append(bullets, "Monthly inflation accelerated")
	} else {
		bullets = append(bullets, "Monthly inflation eased")
	}
	return bullets
}

// BaseCase condenses FX and inflation conditions into the base-case line.
func BaseCase(fx, inflation *analysis.Gauge) string {
	var statements []string

	switch {
	case fx == nil:
		statements = append(statements, "stable FX conditions")
	case fx.Status == analysis.StatusRed || fx.Status == analysis.StatusAmber:
		statements = append(statements, "gradual FX pressure")
	case fx.MoMChange < 0:
		statements = append(statements, "improving FX conditions")
	default:
		statements = append(statements, "stable FX conditions")
	}

	switch {
	case inflation == nil:
		statements = append(statements, "contained inflation")
	case inflation.Status == analysis.StatusRed:
		statements = append(statements, "sticky inflation")
	case inflation.Status == analysis.StatusAmber:
		statements = append(statements, "easing inflation")
	default:
		statements = append(statements, "contained inflation")
	}

	joined := strings.Join(statements, ", ")
	return strings.ToUpper(joined[:1]) + joined[1:] + "."
}

// ClosingSummary lists the red gauges for the month, or notes that risks
// are contained.
func ClosingSummary(month string, gauges map[string]*analysis.Gauge) string {
	var risks []string
	for key, g := range gauges {
		if g != nil && g.Status == analysis.StatusRed {
			risks = append(risks, strings.ReplaceAll(key, "_", " "))
		}
	}
	if len(risks) == 0 {
		return fmt.Sprintf("MacroGauge Summary — %s\nRisks remain broadly contained.", month)
	}
	sort.Strings(risks)
	return fmt.Sprintf(
		"MacroGauge Summary — %s\n- Elevated risks observed in %s\n- Policy coordination remains critical",
		month, strings.Join(risks, ", "),
	)
}
