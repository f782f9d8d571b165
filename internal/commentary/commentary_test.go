package commentary

import (
	"strings"
	"testing"

	"MacroGauge/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadline(t *testing.T) {
	rate := 9.5
	headline, details := Headline(Inputs{
		FX:         &analysis.Gauge{Status: analysis.StatusAmber, MoMChange: 1.4},
		Inflation:  &analysis.Gauge{Status: analysis.StatusRed, Value: 13.2, MoMChange: 0.6},
		Liquidity:  &analysis.Gauge{Status: analysis.StatusGreen, MoMChange: 0.8},
		Fiscal:     &analysis.Gauge{Status: analysis.StatusGreen, MoMChange: -2.1},
		External:   &analysis.Gauge{Status: analysis.StatusAmber, Value: 4.3, MoMChange: -1.0},
		Copper:     &analysis.Gauge{Status: analysis.StatusGreen, MoMChange: 0.4},
		Oil:        &analysis.Gauge{Status: analysis.StatusRed, MoMChange: 6.2},
		PolicyRate: &rate,
	})

	assert.Contains(t, headline, "moderate depreciation (+1.40% MoM)")
	assert.Contains(t, headline, "Inflation remains elevated at 13.2%")
	assert.Contains(t, headline, "policy rate at 9.50%")
	assert.True(t, strings.HasSuffix(headline, "."))

	require.Contains(t, details, "Oil")
	assert.Contains(t, details["Oil"].Commentary, "significant volatility")
	assert.Equal(t, 6.2, details["Oil"].MoM)
	require.Contains(t, details, "Policy")
}

func TestHeadlineSkipsMissingGauges(t *testing.T) {
	headline, details := Headline(Inputs{
		FX: &analysis.Gauge{Status: analysis.StatusGreen, MoMChange: -0.2},
	})
	assert.Contains(t, headline, "broadly stable")
	assert.Len(t, details, 1)
	assert.NotContains(t, headline, "Inflation")
}

func TestWhatChanged(t *testing.T) {
	bullets := WhatChanged(0.5, -0.1)
	require.Len(t, bullets, 2)
	assert.Equal(t, "Kwacha weakened on month-on-month basis", bullets[0])
	assert.Equal(t, "Monthly inflation eased", bullets[1])

	bullets = WhatChanged(-0.5, 0.1)
	assert.Equal(t, "Kwacha stabilized compared to previous month", bullets[0])
	assert.Equal(t, "Monthly inflation accelerated", bullets[1])
}

func TestBaseCase(t *testing.T) {
	got := BaseCase(
		&analysis.Gauge{Status: analysis.StatusAmber},
		&analysis.Gauge{Status: analysis.StatusRed},
	)
	assert.Equal(t, "Gradual FX pressure, sticky inflation.", got)

	got = BaseCase(
		&analysis.Gauge{Status: analysis.StatusGreen, MoMChange: -0.4},
		&analysis.Gauge{Status: analysis.StatusGreen},
	)
	assert.Equal(t, "Improving FX conditions, contained inflation.", got)

	got = BaseCase(nil, nil)
	assert.Equal(t, "Stable FX conditions, contained inflation.", got)
}

func TestClosingSummary(t *testing.T) {
	gauges := map[string]*analysis.Gauge{
		"fx_stress": {Status: analysis.StatusRed},
		"inflation": {Status: analysis.StatusGreen},
		"fiscal":    {Status: analysis.StatusRed},
	}
	got := ClosingSummary("July 2025", gauges)
	assert.Contains(t, got, "July 2025")
	assert.Contains(t, got, "fiscal, fx stress")

	got = ClosingSummary("July 2025", map[string]*analysis.Gauge{
		"fx": {Status: analysis.StatusGreen},
	})
	assert.Contains(t, got, "Risks remain broadly contained.")
}
