package indicator

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"MacroGauge/internal/timeseries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(m time.Month) time.Time {
	return time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC)
}

func mustSeries(t *testing.T, values ...float64) *timeseries.Series {
	t.Helper()
	dates := make([]time.Time, len(values))
	for i := range values {
		dates[i] = month(time.Month(i + 1))
	}
	s, err := timeseries.New("test", dates, values)
	require.NoError(t, err)
	return s
}

func TestLatest(t *testing.T) {
	s := mustSeries(t, 100, 102, 99)
	p, err := Latest(s)
	require.NoError(t, err)
	assert.Equal(t, month(time.March), p.Date)
	assert.Equal(t, 99.0, p.Value)

	_, err = Latest(mustSeries(t))
	assert.ErrorIs(t, err, timeseries.ErrEmptySeries)

	// single observation still has a latest
	p, err = Latest(mustSeries(t, 42))
	require.NoError(t, err)
	assert.Equal(t, 42.0, p.Value)
}

func TestMoM(t *testing.T) {
	testData := map[string]struct {
		values     []float64
		absolute   float64
		percent    float64
		defined    bool
		err        error
	}{
		"empty":  {err: timeseries.ErrEmptySeries},
		"single": {values: []float64{5}, err: ErrInsufficientData},
		"upward": {
			values:   []float64{100, 102},
			absolute: 2, percent: 2, defined: true,
		},
		"downward": {
			values:   []float64{100, 102, 99},
			absolute: -3, percent: -100.0 * 3.0 / 102.0, defined: true,
		},
		"zero prior yields undefined percent": {
			values:   []float64{0, 7},
			absolute: 7, defined: false,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			c, err := MoM(mustSeries(t, td.values...))
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.absolute, c.Absolute)
			assert.Equal(t, td.defined, c.PercentDefined)
			if td.defined {
				assert.InDelta(t, td.percent, c.Percent, 1e-9)
			} else {
				assert.True(t, math.IsNaN(c.Percent))
			}
		})
	}
}

func TestChangeExactDelta(t *testing.T) {
	// absolute delta must be exact, not a rounded percent reconstruction
	s := mustSeries(t, 26.43, 27.18)
	c, err := MoM(s)
	require.NoError(t, err)
	assert.Equal(t, 27.18-26.43, c.Absolute)
}

func TestYoY(t *testing.T) {
	values := make([]float64, 13)
	for i := range values {
		values[i] = 100 + float64(i)
	}
	c, err := YoY(mustSeries(t, values...))
	require.NoError(t, err)
	assert.Equal(t, 12.0, c.Absolute)
	assert.InDelta(t, 12.0, c.Percent, 1e-9)

	_, err = YoY(mustSeries(t, 1, 2, 3))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestRollingAverage(t *testing.T) {
	s := mustSeries(t, 100, 102, 99)

	avg, err := RollingAverage(s, 2)
	require.NoError(t, err)
	assert.InDelta(t, 100.5, avg, 1e-9)

	// shorter series than window degrades to the plain mean
	avg, err = RollingAverage(s, 12)
	require.NoError(t, err)
	assert.InDelta(t, (100.0+102.0+99.0)/3.0, avg, 1e-9)

	_, err = RollingAverage(mustSeries(t), 3)
	assert.ErrorIs(t, err, timeseries.ErrEmptySeries)
}

func TestClassify(t *testing.T) {
	bands := []Threshold{
		{Upper: 0, Label: "low"},
		{Upper: 10, Label: "mid"},
		{Upper: math.Inf(1), Label: "high"},
	}

	testData := map[string]struct {
		value    float64
		expected string
	}{
		"below first bound":   {-1, "low"},
		"on first bound":      {0, "low"},
		"inside second band":  {5, "mid"},
		"above all bounds":    {100, "high"},
		"negative very large": {math.Inf(-1), "low"},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			label, err := Classify(td.value, bands)
			require.NoError(t, err)
			assert.Equal(t, td.expected, label)
		})
	}

	_, err := Classify(1, nil)
	assert.ErrorIs(t, err, ErrNoThresholds)

	// finite final bound still catches values above it
	label, err := Classify(99, []Threshold{{Upper: 0, Label: "a"}, {Upper: 1, Label: "b"}})
	require.NoError(t, err)
	assert.Equal(t, "b", label)
}

func TestSummarize(t *testing.T) {
	s := mustSeries(t, 100, 102, 99)
	sum, err := Summarize(s, Options{Window: 2})
	require.NoError(t, err)

	assert.Equal(t, month(time.March), sum.LatestDate)
	assert.Equal(t, 99.0, sum.Latest)
	assert.Equal(t, 102.0, sum.Prior)
	assert.Equal(t, -3.0, sum.Change.Absolute)
	assert.InDelta(t, -2.94, sum.Change.Percent, 0.01)
	assert.InDelta(t, 100.5, sum.RollingAvg, 1e-9)
	assert.Empty(t, sum.Label)
}

func TestSummarizeIdempotent(t *testing.T) {
	s := mustSeries(t, 14.2, 14.9, 15.1, 14.8)
	opt := Options{Window: 3, Thresholds: []Threshold{
		{Upper: 8, Label: "within target"},
		{Upper: 12, Label: "above target"},
		{Upper: math.Inf(1), Label: "elevated"},
	}}

	first, err := Summarize(s, opt)
	require.NoError(t, err)
	second, err := Summarize(s, opt)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "elevated", first.Label)
}

func TestChangeJSON(t *testing.T) {
	b, err := json.Marshal(Change{Absolute: 1.5, Percent: 3.0, PercentDefined: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"absolute":1.5,"percent":3}`, string(b))

	// undefined percent encodes as null, never NaN
	b, err = json.Marshal(Change{Absolute: 2, Percent: math.NaN()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"absolute":2,"percent":null}`, string(b))
}
