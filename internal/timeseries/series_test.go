package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	testData := map[string]struct {
		dates  []time.Time
		values []float64
		err    error
	}{
		"empty is valid": {},
		"length mismatch": {
			values: []float64{1},
			err:    ErrLenMismatch,
		},
		"non increasing dates": {
			dates:  []time.Time{date(2024, 2), date(2024, 1)},
			values: []float64{1, 2},
			err:    ErrNonMonotonic,
		},
		"duplicate dates": {
			dates:  []time.Time{date(2024, 1), date(2024, 1)},
			values: []float64{1, 2},
			err:    ErrNonMonotonic,
		},
		"valid": {
			dates:  []time.Time{date(2024, 1), date(2024, 2), date(2024, 4)},
			values: []float64{1, 2, 3},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			s, err := New("x", td.dates, td.values)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(td.dates), s.Len())
		})
	}
}

func TestLast(t *testing.T) {
	s, err := New("fx", []time.Time{date(2024, 1), date(2024, 2)}, []float64{26.4, 27.1})
	require.NoError(t, err)

	p, err := s.Last()
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2), p.Date)
	assert.Equal(t, 27.1, p.Value)

	empty := &Series{}
	_, err = empty.Last()
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestTail(t *testing.T) {
	s, err := New("x",
		[]time.Time{date(2024, 1), date(2024, 2), date(2024, 3)},
		[]float64{100, 102, 99},
	)
	require.NoError(t, err)

	assert.Len(t, s.Tail(2), 2)
	assert.Equal(t, 102.0, s.Tail(2)[0].Value)

	// shorter than requested window degrades to the full series
	assert.Len(t, s.Tail(12), 3)
	assert.Nil(t, s.Tail(0))
}

func TestThrough(t *testing.T) {
	s, err := New("x",
		[]time.Time{date(2024, 1), date(2024, 2), date(2024, 3)},
		[]float64{100, 102, 99},
	)
	require.NoError(t, err)

	pinned := s.Through(date(2024, 2))
	require.Equal(t, 2, pinned.Len())
	p, err := pinned.Last()
	require.NoError(t, err)
	assert.Equal(t, 102.0, p.Value)

	assert.Equal(t, 0, s.Through(date(2023, 12)).Len())
	assert.Equal(t, 3, s.Through(date(2025, 1)).Len())
}

func TestSince(t *testing.T) {
	s, err := New("x",
		[]time.Time{date(2024, 1), date(2024, 2), date(2024, 3)},
		[]float64{100, 102, 99},
	)
	require.NoError(t, err)

	recent := s.Since(date(2024, 2))
	require.Equal(t, 2, recent.Len())
	assert.Equal(t, 102.0, recent.At(0).Value)

	assert.Equal(t, 3, s.Since(date(2023, 12)).Len())
	assert.Equal(t, 0, s.Since(date(2025, 1)).Len())
}
