package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inflationCSV = `Month,Total_Consumer_Price_Index,Inflation_Annual
01/01/2024,305.1,13.1
01/02/2024,308.4,13.5
not-a-date,310.0,13.9
01/03/2024,311.2,
`

func TestReadCSV(t *testing.T) {
	frame, skipped, err := readCSV(strings.NewReader(inflationCSV), DatasetInflation, "Month")
	require.NoError(t, err)

	assert.Equal(t, 1, skipped)
	assert.Equal(t, 3, frame.Len())
	assert.Equal(t, []string{"Inflation_Annual", "Total_Consumer_Price_Index"}, frame.Columns())

	// the blank March cell drops out of the series
	s, err := frame.Series("Inflation_Annual")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	p, err := s.Last()
	require.NoError(t, err)
	assert.Equal(t, 13.5, p.Value)

	cpi, err := frame.Series("Total_Consumer_Price_Index")
	require.NoError(t, err)
	assert.Equal(t, 3, cpi.Len())
}

func TestReadCSVUnsortedAndDuplicates(t *testing.T) {
	in := `Date,USDZMW
01/03/2024,26.9
01/01/2024,26.1
01/02/2024,26.5
01/01/2024,26.2
`
	frame, skipped, err := readCSV(strings.NewReader(in), DatasetForex, "Date")
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Equal(t, 3, frame.Len())

	s, err := frame.Series("USDZMW")
	require.NoError(t, err)
	// rows sorted, last duplicate wins
	assert.Equal(t, []float64{26.2, 26.5, 26.9}, s.Values())
}

func TestReadCSVThousandsSeparators(t *testing.T) {
	in := `Date,Copper_US_Tonne
01/01/2024,"8,450.25"
01/02/2024,8600
`
	frame, _, err := readCSV(strings.NewReader(in), DatasetCommodity, "Date")
	require.NoError(t, err)
	s, err := frame.Series("Copper_US_Tonne")
	require.NoError(t, err)
	assert.Equal(t, []float64{8450.25, 8600}, s.Values())
}

func TestReadCSVMissingDateColumn(t *testing.T) {
	_, _, err := readCSV(strings.NewReader("A,B\n1,2\n"), "x", "Date")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date column")
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "forex_rates.csv"),
		[]byte("Date,USDZMW\n01/01/2024,26.1\n01/02/2024,26.5\n"), 0o644))

	l := New(dir, nil)
	frame, err := l.Load(DatasetForex)
	require.NoError(t, err)
	assert.Equal(t, 2, frame.Len())
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), frame.LatestDate())

	_, err = l.Load("nope")
	assert.ErrorIs(t, err, ErrUnknownDataset)
}

func TestStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "forex_rates.csv"),
		[]byte("Date,USDZMW\n01/01/2024,26.1\n01/02/2024,26.5\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inflation.csv"),
		[]byte("Month,Inflation_Annual\n01/01/2024,13.1\n01/03/2024,13.5\n"), 0o644))

	store, err := NewStore(New(dir, nil), nil, nil)
	require.NoError(t, err)

	s, err := store.Series(DatasetForex, "USDZMW")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	// latest across datasets comes from the inflation file
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), store.LatestDate())

	_, err = store.Frame("nope")
	assert.ErrorIs(t, err, ErrUnknownDataset)

	// reload picks up a rewritten file
	require.NoError(t, os.WriteFile(filepath.Join(dir, "forex_rates.csv"),
		[]byte("Date,USDZMW\n01/01/2024,26.1\n01/02/2024,26.5\n01/03/2024,27.0\n"), 0o644))
	require.NoError(t, store.Reload())
	s, err = store.Series(DatasetForex, "USDZMW")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestFrameSumSeries(t *testing.T) {
	in := `Date,BOZ_Inflows_Mines,BOZ_Inflows_Donor_Inflows
01/01/2024,100,20
01/02/2024,110,
01/03/2024,120,30
`
	frame, _, err := readCSV(strings.NewReader(in), DatasetBozForex, "Date")
	require.NoError(t, err)

	total, err := frame.SumSeries("Total_FX_Inflows", "BOZ_Inflows_Mines", "BOZ_Inflows_Donor_Inflows")
	require.NoError(t, err)
	// the incomplete February row is dropped
	assert.Equal(t, []float64{120, 150}, total.Values())
}
