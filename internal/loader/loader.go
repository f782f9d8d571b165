package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"MacroGauge/pkg/logger"
	"MacroGauge/pkg/util"
)

var ErrUnknownDataset = errors.New("unknown dataset")

// Dataset names, matching the raw CSV filenames.
const (
	DatasetBillRates    = "bill_rates"
	DatasetBills        = "bills"
	DatasetBonds        = "bonds"
	DatasetBozForex     = "boz_forex"
	DatasetCommodity    = "commodity"
	DatasetInflation    = "inflation"
	DatasetLendingRates = "lending_rates"
	DatasetLiabilities  = "liabilities"
	DatasetLiquidity    = "liquidity"
	DatasetMoneySupply  = "money_supply"
	DatasetForex        = "forex_rates"
)

// datasetSpec describes how one CSV file is read.
type datasetSpec struct {
	file    string
	dateCol string
}

// specs covers every dataset the dashboard knows. The inflation file keys
// its rows on Month rather than Date.
var specs = map[string]datasetSpec{
	DatasetBillRates:    {file: "bill_rates.csv", dateCol: "Date"},
	DatasetBills:        {file: "bills.csv", dateCol: "Date"},
	DatasetBonds:        {file: "bonds.csv", dateCol: "Date"},
	DatasetBozForex:     {file: "boz_forex.csv", dateCol: "Date"},
	DatasetCommodity:    {file: "commodity.csv", dateCol: "Date"},
	DatasetInflation:    {file: "inflation.csv", dateCol: "Month"},
	DatasetLendingRates: {file: "lending_rates.csv", dateCol: "Date"},
	DatasetLiabilities:  {file: "liabilities.csv", dateCol: "Date"},
	DatasetLiquidity:    {file: "liquidity.csv", dateCol: "Date"},
	DatasetMoneySupply:  {file: "money_supply.csv", dateCol: "Date"},
	DatasetForex:        {file: "forex_rates.csv", dateCol: "Date"},
}

// DatasetNames lists every known dataset.
func DatasetNames() []string {
	out := make([]string, 0, len(specs))
	for name := range specs {
		out = append(out, name)
	}
	return out
}

// Loader reads dataset CSVs from a data directory.
type Loader struct {
	dir    string
	logger *logger.Logger
}

// New creates a Loader rooted at dir.
func New(dir string, l *logger.Logger) *Loader {
	return &Loader{dir: dir, logger: l}
}

// Load reads one dataset by name.
func (l *Loader) Load(name string) (*Frame, error) {
	spec, ok := specs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownDataset)
	}

	path := filepath.Join(l.dir, spec.file)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", name, err)
	}
	defer f.Close()

	frame, skipped, err := readCSV(f, name, spec.dateCol)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", name, err)
	}
	if skipped > 0 && l.logger != nil {
		l.logger.Warn("skipped malformed rows",
			logger.String("dataset", name),
			logger.Int("rows", skipped),
		)
	}
	return frame, nil
}

// LoadAll reads every known dataset. A missing file is logged and skipped
// so one absent CSV does not blank the whole dashboard.
func (l *Loader) LoadAll() (map[string]*Frame, error) {
	frames := make(map[string]*Frame, len(specs))
	for name := range specs {
		frame, err := l.Load(name)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				if l.logger != nil {
					l.logger.Warn("dataset file missing", logger.String("dataset", name))
				}
				continue
			}
			return nil, err
		}
		frames[name] = frame
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no datasets found in %s", l.dir)
	}
	return frames, nil
}

// readCSV parses one file into a Frame. Rows with an unparseable date are
// skipped and counted; unparseable numeric cells read as missing.
func readCSV(r io.Reader, name, dateCol string) (*Frame, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	dateIdx := -1
	for i, col := range header {
		if col == dateCol {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		return nil, 0, fmt.Errorf("date column %q not in header", dateCol)
	}

	frame := NewFrame(name)
	skipped := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if dateIdx >= len(record) {
			skipped++
			continue
		}
		date, ok := util.ParseDate(record[dateIdx])
		if !ok {
			skipped++
			continue
		}

		values := make(map[string]float64, len(header)-1)
		for i, col := range header {
			if i == dateIdx || i >= len(record) {
				continue
			}
			if v, ok := util.ParseFloat(record[i]); ok {
				values[col] = v
			}
		}
		frame.AddRow(date, values)
	}

	frame.sortRows()
	return frame, skipped, nil
}
