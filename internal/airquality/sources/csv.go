package sources

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/aqi-explorer/internal/airquality"
)

// CSVSource loads readings from a CSV file with a header row.
type CSVSource struct {
	name    string
	path    string
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

// NewCSVSource creates a source reading path.
func NewCSVSource(path string, backoff BackoffConfig) *CSVSource {
	return &CSVSource{
		name:    "csv:" + path,
		path:    path,
		backoff: backoff,
		circuit: newBreaker("csv"),
	}
}

func (s *CSVSource) Name() string {
	return s.name
}

func (s *CSVSource) Load(ctx context.Context) ([]airquality.Record, error) {
	return loadWithResilience(ctx, s.backoff, s.circuit, func(ctx context.Context) ([]airquality.Record, error) {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return ParseCSV(f)
	})
}

// ParseCSV reads records from r. Date, State and City columns are required;
// a missing pollutant column marks that pollutant missing on every row, and
// non-numeric, NaN or infinite cells mark just that value missing.
func ParseCSV(r io.Reader) ([]airquality.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, permanent(fmt.Errorf("csv: empty input"))
		}
		return nil, permanent(fmt.Errorf("csv: read header: %w", err))
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{airquality.ColumnDate, airquality.ColumnState, airquality.ColumnCity} {
		if _, ok := cols[required]; !ok {
			return nil, permanent(fmt.Errorf("csv: missing required column %q", required))
		}
	}

	cell := func(row []string, column string) string {
		i, ok := cols[column]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	level := func(row []string, p airquality.Pollutant) airquality.Level {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell(row, string(p))), 64)
		if err != nil {
			return airquality.Level{}
		}
		if lvl := airquality.Measured(v); lvl.Usable() {
			return lvl
		}
		return airquality.Level{}
	}

	var records []airquality.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}

		records = append(records, airquality.Record{
			Date:  cell(row, airquality.ColumnDate),
			State: cell(row, airquality.ColumnState),
			City:  cell(row, airquality.ColumnCity),
			O3:    level(row, airquality.PollutantO3),
			CO:    level(row, airquality.PollutantCO),
			SO2:   level(row, airquality.PollutantSO2),
			NO2:   level(row, airquality.PollutantNO2),
		})
	}

	return records, nil
}
