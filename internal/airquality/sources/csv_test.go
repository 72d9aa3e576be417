package sources

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/aqi-explorer/internal/airquality"
)

var fastBackoff = BackoffConfig{MaxRetries: 1, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}

const sampleCSV = `Date,Address,State,County,City,O3 Mean,O3 AQI,CO AQI,SO2 AQI,NO2 AQI
2000-01-01,1645 E ROOSEVELT,Arizona,Maricopa,Phoenix,0.019,37,25,13,46
2000-01-02,1645 E ROOSEVELT,Arizona,Maricopa,Phoenix,0.025,30,,4,34
2000-01-01,1237 S BEVERLY,Arizona,Pima,Tucson,0.02,NA,20,10,40
`

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	r := records[0]
	if r.Date != "2000-01-01" || r.State != "Arizona" || r.City != "Phoenix" {
		t.Fatalf("unexpected record %+v", r)
	}
	if r.O3 != airquality.Measured(37) || r.NO2 != airquality.Measured(46) {
		t.Fatalf("unexpected levels %+v", r)
	}
	if records[1].CO.Valid {
		t.Fatal("empty cell should be missing")
	}
	if records[2].O3.Valid {
		t.Fatal("non-numeric cell should be missing")
	}
}

func TestParseCSVNonFiniteCells(t *testing.T) {
	input := "Date,State,City,O3 AQI,CO AQI,SO2 AQI,NO2 AQI\n" +
		"2000-01-01,Arizona,Phoenix,NaN,Inf,+Inf,-Inf\n" +
		"2000-01-02,Arizona,Phoenix,10,1,2,3\n"
	records, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	r := records[0]
	if r.O3.Valid || r.CO.Valid || r.SO2.Valid || r.NO2.Valid {
		t.Fatalf("non-finite cells should be missing, got %+v", r)
	}

	series, err := airquality.AggregateSeries(airquality.NewDataset("test", records).Rows(), "Arizona", "Phoenix", airquality.PollutantO3)
	if err != nil {
		t.Fatalf("AggregateSeries: %v", err)
	}
	if len(series) != 1 || series[0].AverageValue != 10 {
		t.Fatalf("expected only the finite reading, got %+v", series)
	}
	if _, err := json.Marshal(series); err != nil {
		t.Fatalf("series should encode: %v", err)
	}
}

func TestParseCSVMissingPollutantColumn(t *testing.T) {
	records, err := ParseCSV(strings.NewReader("Date,State,City,O3 AQI\n2000-01-01,Arizona,Phoenix,37\n"))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if !records[0].O3.Valid || records[0].SO2.Valid {
		t.Fatalf("only O3 should be present, got %+v", records[0])
	}
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Date,City,O3 AQI\n2000-01-01,Phoenix,37\n"))
	if err == nil || !strings.Contains(err.Error(), `"State"`) {
		t.Fatalf("expected missing State column error, got %v", err)
	}
	if !isPermanent(err) {
		t.Fatal("missing column should not be retried")
	}

	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestCSVSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pollution.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	src := NewCSVSource(path, fastBackoff)
	if src.Name() != "csv:"+path {
		t.Fatalf("unexpected name %q", src.Name())
	}

	records, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"), fastBackoff)
	_, err := src.Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestCSVSourceHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("Date,State,City\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := NewCSVSource(path, fastBackoff).Load(context.Background())
	if !errors.Is(err, errNoRows) {
		t.Fatalf("expected errNoRows, got %v", err)
	}
}
