package airquality

import (
	"fmt"
	"log"
	"slices"
	"strconv"
)

// Dataset is an in-memory, read-only table of readings. It is fully built
// by NewDataset before any aggregator sees it.
type Dataset struct {
	source  string
	rows    []Reading
	skipped int
}

// NewDataset validates records and freezes them into a Dataset. Rows with a
// malformed date are skipped and counted rather than failing the load.
func NewDataset(source string, records []Record) *Dataset {
	ds := &Dataset{
		source: source,
		rows:   make([]Reading, 0, len(records)),
	}

	for _, rec := range records {
		key, err := ParseDateKey(rec.Date)
		if err != nil {
			ds.skipped++
			continue
		}
		ds.rows = append(ds.rows, Reading{
			State: rec.State,
			City:  rec.City,
			Date:  key,
			O3:    rec.O3,
			CO:    rec.CO,
			SO2:   rec.SO2,
			NO2:   rec.NO2,
		})
	}

	if ds.skipped > 0 {
		log.Printf("INFO: dataset %s: skipped %d rows with malformed dates", source, ds.skipped)
	}

	return ds
}

// Source names where the rows came from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of usable rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Skipped returns the number of rows dropped at load time.
func (d *Dataset) Skipped() int { return d.skipped }

// Rows returns the frozen readings. Callers must not modify the slice.
func (d *Dataset) Rows() []Reading { return d.rows }

// Row returns the reading at index i.
func (d *Dataset) Row(i int) (Reading, error) {
	if i < 0 || i >= len(d.rows) {
		return Reading{}, fmt.Errorf("row %d out of range [0,%d)", i, len(d.rows))
	}
	return d.rows[i], nil
}

// String returns a column of row i as text.
func (d *Dataset) String(i int, column string) (string, error) {
	r, err := d.Row(i)
	if err != nil {
		return "", err
	}

	switch column {
	case ColumnDate:
		return r.Date.Raw, nil
	case ColumnState:
		return r.State, nil
	case ColumnCity:
		return r.City, nil
	}

	p, err := ParsePollutant(column)
	if err != nil {
		return "", &MissingColumnError{Column: column}
	}
	v, err := r.Value(p)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// Num returns a pollutant column of row i.
func (d *Dataset) Num(i int, column string) (float64, error) {
	r, err := d.Row(i)
	if err != nil {
		return 0, err
	}
	p, err := ParsePollutant(column)
	if err != nil {
		return 0, &MissingColumnError{Column: column, Date: r.Date.Raw}
	}
	return r.Value(p)
}

// UniqueStates returns every state once, sorted.
func (d *Dataset) UniqueStates() []string {
	return uniqueSorted(d.rows, func(r Reading) (string, bool) {
		return r.State, true
	})
}

// UniqueCities returns every city once, sorted, across all states.
func (d *Dataset) UniqueCities() []string {
	return uniqueSorted(d.rows, func(r Reading) (string, bool) {
		return r.City, true
	})
}

// CitiesInState returns the cities of state, sorted. An unknown state yields
// an empty slice.
func (d *Dataset) CitiesInState(state string) []string {
	return uniqueSorted(d.rows, func(r Reading) (string, bool) {
		return r.City, r.State == state
	})
}

func uniqueSorted(rows []Reading, pick func(Reading) (string, bool)) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rows {
		v, ok := pick(r)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
