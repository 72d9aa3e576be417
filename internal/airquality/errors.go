package airquality

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySeries is returned when no points survive filtering.
	ErrEmptySeries = errors.New("no data for selection")

	// ErrNoSelection is returned when a required selection (state, city,
	// pollutant) is absent.
	ErrNoSelection = errors.New("no selection active")
)

// MalformedDateError reports a date string that is not Y-M-D.
type MalformedDateError struct {
	Raw    string
	Reason string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date %q: %s", e.Raw, e.Reason)
}

// MissingColumnError reports a pollutant value absent or non-numeric for a row.
type MissingColumnError struct {
	Column string
	Date   string
}

func (e *MissingColumnError) Error() string {
	if e.Date == "" {
		return fmt.Sprintf("missing column %q", e.Column)
	}
	return fmt.Sprintf("missing column %q for %s", e.Column, e.Date)
}
