package sources

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/lib/pq"
	"github.com/sony/gobreaker"

	"github.com/i474232898/aqi-explorer/internal/airquality"
)

// PostgresSource loads readings from a table shaped like
// (date, state, city, o3_aqi, co_aqi, so2_aqi, no2_aqi).
type PostgresSource struct {
	name    string
	dsn     string
	table   string
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker

	mu sync.Mutex
	db *sql.DB
}

// NewPostgresSource creates a source; the connection is opened on first Load.
func NewPostgresSource(dsn, table string, backoff BackoffConfig) *PostgresSource {
	return &PostgresSource{
		name:    "postgres:" + table,
		dsn:     dsn,
		table:   table,
		backoff: backoff,
		circuit: newBreaker("postgres"),
	}
}

func (s *PostgresSource) Name() string {
	return s.name
}

func (s *PostgresSource) connect(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open("postgres", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(1)

	s.db = db
	return db, nil
}

func (s *PostgresSource) query() string {
	return fmt.Sprintf(
		`SELECT date::text, state, city, o3_aqi, co_aqi, so2_aqi, no2_aqi FROM %s`,
		pq.QuoteIdentifier(s.table),
	)
}

func (s *PostgresSource) Load(ctx context.Context) ([]airquality.Record, error) {
	return loadWithResilience(ctx, s.backoff, s.circuit, func(ctx context.Context) ([]airquality.Record, error) {
		db, err := s.connect(ctx)
		if err != nil {
			return nil, err
		}

		rows, err := db.QueryContext(ctx, s.query())
		if err != nil {
			return nil, fmt.Errorf("failed to query readings: %w", err)
		}
		defer rows.Close()

		var records []airquality.Record
		for rows.Next() {
			var (
				rec               airquality.Record
				o3, co, so2, no2  sql.NullFloat64
				date, state, city sql.NullString
			)
			if err := rows.Scan(&date, &state, &city, &o3, &co, &so2, &no2); err != nil {
				return nil, fmt.Errorf("failed to scan reading: %w", err)
			}
			rec.Date = date.String
			rec.State = state.String
			rec.City = city.String
			rec.O3 = nullLevel(o3)
			rec.CO = nullLevel(co)
			rec.SO2 = nullLevel(so2)
			rec.NO2 = nullLevel(no2)
			records = append(records, rec)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read readings: %w", err)
		}

		return records, nil
	})
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func nullLevel(v sql.NullFloat64) airquality.Level {
	if lvl := airquality.Measured(v.Float64); v.Valid && lvl.Usable() {
		return lvl
	}
	return airquality.Level{}
}
