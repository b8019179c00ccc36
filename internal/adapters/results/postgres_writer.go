package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bus-simulation-service/internal/domain"
)

// Postgres implementation of the ResultsWriter port, used as an optional
// sink alongside the CSV output so runs can be queried across executions.
type PostgresWriter struct {
	DB *sql.DB
}

func NewPostgresWriter(db *sql.DB) *PostgresWriter {
	return &PostgresWriter{DB: db}
}

// Initialize the results schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createDayRecordsQuery := `
	CREATE TABLE IF NOT EXISTS day_records (
		run_name TEXT NOT NULL,
		variant TEXT NOT NULL,
		day_index INTEGER NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		consumed DOUBLE PRECISION NOT NULL,
		emissions_kg_co2 DOUBLE PRECISION NOT NULL,
		soc_end_of_day DOUBLE PRECISION,
		battery_degradation_pct DOUBLE PRECISION,
		completed BOOLEAN NOT NULL,
		PRIMARY KEY (run_name, day_index)
	);
	`

	if _, err := db.Exec(createDayRecordsQuery); err != nil {
		return fmt.Errorf("init schema: create day_records table: %w", err)
	}
	return nil
}

// Write the per-day table inside a single transaction, replacing any prior
// rows for the same run name so a rerun overwrites its own results.
func (w *PostgresWriter) WriteTable(ctx context.Context, table domain.ResultsTable) error {
	if w.DB == nil {
		return errors.New("write results: DB is nil")
	}

	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write results: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM day_records WHERE run_name = $1;`, table.Name); err != nil {
		return fmt.Errorf("write results: clear prior run %q: %w", table.Name, err)
	}

	insertQuery := `
	INSERT INTO day_records (
		run_name, variant, day_index, distance_km, consumed,
		emissions_kg_co2, soc_end_of_day, battery_degradation_pct, completed
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	for _, rec := range table.Days {
		_, err := tx.ExecContext(ctx, insertQuery,
			table.Name,
			string(table.Variant),
			rec.DayIndex,
			rec.DistanceKm,
			rec.Consumed,
			rec.EmissionsKgCO2,
			nullableFloat(rec.SoCEndOfDay),
			nullableFloat(rec.DegradationPct),
			rec.Completed,
		)
		if err != nil {
			return fmt.Errorf("write results: insert day %d: %w", rec.DayIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write results: commit: %w", err)
	}
	return nil
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
