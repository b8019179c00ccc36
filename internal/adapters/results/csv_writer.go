package results

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"bus-simulation-service/internal/domain"
)

var csvHeader = []string{
	"day_index",
	"distance_km",
	"energy_kwh_or_fuel_l",
	"emissions_kg_co2",
	"soc_end_of_day",
	"battery_degradation_pct",
	"completed",
}

// CSV implementation of the ResultsWriter port. The output file is named by
// the run's variant under the configured directory.
type CSVWriter struct {
	Dir string
}

func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{Dir: dir}
}

// FileName returns the variant-tagged output file name.
func FileName(variant domain.Variant) string {
	return string(variant) + "_simulation_results.csv"
}

// Write the per-day table as one CSV row per simulated day. Battery columns
// are left empty for combustion runs.
func (w *CSVWriter) WriteTable(ctx context.Context, table domain.ResultsTable) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("write results: create dir %q: %w", w.Dir, err)
	}

	path := filepath.Join(w.Dir, FileName(table.Variant))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write results: create %q: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write results: header: %w", err)
	}

	for _, rec := range table.Days {
		row := []string{
			strconv.Itoa(rec.DayIndex),
			formatFloat(rec.DistanceKm),
			formatFloat(rec.Consumed),
			formatFloat(rec.EmissionsKgCO2),
			formatOptional(rec.SoCEndOfDay),
			formatOptional(rec.DegradationPct),
			strconv.FormatBool(rec.Completed),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write results: day %d: %w", rec.DayIndex, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("write results: flush %q: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
