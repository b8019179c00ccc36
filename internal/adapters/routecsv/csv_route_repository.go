package routecsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bus-simulation-service/internal/domain"
)

var expectedHeader = []string{"distance_m", "elevation_delta_m", "speed_limit_kmh", "is_stop"}

// CSV-backed implementation of the RouteRepository port. One row per
// segment, traversal order preserved.
type CSVRouteRepository struct {
	Path string
}

func NewCSVRouteRepository(path string) *CSVRouteRepository {
	return &CSVRouteRepository{Path: path}
}

// Load the route file, validating the header and every row. Malformed rows
// fail ingestion with their row number.
func (r *CSVRouteRepository) LoadRoute(ctx context.Context, name string) (domain.Route, error) {
	if err := ctx.Err(); err != nil {
		return domain.Route{}, fmt.Errorf("load route: %w", err)
	}

	f, err := os.Open(r.Path)
	if err != nil {
		return domain.Route{}, fmt.Errorf("load route: open %q: %w", r.Path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return domain.Route{}, fmt.Errorf("load route: parse %q: %w", r.Path, err)
	}
	if len(rows) < 2 {
		return domain.Route{}, fmt.Errorf("load route: %q has no segment rows", r.Path)
	}

	if err := checkHeader(rows[0]); err != nil {
		return domain.Route{}, fmt.Errorf("load route: %q: %w", r.Path, err)
	}

	segments := make([]domain.Segment, 0, len(rows)-1)
	for i, row := range rows[1:] {
		seg, err := parseSegment(row)
		if err != nil {
			return domain.Route{}, fmt.Errorf("load route: %q row %d: %w", r.Path, i+2, err)
		}
		segments = append(segments, seg)
	}

	route, err := domain.NewRoute(name, segments)
	if err != nil {
		return domain.Route{}, fmt.Errorf("load route: %w", err)
	}
	return route, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("header has %d columns, want %d (%s)", len(header), len(expectedHeader), strings.Join(expectedHeader, ","))
	}
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(col)) != expectedHeader[i] {
			return fmt.Errorf("header column %d is %q, want %q", i+1, col, expectedHeader[i])
		}
	}
	return nil
}

func parseSegment(row []string) (domain.Segment, error) {
	if len(row) != len(expectedHeader) {
		return domain.Segment{}, fmt.Errorf("row has %d columns, want %d", len(row), len(expectedHeader))
	}

	distance, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("distance_m %q: %w", row[0], err)
	}
	elevation, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("elevation_delta_m %q: %w", row[1], err)
	}
	speed, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("speed_limit_kmh %q: %w", row[2], err)
	}
	isStop, err := parseBool(strings.TrimSpace(row[3]))
	if err != nil {
		return domain.Segment{}, fmt.Errorf("is_stop %q: %w", row[3], err)
	}

	return domain.NewSegment(distance, elevation, speed, isStop)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("must be true/false/1/0")
	}
}
