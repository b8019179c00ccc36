package ports

import (
	"context"

	"bus-simulation-service/internal/domain"
)

// Port: a boundary for persisting the per-day results table. The core only
// supplies the table and its variant tag; naming and storage details belong
// to the adapter.
type ResultsWriter interface {
	WriteTable(ctx context.Context, table domain.ResultsTable) error
}
