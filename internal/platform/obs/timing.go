package obs

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// WithRunID tags the context with the run identifier picked up by Time.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// Time reports the duration of a named operation when the returned func is
// deferred. Pass the address of the caller's named error to include failures.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	runID, _ := ctx.Value(RunIDKey).(string)

	return func(errp *error) {
		fields := log.Fields{
			"run_id": runID,
			"op":     name,
			"dur_ms": time.Since(start).Milliseconds(),
		}
		if errp != nil && *errp != nil {
			log.WithFields(fields).WithError(*errp).Error("operation failed")
			return
		}
		log.WithFields(fields).Info("operation complete")
	}
}
