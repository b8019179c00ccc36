package services

import (
	"errors"
	"fmt"

	"bus-simulation-service/internal/domain"
)

// DepletionPolicy decides what happens when the battery or tank runs out
// mid-route.
type DepletionPolicy string

const (
	// DepletionPartialDay halts the day at the depleted segment, records an
	// incomplete DayRecord, and lets the run continue.
	DepletionPartialDay DepletionPolicy = "partial"
	// DepletionAbortRun fails the whole run at the first depletion.
	DepletionAbortRun DepletionPolicy = "abort"
)

// DaySimulator traverses the route's segments in order for one day,
// accumulating distance, consumption, and emissions, and emits one
// DayRecord. Output depends only on the route, the profile, and the
// battery/ledger value at day start; there is no randomness.
type DaySimulator struct {
	Route    domain.Route
	Consumer Consumer
	Policy   DepletionPolicy
}

// SimulateDay runs one day of traversal. Under the partial-day policy a
// depletion ends the day early with Completed=false; under the abort policy
// it returns an error carrying day and segment indices.
func (s *DaySimulator) SimulateDay(dayIndex int) (domain.DayRecord, error) {
	rec := domain.DayRecord{
		DayIndex:          dayIndex,
		Completed:         true,
		DepletedAtSegment: -1,
	}

	var distanceM float64
	for i, seg := range s.Route.Segments {
		res, err := s.Consumer.Consume(seg)
		switch {
		case errors.Is(err, domain.ErrBatteryDepleted), errors.Is(err, domain.ErrFuelExhausted):
			if s.Policy == DepletionAbortRun {
				return domain.DayRecord{}, fmt.Errorf("day %d: segment %d: %w", dayIndex, i, err)
			}
			rec.Completed = false
			rec.DepletedAtSegment = i
			rec.DistanceKm = distanceM / metersPerKm
			return rec, nil
		case err != nil:
			return domain.DayRecord{}, fmt.Errorf("day %d: segment %d: %w", dayIndex, i, err)
		}

		distanceM += seg.DistanceM
		// Exactly one of the two is non-zero, per variant.
		rec.Consumed += res.EnergyKWh + res.FuelL
		rec.EmissionsKgCO2 += res.EmissionsKgCO2
	}

	rec.DistanceKm = distanceM / metersPerKm
	return rec, nil
}
