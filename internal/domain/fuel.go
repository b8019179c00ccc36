package domain

import (
	"errors"
	"fmt"
)

// ErrFuelExhausted is returned by Draw when the requested volume exceeds the
// fuel remaining in the tank.
var ErrFuelExhausted = errors.New("fuel exhausted")

// FuelLedger tracks the combustion variant's tank level. It is refilled to
// capacity at the start of each simulated day; no degradation concept
// applies to fuel tanks.
type FuelLedger struct {
	CapacityL  float64
	RemainingL float64
}

// NewFuelLedger returns a full tank.
func NewFuelLedger(capacityL float64) (*FuelLedger, error) {
	if capacityL <= 0 {
		return nil, fmt.Errorf("new fuel ledger: capacity_l must be positive, got %v", capacityL)
	}
	return &FuelLedger{CapacityL: capacityL, RemainingL: capacityL}, nil
}

// Draw removes litres from the tank. It returns ErrFuelExhausted without
// mutating state when the tank cannot cover the draw.
func (f *FuelLedger) Draw(litres float64) error {
	if litres < 0 {
		return fmt.Errorf("fuel draw: litres must be non-negative, got %v", litres)
	}
	if f.RemainingL-litres < 0 {
		return ErrFuelExhausted
	}
	f.RemainingL -= litres
	return nil
}

// Refill restores the tank to capacity (overnight refuel assumption).
func (f *FuelLedger) Refill() { f.RemainingL = f.CapacityL }
