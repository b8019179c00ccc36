package domain

import (
	"errors"
	"fmt"
)

// ErrBatteryDepleted is returned by Discharge when the requested draw would
// push the state of charge below zero. Callers decide whether that ends the
// day or the run.
var ErrBatteryDepleted = errors.New("battery depleted")

// DegradationCurve returns the capacity fade increment to apply after an
// overnight recharge, as a fraction of the installed capacity. The exact
// curve is a tunable model parameter, not a structural requirement.
type DegradationCurve func(cycleCount int, throughputKWh float64) float64

// CycleFade spreads the allowed health loss uniformly over maxCycles, the
// fixed per-cycle fade of the reference battery model. minStateOfHealth is
// the fraction of capacity still usable at end of life, in (0,1].
func CycleFade(maxCycles int, minStateOfHealth float64) DegradationCurve {
	perCycle := (1 - minStateOfHealth) / float64(maxCycles)
	return func(cycleCount int, throughputKWh float64) float64 {
		return perCycle
	}
}

// ThroughputFade scales fade with the energy cycled through the battery:
// fadePerFullCycle is applied once per full equivalent cycle (capacityKWh
// of throughput).
func ThroughputFade(fadePerFullCycle, capacityKWh float64) DegradationCurve {
	var applied float64
	return func(cycleCount int, throughputKWh float64) float64 {
		due := throughputKWh / capacityKWh * fadePerFullCycle
		delta := due - applied
		if delta < 0 {
			delta = 0
		}
		applied = due
		return delta
	}
}

// BatteryState is the mutable charge and wear state of the electric
// variant. It is created once per run, mutated only by per-segment
// discharge and the overnight recharge policy, and persists across all
// simulated days.
type BatteryState struct {
	CapacityKWh   float64 // installed capacity, fixed for the run
	SoC           float64 // state of charge in [0,1]
	CycleCount    int
	Degradation   float64 // cumulative capacity fade in [0,1]
	ThroughputKWh float64 // energy drawn over the battery's lifetime
}

// NewBatteryState returns a fully charged, undegraded battery.
func NewBatteryState(capacityKWh float64) (*BatteryState, error) {
	if capacityKWh <= 0 {
		return nil, fmt.Errorf("new battery state: capacity_kwh must be positive, got %v", capacityKWh)
	}
	return &BatteryState{CapacityKWh: capacityKWh, SoC: 1.0}, nil
}

// EffectiveCapacityKWh is the installed capacity reduced by cumulative fade.
func (b *BatteryState) EffectiveCapacityKWh() float64 {
	return b.CapacityKWh * (1 - b.Degradation)
}

// Discharge draws energyKWh from the battery. It returns ErrBatteryDepleted
// without mutating state when the draw would take the state of charge below
// zero.
func (b *BatteryState) Discharge(energyKWh float64) error {
	if energyKWh < 0 {
		return fmt.Errorf("battery discharge: energy_kwh must be non-negative, got %v", energyKWh)
	}
	effective := b.EffectiveCapacityKWh()
	if effective <= 0 {
		return ErrBatteryDepleted
	}
	delta := energyKWh / effective
	if b.SoC-delta < 0 {
		return ErrBatteryDepleted
	}
	b.SoC -= delta
	b.ThroughputKWh += energyKWh
	return nil
}

// RechargeFull applies the full-overnight-charge assumption: state of
// charge returns to 1.0 and the completed cycle count increments.
func (b *BatteryState) RechargeFull() {
	b.SoC = 1.0
	b.CycleCount++
}

// ApplyDegradation advances cumulative fade by the curve's increment.
// Fade never decreases and never exceeds 1.
func (b *BatteryState) ApplyDegradation(curve DegradationCurve) {
	if curve == nil {
		return
	}
	delta := curve(b.CycleCount, b.ThroughputKWh)
	if delta < 0 {
		return
	}
	b.Degradation += delta
	if b.Degradation > 1 {
		b.Degradation = 1
	}
}
