package services

import (
	"fmt"
	"math"

	"bus-simulation-service/internal/domain"
)

const (
	gravity      = 9.81  // m/s²
	airDensity   = 1.225 // kg/m³ at sea level
	joulesPerKWh = 3.6e6
	metersPerKm  = 1000.0
)

// EnergyModel computes the per-segment traction demand for one vehicle
// profile. It is a pure function of the segment and the profile; all state
// lives in BatteryState/FuelLedger.
type EnergyModel struct {
	Profile domain.VehicleProfile

	// RegenEfficiency is the fraction of descent potential energy recovered
	// by regenerative braking, in [0,1]. Zero disables recovery.
	RegenEfficiency float64

	// GradientLoadFactor scales combustion fuel on climbing segments:
	// fuel *= 1 + factor * grade. Zero keeps the flat per-km rate.
	GradientLoadFactor float64
}

// SegmentEnergyKWh returns the battery energy required to traverse seg with
// the electric variant. Energy is never negative: braking energy on descents
// is discarded except for the configured regenerative fraction.
func (m EnergyModel) SegmentEnergyKWh(seg domain.Segment) (float64, error) {
	if err := m.checkSegment(seg); err != nil {
		return 0, err
	}
	if m.Profile.Electric == nil {
		return 0, fmt.Errorf("energy model: profile has no electric parameters")
	}

	raw := m.tractiveJoules(seg)
	if descent := -seg.ElevationDeltaM; descent > 0 && m.RegenEfficiency > 0 {
		raw -= m.RegenEfficiency * m.Profile.TotalMassKg() * gravity * descent
		if raw < 0 {
			raw = 0
		}
	}
	return raw / (joulesPerKWh * m.Profile.Electric.MotorEfficiency), nil
}

// SegmentFuelL returns the fuel volume the combustion variant burns over
// seg. The base model is a flat per-km rate; GradientLoadFactor optionally
// penalizes climbs.
func (m EnergyModel) SegmentFuelL(seg domain.Segment) (float64, error) {
	if err := m.checkSegment(seg); err != nil {
		return 0, err
	}
	if m.Profile.Combustion == nil {
		return 0, fmt.Errorf("energy model: profile has no combustion parameters")
	}

	fuel := m.Profile.Combustion.FuelEfficiencyLPerKm * seg.DistanceM / metersPerKm
	if m.GradientLoadFactor > 0 && seg.DistanceM > 0 && seg.ElevationDeltaM > 0 {
		grade := seg.ElevationDeltaM / seg.DistanceM
		fuel *= 1 + m.GradientLoadFactor*grade
	}
	return fuel, nil
}

// tractiveJoules sums the resistive terms over the segment: grade climb
// (clamped to non-negative), rolling resistance, aerodynamic drag at the
// cruising speed proxy, and one stop-and-go kinetic cycle when the segment
// ends at a stop.
func (m EnergyModel) tractiveJoules(seg domain.Segment) float64 {
	mass := m.Profile.TotalMassKg()
	v := seg.SpeedMS()

	potential := math.Max(0, mass*gravity*seg.ElevationDeltaM)
	rolling := m.Profile.RollingResistanceCoefficient * mass * gravity * seg.DistanceM
	drag := 0.5 * airDensity * m.Profile.DragCoefficient * m.Profile.FrontalAreaM2 * v * v * seg.DistanceM

	var kinetic float64
	if seg.IsStop {
		kinetic = 0.5 * mass * v * v
	}

	return potential + rolling + drag + kinetic
}

func (m EnergyModel) checkSegment(seg domain.Segment) error {
	if seg.DistanceM < 0 {
		return fmt.Errorf("energy model: distance_m must be non-negative, got %v", seg.DistanceM)
	}
	if seg.SpeedLimitKmh <= 0 {
		return fmt.Errorf("energy model: speed_limit_kmh must be positive, got %v", seg.SpeedLimitKmh)
	}
	return nil
}
