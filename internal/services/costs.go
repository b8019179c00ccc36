package services

import (
	"math"

	"bus-simulation-service/internal/domain"
)

// CostModel prices a run for fleet comparisons. All fields are optional;
// the zero value produces zero costs.
type CostModel struct {
	EnergyCostPerKWh  float64 // electricity, €/kWh
	FuelCostPerL      float64 // diesel, €/L
	BaseVehicleCost   float64 // chassis cost, €
	BatteryCostPerKWh float64 // installed battery capacity, €/kWh
}

// VehicleCost returns the acquisition cost: base cost plus, for the
// electric variant, the battery priced by installed capacity.
func (c CostModel) VehicleCost(profile domain.VehicleProfile) float64 {
	cost := c.BaseVehicleCost
	if profile.Variant == domain.VariantElectric && profile.Electric != nil {
		cost += profile.Electric.BatteryCapacityKWh * c.BatteryCostPerKWh
	}
	return round2(cost)
}

// ConsumptionCost prices the run's total consumption: kWh for electric,
// litres for combustion.
func (c CostModel) ConsumptionCost(variant domain.Variant, totalConsumed float64) float64 {
	switch variant {
	case domain.VariantElectric:
		return round2(totalConsumed * c.EnergyCostPerKWh)
	case domain.VariantCombustion:
		return round2(totalConsumed * c.FuelCostPerL)
	default:
		return 0
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
