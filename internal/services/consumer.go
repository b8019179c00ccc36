package services

import (
	"fmt"

	"bus-simulation-service/internal/domain"
)

// ConsumptionResult is what traversing one segment cost the vehicle.
// Exactly one of EnergyKWh/FuelL is non-zero, matching the variant.
type ConsumptionResult struct {
	EnergyKWh      float64
	FuelL          float64
	EmissionsKgCO2 float64
}

// Consumer applies one segment's demand to the vehicle's energy store.
// The two variants share almost no behavior beyond this segment-loop shape,
// so the simulator depends only on this interface.
type Consumer interface {
	Consume(seg domain.Segment) (ConsumptionResult, error)
}

// ElectricConsumer drives the electric variant: segment energy is computed
// by the model and discharged from the shared battery state.
type ElectricConsumer struct {
	Model   EnergyModel
	Battery *domain.BatteryState
}

func (c *ElectricConsumer) Consume(seg domain.Segment) (ConsumptionResult, error) {
	kwh, err := c.Model.SegmentEnergyKWh(seg)
	if err != nil {
		return ConsumptionResult{}, fmt.Errorf("electric consume: %w", err)
	}
	if err := c.Battery.Discharge(kwh); err != nil {
		// ErrBatteryDepleted passes through unwrapped context-free so the
		// simulator can attach day and segment indices.
		return ConsumptionResult{}, err
	}
	return ConsumptionResult{EnergyKWh: kwh}, nil
}

// CombustionConsumer drives the combustion variant: fuel is drawn from the
// ledger and converted to CO2 by the emissions model.
type CombustionConsumer struct {
	Model     EnergyModel
	Ledger    *domain.FuelLedger
	Emissions EmissionsModel
}

func (c *CombustionConsumer) Consume(seg domain.Segment) (ConsumptionResult, error) {
	fuel, err := c.Model.SegmentFuelL(seg)
	if err != nil {
		return ConsumptionResult{}, fmt.Errorf("combustion consume: %w", err)
	}
	if err := c.Ledger.Draw(fuel); err != nil {
		return ConsumptionResult{}, err
	}
	return ConsumptionResult{
		FuelL:          fuel,
		EmissionsKgCO2: c.Emissions.CO2Kg(fuel),
	}, nil
}
