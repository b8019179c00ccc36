package services

import (
	"context"
	"fmt"

	"bus-simulation-service/internal/domain"
)

// Orchestrator drives the multi-day simulation. Days are strictly
// sequential: day k+1's starting battery wear and charge depend on day k's
// end state, threaded through the single BatteryState/FuelLedger the
// orchestrator owns.
type Orchestrator struct {
	Route   domain.Route
	Profile domain.VehicleProfile

	Policy             DepletionPolicy
	RegenEfficiency    float64
	GradientLoadFactor float64

	// Curve is the pluggable degradation model applied after each overnight
	// recharge. Nil means no degradation is modeled.
	Curve domain.DegradationCurve

	// PollutantFactors feed the emissions model for combustion runs. The
	// CO2 factor always comes from the vehicle profile.
	PollutantFactors EmissionFactors

	// Costs is optional; a zero value yields zero-cost summaries.
	Costs CostModel
}

// Run simulates the given number of sequential days and returns the
// aggregated summary.
// Day 0 starts from a fully charged, undegraded battery (or a full tank);
// every later day starts from the previous day's end state after the
// overnight recharge/refuel policy.
func (o *Orchestrator) Run(ctx context.Context, days int) (domain.RunSummary, error) {
	if days < 1 {
		return domain.RunSummary{}, fmt.Errorf("orchestrator: days must be >= 1, got %d", days)
	}
	if err := o.Profile.Validate(); err != nil {
		return domain.RunSummary{}, fmt.Errorf("orchestrator: %w", err)
	}
	if len(o.Route.Segments) == 0 {
		return domain.RunSummary{}, fmt.Errorf("orchestrator: route %q has no segments", o.Route.Name)
	}

	model := EnergyModel{
		Profile:            o.Profile,
		RegenEfficiency:    o.RegenEfficiency,
		GradientLoadFactor: o.GradientLoadFactor,
	}

	var (
		battery   *domain.BatteryState
		ledger    *domain.FuelLedger
		consumer  Consumer
		emissions EmissionsModel
		err       error
	)
	switch o.Profile.Variant {
	case domain.VariantElectric:
		battery, err = domain.NewBatteryState(o.Profile.Electric.BatteryCapacityKWh)
		if err != nil {
			return domain.RunSummary{}, fmt.Errorf("orchestrator: %w", err)
		}
		consumer = &ElectricConsumer{Model: model, Battery: battery}
	case domain.VariantCombustion:
		ledger, err = domain.NewFuelLedger(o.Profile.Combustion.FuelTankCapacityL)
		if err != nil {
			return domain.RunSummary{}, fmt.Errorf("orchestrator: %w", err)
		}
		factors := o.PollutantFactors
		factors.CO2KgPerL = o.Profile.Combustion.CarbonFactorKgPerL
		emissions = EmissionsModel{Factors: factors}
		consumer = &CombustionConsumer{Model: model, Ledger: ledger, Emissions: emissions}
	default:
		return domain.RunSummary{}, fmt.Errorf("orchestrator: unrecognized variant %q", o.Profile.Variant)
	}

	sim := &DaySimulator{Route: o.Route, Consumer: consumer, Policy: o.Policy}

	records := make([]domain.DayRecord, 0, days)
	for day := 0; day < days; day++ {
		if err := ctx.Err(); err != nil {
			return domain.RunSummary{}, fmt.Errorf("orchestrator: day %d: %w", day, err)
		}

		// Overnight policy, applied from the previous day's end state.
		// The battery recharges regardless of whether the prior day
		// completed.
		if day > 0 {
			if battery != nil {
				battery.RechargeFull()
				battery.ApplyDegradation(o.Curve)
			}
			if ledger != nil {
				ledger.Refill()
			}
		}

		rec, err := sim.SimulateDay(day)
		if err != nil {
			return domain.RunSummary{}, fmt.Errorf("orchestrator: %w", err)
		}

		if battery != nil {
			soc := battery.SoC
			deg := battery.Degradation * 100
			rec.SoCEndOfDay = &soc
			rec.DegradationPct = &deg
		}
		records = append(records, rec)
	}

	table := domain.ResultsTable{
		Name:    o.Route.Name,
		Variant: o.Profile.Variant,
		Days:    records,
	}
	return Aggregate(table, o.Profile, emissions, o.Costs), nil
}
