package services

import "bus-simulation-service/internal/domain"

// Aggregate converts the ordered day records into the run-level summary:
// totals and averages across days plus the per-day table. Pure
// transformation; inputs are not mutated.
func Aggregate(table domain.ResultsTable, profile domain.VehicleProfile, emissions EmissionsModel, costs CostModel) domain.RunSummary {
	summary := domain.RunSummary{
		Name:    table.Name,
		Variant: table.Variant,
		Days:    len(table.Days),
		Table:   table,
	}

	for _, rec := range table.Days {
		summary.TotalDistanceKm += rec.DistanceKm
		summary.TotalConsumed += rec.Consumed
		summary.TotalEmissionsKgCO2 += rec.EmissionsKgCO2
		if !rec.Completed {
			summary.IncompleteDays++
		}
	}
	if summary.Days > 0 {
		summary.AvgConsumedPerDay = summary.TotalConsumed / float64(summary.Days)
		last := table.Days[summary.Days-1]
		summary.FinalSoC = last.SoCEndOfDay
		summary.FinalDegradationPct = last.DegradationPct
	}

	if table.Variant == domain.VariantCombustion {
		summary.Pollutants = emissions.Pollutants(summary.TotalConsumed)
	}

	summary.VehicleCost = costs.VehicleCost(profile)
	summary.ConsumptionCost = costs.ConsumptionCost(table.Variant, summary.TotalConsumed)

	return summary
}
