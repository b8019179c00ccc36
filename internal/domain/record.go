package domain

// DayRecord is the aggregated outcome of simulating one full day of route
// traversal. It is immutable once written and owned by the orchestrator
// until handed to the aggregator.
type DayRecord struct {
	DayIndex       int
	DistanceKm     float64
	Consumed       float64 // kWh for electric, litres for combustion
	EmissionsKgCO2 float64 // always 0 for electric
	SoCEndOfDay    *float64
	DegradationPct *float64
	Completed      bool
	// DepletedAtSegment is the index of the segment where the battery or
	// tank ran out; -1 when the day completed.
	DepletedAtSegment int
}

// ResultsTable is the ordered per-day output of a run, with the variant tag
// the persistence adapter uses to name the output file.
type ResultsTable struct {
	Name    string
	Variant Variant
	Days    []DayRecord
}

// PollutantTotals are run-level non-CO2 emission masses in grams.
// All zero for electric runs.
type PollutantTotals struct {
	NOxG float64
	COG  float64
	HCG  float64
	PMG  float64
}

// RunSummary is the run-level result returned to the caller: totals and
// averages across days plus the full per-day table.
type RunSummary struct {
	Name                string
	Variant             Variant
	Days                int
	TotalDistanceKm     float64
	TotalConsumed       float64 // kWh or litres, per variant
	AvgConsumedPerDay   float64
	TotalEmissionsKgCO2 float64
	Pollutants          PollutantTotals
	FinalSoC            *float64
	FinalDegradationPct *float64
	IncompleteDays      int
	VehicleCost         float64
	ConsumptionCost     float64
	Table               ResultsTable
}
