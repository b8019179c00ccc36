package services

import "bus-simulation-service/internal/domain"

// EmissionFactors are pollutant masses emitted per litre of fuel burned.
// The electric variant never invokes the emissions model.
type EmissionFactors struct {
	CO2KgPerL float64
	NOxGPerL  float64
	COGPerL   float64
	HCGPerL   float64
	PMGPerL   float64
}

// EuroV returns per-litre factors for a Euro V diesel bus engine.
func EuroV() EmissionFactors {
	return EmissionFactors{
		CO2KgPerL: 2.64,
		NOxGPerL:  7.6,
		COGPerL:   5.7,
		HCGPerL:   1.7,
		PMGPerL:   0.08,
	}
}

// EuroVI returns per-litre factors for a Euro VI diesel bus engine.
func EuroVI() EmissionFactors {
	return EmissionFactors{
		CO2KgPerL: 2.64,
		NOxGPerL:  1.5,
		COGPerL:   5.7,
		HCGPerL:   0.5,
		PMGPerL:   0.04,
	}
}

// EmissionsModel converts fuel consumption into emitted pollutant masses.
// Pure transformation; it holds no state.
type EmissionsModel struct {
	Factors EmissionFactors
}

// CO2Kg returns the CO2 mass in kg emitted by burning fuelL litres.
func (e EmissionsModel) CO2Kg(fuelL float64) float64 {
	return fuelL * e.Factors.CO2KgPerL
}

// Pollutants returns the non-CO2 pollutant masses emitted by burning fuelL
// litres.
func (e EmissionsModel) Pollutants(fuelL float64) domain.PollutantTotals {
	return domain.PollutantTotals{
		NOxG: fuelL * e.Factors.NOxGPerL,
		COG:  fuelL * e.Factors.COGPerL,
		HCG:  fuelL * e.Factors.HCGPerL,
		PMG:  fuelL * e.Factors.PMGPerL,
	}
}
