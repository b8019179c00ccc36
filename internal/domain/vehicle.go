package domain

import "fmt"

// Variant selects one of the two mutually exclusive vehicle configurations.
type Variant string

const (
	VariantElectric   Variant = "electric"
	VariantCombustion Variant = "combustion"
)

const (
	// Average passenger mass used for the load-adjusted total mass.
	passengerMassKg = 70.0
	// Installed battery pack mass per kWh of capacity.
	batteryPackKgPerKWh = 6.0
)

// ElectricSpec holds the battery and drivetrain parameters of the electric variant.
type ElectricSpec struct {
	BatteryCapacityKWh float64
	MotorEfficiency    float64
}

// CombustionSpec holds the fuel-system parameters of the combustion variant.
type CombustionSpec struct {
	FuelTankCapacityL    float64
	FuelEfficiencyLPerKm float64
	CarbonFactorKgPerL   float64
}

// VehicleProfile is the static physical and operational description of
// one bus variant. Exactly one of Electric/Combustion is set, matching
// Variant.
type VehicleProfile struct {
	Variant                      Variant
	MassKg                       float64
	DragCoefficient              float64
	FrontalAreaM2                float64
	RollingResistanceCoefficient float64
	AveragePassengers            int
	Electric                     *ElectricSpec
	Combustion                   *CombustionSpec
}

// Validate checks every profile parameter against its physical bounds.
// The simulation refuses to start on an invalid profile.
func (p VehicleProfile) Validate() error {
	if p.MassKg <= 0 {
		return fmt.Errorf("vehicle profile: mass_kg must be positive, got %v", p.MassKg)
	}
	if p.DragCoefficient < 0 {
		return fmt.Errorf("vehicle profile: drag_coefficient must be non-negative, got %v", p.DragCoefficient)
	}
	if p.FrontalAreaM2 <= 0 {
		return fmt.Errorf("vehicle profile: frontal_area_m2 must be positive, got %v", p.FrontalAreaM2)
	}
	if p.RollingResistanceCoefficient < 0 {
		return fmt.Errorf("vehicle profile: rolling_resistance_coefficient must be non-negative, got %v", p.RollingResistanceCoefficient)
	}
	if p.AveragePassengers < 0 {
		return fmt.Errorf("vehicle profile: average_passengers must be non-negative, got %d", p.AveragePassengers)
	}

	switch p.Variant {
	case VariantElectric:
		if p.Electric == nil {
			return fmt.Errorf("vehicle profile: variant is %q but electric parameters are missing", p.Variant)
		}
		if p.Electric.BatteryCapacityKWh <= 0 {
			return fmt.Errorf("vehicle profile: battery_capacity_kwh must be positive, got %v", p.Electric.BatteryCapacityKWh)
		}
		if p.Electric.MotorEfficiency <= 0 || p.Electric.MotorEfficiency > 1 {
			return fmt.Errorf("vehicle profile: motor_efficiency must be in (0,1], got %v", p.Electric.MotorEfficiency)
		}
	case VariantCombustion:
		if p.Combustion == nil {
			return fmt.Errorf("vehicle profile: variant is %q but combustion parameters are missing", p.Variant)
		}
		if p.Combustion.FuelTankCapacityL <= 0 {
			return fmt.Errorf("vehicle profile: fuel_tank_capacity_l must be positive, got %v", p.Combustion.FuelTankCapacityL)
		}
		if p.Combustion.FuelEfficiencyLPerKm <= 0 {
			return fmt.Errorf("vehicle profile: fuel_efficiency_l_per_km must be positive, got %v", p.Combustion.FuelEfficiencyLPerKm)
		}
		if p.Combustion.CarbonFactorKgPerL <= 0 {
			return fmt.Errorf("vehicle profile: carbon_emission_factor_kg_per_l must be positive, got %v", p.Combustion.CarbonFactorKgPerL)
		}
	default:
		return fmt.Errorf("vehicle profile: unrecognized variant %q", p.Variant)
	}

	return nil
}

// TotalMassKg returns the operating mass: curb mass plus the average
// passenger load, plus the installed battery pack for the electric variant.
func (p VehicleProfile) TotalMassKg() float64 {
	mass := p.MassKg + float64(p.AveragePassengers)*passengerMassKg
	if p.Variant == VariantElectric && p.Electric != nil {
		mass += p.Electric.BatteryCapacityKWh * batteryPackKgPerKWh
	}
	return mass
}
