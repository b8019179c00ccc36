package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"bus-simulation-service/internal/domain"
	"bus-simulation-service/internal/services"
)

// ElectricConfig holds the electric variant parameters.
type ElectricConfig struct {
	BatteryCapacityKWh float64 `yaml:"battery_capacity_kwh" validate:"gt=0"`
	MotorEfficiency    float64 `yaml:"motor_efficiency" validate:"gt=0,lte=1"`
}

// CombustionConfig holds the combustion variant parameters.
type CombustionConfig struct {
	FuelTankCapacityL    float64 `yaml:"fuel_tank_capacity_l" validate:"gt=0"`
	FuelEfficiencyLPerKm float64 `yaml:"fuel_efficiency_l_per_km" validate:"gt=0"`
	CarbonFactorKgPerL   float64 `yaml:"carbon_emission_factor_kg_per_l" validate:"gt=0"`
}

// VehicleConfig holds the shared physical parameters plus the variant
// sub-blocks. Only the block matching the selected variant is required.
type VehicleConfig struct {
	MassKg                       float64           `yaml:"mass_kg" validate:"gt=0"`
	DragCoefficient              float64           `yaml:"drag_coefficient" validate:"gte=0"`
	FrontalAreaM2                float64           `yaml:"frontal_area_m2" validate:"gt=0"`
	RollingResistanceCoefficient float64           `yaml:"rolling_resistance_coefficient" validate:"gte=0"`
	AveragePassengers            int               `yaml:"average_passengers" validate:"gte=0"`
	Electric                     *ElectricConfig   `yaml:"electric"`
	Combustion                   *CombustionConfig `yaml:"combustion"`
}

// PolicyConfig holds the tunable simulation policies.
type PolicyConfig struct {
	Depletion          string  `yaml:"depletion" validate:"omitempty,oneof=partial abort"`
	RegenEfficiency    float64 `yaml:"regen_efficiency" validate:"gte=0,lte=1"`
	GradientLoadFactor float64 `yaml:"gradient_load_factor" validate:"gte=0"`
}

// DegradationConfig parameterizes the default cycle-fade curve.
type DegradationConfig struct {
	MaxCycles         int     `yaml:"max_cycles" validate:"omitempty,gt=0"`
	MinStateOfHealth  float64 `yaml:"min_state_of_health" validate:"gte=0,lte=1"`
}

// EmissionFactorsConfig overrides the non-CO2 pollutant factors of the
// selected euro standard preset. All per litre of fuel burned.
type EmissionFactorsConfig struct {
	NOxGPerL float64 `yaml:"nox_g_per_l" validate:"gte=0"`
	COGPerL  float64 `yaml:"co_g_per_l" validate:"gte=0"`
	HCGPerL  float64 `yaml:"hc_g_per_l" validate:"gte=0"`
	PMGPerL  float64 `yaml:"pm_g_per_l" validate:"gte=0"`
}

// CostConfig prices the run; all fields optional.
type CostConfig struct {
	EnergyCostPerKWh  float64 `yaml:"energy_cost_per_kwh" validate:"gte=0"`
	FuelCostPerL      float64 `yaml:"fuel_cost_per_l" validate:"gte=0"`
	BaseVehicleCost   float64 `yaml:"base_vehicle_cost" validate:"gte=0"`
	BatteryCostPerKWh float64 `yaml:"battery_cost_per_kwh" validate:"gte=0"`
}

// Config is the root structure of the simulation configuration file.
type Config struct {
	Name         string                 `yaml:"name" validate:"required"`
	DataPath     string                 `yaml:"data_path" validate:"required"`
	Electric     bool                   `yaml:"electric"`
	Days         int                    `yaml:"days" validate:"gte=1"`
	OutputDir    string                 `yaml:"output_dir"`
	EuroStandard string                 `yaml:"euro_standard" validate:"omitempty,oneof=euro5 euro6"`
	Emissions    *EmissionFactorsConfig `yaml:"emission_factors"`
	Vehicle      VehicleConfig          `yaml:"vehicle" validate:"required"`
	Policy       PolicyConfig           `yaml:"policy"`
	Degradation  DegradationConfig      `yaml:"degradation"`
	Costs        CostConfig             `yaml:"costs"`
}

// Load reads, parses, and validates the configuration at path, applying
// defaults for the optional blocks.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("load config: validate %q: %w", path, err)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "simulation_results"
	}
	if cfg.Policy.Depletion == "" {
		cfg.Policy.Depletion = string(services.DepletionPartialDay)
	}
	if cfg.Degradation.MaxCycles == 0 {
		cfg.Degradation.MaxCycles = 3000
	}
	if cfg.Degradation.MinStateOfHealth == 0 {
		cfg.Degradation.MinStateOfHealth = 0.8
	}

	if _, err := cfg.VehicleProfile(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// VehicleProfile resolves the configured variant into a validated domain
// profile.
func (c Config) VehicleProfile() (domain.VehicleProfile, error) {
	profile := domain.VehicleProfile{
		MassKg:                       c.Vehicle.MassKg,
		DragCoefficient:              c.Vehicle.DragCoefficient,
		FrontalAreaM2:                c.Vehicle.FrontalAreaM2,
		RollingResistanceCoefficient: c.Vehicle.RollingResistanceCoefficient,
		AveragePassengers:            c.Vehicle.AveragePassengers,
	}

	if c.Electric {
		if c.Vehicle.Electric == nil {
			return domain.VehicleProfile{}, fmt.Errorf("vehicle profile: electric variant selected but vehicle.electric block is missing")
		}
		profile.Variant = domain.VariantElectric
		profile.Electric = &domain.ElectricSpec{
			BatteryCapacityKWh: c.Vehicle.Electric.BatteryCapacityKWh,
			MotorEfficiency:    c.Vehicle.Electric.MotorEfficiency,
		}
	} else {
		if c.Vehicle.Combustion == nil {
			return domain.VehicleProfile{}, fmt.Errorf("vehicle profile: combustion variant selected but vehicle.combustion block is missing")
		}
		profile.Variant = domain.VariantCombustion
		profile.Combustion = &domain.CombustionSpec{
			FuelTankCapacityL:    c.Vehicle.Combustion.FuelTankCapacityL,
			FuelEfficiencyLPerKm: c.Vehicle.Combustion.FuelEfficiencyLPerKm,
			CarbonFactorKgPerL:   c.Vehicle.Combustion.CarbonFactorKgPerL,
		}
	}

	if err := profile.Validate(); err != nil {
		return domain.VehicleProfile{}, err
	}
	return profile, nil
}

// DepletionPolicy returns the configured policy constant.
func (c Config) DepletionPolicy() services.DepletionPolicy {
	if c.Policy.Depletion == string(services.DepletionAbortRun) {
		return services.DepletionAbortRun
	}
	return services.DepletionPartialDay
}

// EmissionFactors returns the pollutant factors for the configured standard,
// with any explicit emission_factors overrides applied.
func (c Config) EmissionFactors() services.EmissionFactors {
	factors := services.EuroVI()
	if c.EuroStandard == "euro5" {
		factors = services.EuroV()
	}
	if c.Emissions != nil {
		factors.NOxGPerL = c.Emissions.NOxGPerL
		factors.COGPerL = c.Emissions.COGPerL
		factors.HCGPerL = c.Emissions.HCGPerL
		factors.PMGPerL = c.Emissions.PMGPerL
	}
	return factors
}

// DegradationCurve builds the configured cycle-fade curve.
func (c Config) DegradationCurve() domain.DegradationCurve {
	return domain.CycleFade(c.Degradation.MaxCycles, c.Degradation.MinStateOfHealth)
}

// CostModel maps the cost block onto the pricing model.
func (c Config) CostModel() services.CostModel {
	return services.CostModel{
		EnergyCostPerKWh:  c.Costs.EnergyCostPerKWh,
		FuelCostPerL:      c.Costs.FuelCostPerL,
		BaseVehicleCost:   c.Costs.BaseVehicleCost,
		BatteryCostPerKWh: c.Costs.BatteryCostPerKWh,
	}
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
