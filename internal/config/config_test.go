package config

import (
	"os"
	"path/filepath"
	"testing"

	"bus-simulation-service/internal/domain"
	"bus-simulation-service/internal/services"
)

const validElectricYAML = `
name: line-27
data_path: data/route.csv
electric: true
days: 30
vehicle:
  mass_kg: 13500
  drag_coefficient: 0.6
  frontal_area_m2: 8.0
  rolling_resistance_coefficient: 0.008
  average_passengers: 40
  electric:
    battery_capacity_kwh: 200
    motor_efficiency: 0.9
policy:
  regen_efficiency: 0.3
costs:
  energy_cost_per_kwh: 0.2
  base_vehicle_cost: 450000
  battery_cost_per_kwh: 100
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoadElectricConfig(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, validElectricYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Name != "line-27" {
		t.Errorf("Name = %q, want line-27", cfg.Name)
	}
	if cfg.Days != 30 {
		t.Errorf("Days = %d, want 30", cfg.Days)
	}

	// Defaults.
	if cfg.OutputDir != "simulation_results" {
		t.Errorf("OutputDir = %q, want default simulation_results", cfg.OutputDir)
	}
	if cfg.DepletionPolicy() != services.DepletionPartialDay {
		t.Errorf("DepletionPolicy = %q, want partial default", cfg.DepletionPolicy())
	}
	if cfg.Degradation.MaxCycles != 3000 {
		t.Errorf("Degradation.MaxCycles = %d, want default 3000", cfg.Degradation.MaxCycles)
	}
	if cfg.Degradation.MinStateOfHealth != 0.8 {
		t.Errorf("Degradation.MinStateOfHealth = %v, want default 0.8", cfg.Degradation.MinStateOfHealth)
	}

	profile, err := cfg.VehicleProfile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Variant != domain.VariantElectric {
		t.Errorf("Variant = %q, want electric", profile.Variant)
	}
	if profile.Electric.BatteryCapacityKWh != 200 {
		t.Errorf("BatteryCapacityKWh = %v, want 200", profile.Electric.BatteryCapacityKWh)
	}
	if profile.Combustion != nil {
		t.Error("Combustion spec must be nil for electric variant")
	}
}

func TestLoadConfigInvalidDays(t *testing.T) {
	yaml := `
name: x
data_path: data/route.csv
electric: true
days: 0
vehicle:
  mass_kg: 13500
  frontal_area_m2: 8.0
  electric:
    battery_capacity_kwh: 200
    motor_efficiency: 0.9
`
	if _, err := Load(writeTempConfig(t, yaml)); err == nil {
		t.Fatal("expected error for days < 1")
	}
}

func TestLoadConfigMissingVariantBlock(t *testing.T) {
	yaml := `
name: x
data_path: data/route.csv
electric: true
days: 1
vehicle:
  mass_kg: 13500
  frontal_area_m2: 8.0
  combustion:
    fuel_tank_capacity_l: 300
    fuel_efficiency_l_per_km: 0.4
    carbon_emission_factor_kg_per_l: 2.68
`
	if _, err := Load(writeTempConfig(t, yaml)); err == nil {
		t.Fatal("expected error when electric variant lacks electric block")
	}
}

func TestLoadConfigBadDepletionPolicy(t *testing.T) {
	yaml := `
name: x
data_path: data/route.csv
electric: false
days: 1
vehicle:
  mass_kg: 12000
  frontal_area_m2: 8.0
  combustion:
    fuel_tank_capacity_l: 300
    fuel_efficiency_l_per_km: 0.4
    carbon_emission_factor_kg_per_l: 2.68
policy:
  depletion: explode
`
	if _, err := Load(writeTempConfig(t, yaml)); err == nil {
		t.Fatal("expected error for unrecognized depletion policy")
	}
}

func TestEmissionFactorSelection(t *testing.T) {
	cfg := Config{EuroStandard: "euro5"}
	if got := cfg.EmissionFactors(); got != services.EuroV() {
		t.Errorf("EmissionFactors() = %+v, want EuroV preset", got)
	}
	cfg.EuroStandard = ""
	if got := cfg.EmissionFactors(); got != services.EuroVI() {
		t.Errorf("EmissionFactors() = %+v, want EuroVI default", got)
	}

	cfg.Emissions = &EmissionFactorsConfig{NOxGPerL: 3.2, COGPerL: 4.1, HCGPerL: 0.9, PMGPerL: 0.02}
	got := cfg.EmissionFactors()
	if got.NOxGPerL != 3.2 || got.COGPerL != 4.1 || got.HCGPerL != 0.9 || got.PMGPerL != 0.02 {
		t.Errorf("EmissionFactors() = %+v, want explicit overrides applied", got)
	}
	if got.CO2KgPerL != services.EuroVI().CO2KgPerL {
		t.Errorf("CO2KgPerL = %v, want preset value kept", got.CO2KgPerL)
	}
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("SIM_TEST_KEY", "from-env")
	if got := Get("SIM_TEST_KEY", "fallback"); got != "from-env" {
		t.Errorf("Get = %q, want from-env", got)
	}
	if got := Get("SIM_TEST_KEY_UNSET", "fallback"); got != "fallback" {
		t.Errorf("Get = %q, want fallback", got)
	}
}
