package services

import (
	"context"
	"math"
	"reflect"
	"testing"

	"bus-simulation-service/internal/domain"
)

func flatTenKmRoute(t *testing.T) domain.Route {
	t.Helper()
	route, err := domain.NewRoute("flat-10km", []domain.Segment{
		{DistanceM: 10000, SpeedLimitKmh: 30},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return route
}

func TestRunElectricSingleDay(t *testing.T) {
	orch := &Orchestrator{
		Route:   flatTenKmRoute(t),
		Profile: testElectricProfile(),
		Policy:  DepletionPartialDay,
		Curve:   domain.CycleFade(3000, 0.8),
	}

	summary, err := orch.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Days != 1 {
		t.Fatalf("Days = %d, want 1", summary.Days)
	}
	if summary.TotalConsumed <= 0 || summary.TotalConsumed >= 200 {
		t.Errorf("TotalConsumed = %v, want in (0, 200)", summary.TotalConsumed)
	}
	if summary.TotalEmissionsKgCO2 != 0 {
		t.Errorf("TotalEmissionsKgCO2 = %v, want 0 for electric", summary.TotalEmissionsKgCO2)
	}

	rec := summary.Table.Days[0]
	if rec.SoCEndOfDay == nil {
		t.Fatal("SoCEndOfDay is nil for electric run")
	}
	if *rec.SoCEndOfDay <= 0 || *rec.SoCEndOfDay >= 1 {
		t.Errorf("SoCEndOfDay = %v, want strictly between 0 and 1", *rec.SoCEndOfDay)
	}
	if rec.DegradationPct == nil || *rec.DegradationPct != 0 {
		t.Errorf("DegradationPct = %v, want 0 on day 0", rec.DegradationPct)
	}
}

func TestRunElectricDegradationMonotonic(t *testing.T) {
	orch := &Orchestrator{
		Route:   flatTenKmRoute(t),
		Profile: testElectricProfile(),
		Policy:  DepletionPartialDay,
		Curve:   domain.CycleFade(3000, 0.8),
	}

	summary, err := orch.Run(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Table.Days) != 30 {
		t.Fatalf("expected 30 day records, got %d", len(summary.Table.Days))
	}

	prev := -1.0
	for _, rec := range summary.Table.Days {
		if rec.SoCEndOfDay == nil || *rec.SoCEndOfDay < 0 || *rec.SoCEndOfDay > 1 {
			t.Fatalf("day %d: SoCEndOfDay = %v, want in [0,1]", rec.DayIndex, rec.SoCEndOfDay)
		}
		if rec.DegradationPct == nil {
			t.Fatalf("day %d: DegradationPct is nil", rec.DayIndex)
		}
		if *rec.DegradationPct < prev {
			t.Fatalf("day %d: degradation %v decreased below %v", rec.DayIndex, *rec.DegradationPct, prev)
		}
		prev = *rec.DegradationPct
	}

	first := summary.Table.Days[0]
	last := summary.Table.Days[29]
	if *last.DegradationPct < *first.DegradationPct {
		t.Errorf("day 29 degradation %v < day 0 degradation %v", *last.DegradationPct, *first.DegradationPct)
	}
	if *first.DegradationPct < 0 {
		t.Errorf("day 0 degradation = %v, want >= 0", *first.DegradationPct)
	}
}

func TestRunCombustionSingleDay(t *testing.T) {
	orch := &Orchestrator{
		Route:            flatTenKmRoute(t),
		Profile:          testCombustionProfile(),
		Policy:           DepletionPartialDay,
		PollutantFactors: EuroVI(),
	}

	summary, err := orch.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(summary.TotalConsumed-4.0) > 1e-9 {
		t.Errorf("TotalConsumed = %v, want 4.0 L", summary.TotalConsumed)
	}
	if math.Abs(summary.TotalEmissionsKgCO2-10.72) > 1e-9 {
		t.Errorf("TotalEmissionsKgCO2 = %v, want 10.72", summary.TotalEmissionsKgCO2)
	}
	if summary.Pollutants.NOxG <= 0 {
		t.Errorf("Pollutants.NOxG = %v, want positive", summary.Pollutants.NOxG)
	}

	rec := summary.Table.Days[0]
	if rec.SoCEndOfDay != nil || rec.DegradationPct != nil {
		t.Error("battery columns must be nil for combustion runs")
	}
}

func TestRunEmissionsScaleWithFuel(t *testing.T) {
	orch := &Orchestrator{
		Route:            flatTenKmRoute(t),
		Profile:          testCombustionProfile(),
		Policy:           DepletionPartialDay,
		PollutantFactors: EuroVI(),
	}

	summary, err := orch.Run(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, rec := range summary.Table.Days {
		if rec.Consumed > 0 && rec.EmissionsKgCO2 == 0 {
			t.Fatalf("day %d: fuel %v consumed with zero emissions", rec.DayIndex, rec.Consumed)
		}
	}
}

func TestRunPartialDayThenRecharged(t *testing.T) {
	route, err := domain.NewRoute("flat-10km", []domain.Segment{
		{DistanceM: 2500, SpeedLimitKmh: 30},
		{DistanceM: 2500, SpeedLimitKmh: 30},
		{DistanceM: 2500, SpeedLimitKmh: 30},
		{DistanceM: 2500, SpeedLimitKmh: 30},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := testElectricProfile()
	profile.Electric = &domain.ElectricSpec{BatteryCapacityKWh: 1, MotorEfficiency: 0.9}

	orch := &Orchestrator{
		Route:   route,
		Profile: profile,
		Policy:  DepletionPartialDay,
		Curve:   domain.CycleFade(3000, 0.8),
	}

	summary, err := orch.Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	day0 := summary.Table.Days[0]
	if day0.Completed {
		t.Fatal("expected day 0 to be incomplete with a 1 kWh battery")
	}
	if day0.DistanceKm*1000 >= 10000 {
		t.Errorf("day 0 covered %v km, want less than the 10 km route", day0.DistanceKm)
	}

	// The run continues, and day 1 starts from a full overnight recharge:
	// it covers exactly as much as day 0 did on a fresh (slightly degraded)
	// battery rather than zero.
	day1 := summary.Table.Days[1]
	if day1.DayIndex != 1 {
		t.Fatalf("DayIndex = %d, want 1", day1.DayIndex)
	}
	if day1.DistanceKm <= 0 {
		t.Errorf("day 1 DistanceKm = %v, want positive (battery recharged overnight)", day1.DistanceKm)
	}
	if summary.IncompleteDays != 2 {
		t.Errorf("IncompleteDays = %d, want 2", summary.IncompleteDays)
	}
}

func TestRunDeterministic(t *testing.T) {
	build := func() *Orchestrator {
		return &Orchestrator{
			Route:   flatTenKmRoute(t),
			Profile: testElectricProfile(),
			Policy:  DepletionPartialDay,
			Curve:   domain.CycleFade(3000, 0.8),
		}
	}

	first, err := build().Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := build().Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Table, second.Table) {
		t.Fatal("identical inputs produced different day record sequences")
	}
}

func TestRunValidation(t *testing.T) {
	orch := &Orchestrator{
		Route:   flatTenKmRoute(t),
		Profile: testElectricProfile(),
	}
	if _, err := orch.Run(context.Background(), 0); err == nil {
		t.Error("expected error for days < 1")
	}

	bad := &Orchestrator{Route: flatTenKmRoute(t), Profile: domain.VehicleProfile{Variant: "steam", MassKg: 1, FrontalAreaM2: 1}}
	if _, err := bad.Run(context.Background(), 1); err == nil {
		t.Error("expected error for unrecognized variant")
	}

	empty := &Orchestrator{Profile: testElectricProfile()}
	if _, err := empty.Run(context.Background(), 1); err == nil {
		t.Error("expected error for empty route")
	}
}

func TestRunContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := &Orchestrator{
		Route:   flatTenKmRoute(t),
		Profile: testElectricProfile(),
		Policy:  DepletionPartialDay,
	}
	if _, err := orch.Run(ctx, 5); err == nil {
		t.Error("expected error for cancelled context")
	}
}
