package main

import (
	"context"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"bus-simulation-service/internal/adapters/results"
	"bus-simulation-service/internal/adapters/routecsv"
	"bus-simulation-service/internal/config"
	"bus-simulation-service/internal/domain"
	"bus-simulation-service/internal/platform/db"
	"bus-simulation-service/internal/platform/obs"
	"bus-simulation-service/internal/services"
)

// main is the application composition root.
// It wires the CSV adapters (and the optional Postgres sink) around the
// simulation core and runs the configured number of days.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	configPath := config.Get("CONFIG_PATH", "config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Environment wins over the file for paths, so containerized runs can
	// remap them without editing the config.
	cfg.DataPath = config.Get("DATA_PATH", cfg.DataPath)
	cfg.OutputDir = config.Get("OUTPUT_DIR", cfg.OutputDir)

	ctx := obs.WithRunID(context.Background(), cfg.Name)

	profile, err := cfg.VehicleProfile()
	if err != nil {
		log.Fatal(err)
	}

	repo := routecsv.NewCSVRouteRepository(cfg.DataPath)
	route, err := repo.LoadRoute(ctx, cfg.Name)
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{
		"run":      cfg.Name,
		"variant":  string(profile.Variant),
		"segments": len(route.Segments),
		"route_km": route.LengthKm(),
		"days":     cfg.Days,
	}).Info("Route loaded")

	orch := &services.Orchestrator{
		Route:              route,
		Profile:            profile,
		Policy:             cfg.DepletionPolicy(),
		RegenEfficiency:    cfg.Policy.RegenEfficiency,
		GradientLoadFactor: cfg.Policy.GradientLoadFactor,
		Curve:              cfg.DegradationCurve(),
		PollutantFactors:   cfg.EmissionFactors(),
		Costs:              cfg.CostModel(),
	}

	summary, err := runSimulation(ctx, orch, cfg.Days)
	if err != nil {
		log.Fatal(err)
	}

	writer := results.NewCSVWriter(cfg.OutputDir)
	if err := writer.WriteTable(ctx, summary.Table); err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{
		"file": results.FileName(summary.Variant),
		"dir":  cfg.OutputDir,
	}).Info("Results written")

	// Optional queryable sink alongside the CSV output.
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := results.NewPostgresWriter(pg).WriteTable(ctx, summary.Table); err != nil {
			log.Fatal(err)
		}
		log.Info("Results persisted to postgres")
	}

	fields := log.Fields{
		"run":               summary.Name,
		"days":              summary.Days,
		"total_distance_km": summary.TotalDistanceKm,
		"total_consumed":    summary.TotalConsumed,
		"emissions_kg_co2":  summary.TotalEmissionsKgCO2,
		"incomplete_days":   summary.IncompleteDays,
	}
	if summary.FinalSoC != nil {
		fields["final_soc"] = *summary.FinalSoC
	}
	if summary.FinalDegradationPct != nil {
		fields["degradation_pct"] = *summary.FinalDegradationPct
	}
	log.WithFields(fields).Info("Simulation complete")
}

func runSimulation(ctx context.Context, orch *services.Orchestrator, days int) (summary domain.RunSummary, err error) {
	defer obs.Time(ctx, "simulation")(&err)
	return orch.Run(ctx, days)
}
