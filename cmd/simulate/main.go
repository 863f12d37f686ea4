package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/cardsim/internal/config"
	"github.com/dvloznov/cardsim/internal/csvout"
	"github.com/dvloznov/cardsim/internal/engine"
	"github.com/dvloznov/cardsim/internal/gcsuploader"
	infraBQ "github.com/dvloznov/cardsim/internal/infra/bigquery"
	"github.com/dvloznov/cardsim/internal/logger"
	"github.com/dvloznov/cardsim/internal/merchant"
	"github.com/dvloznov/cardsim/internal/profile"
	"github.com/dvloznov/cardsim/internal/sim"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	personas := flag.String("personas", "commuter:10,student:10", "comma-separated profile:count pairs")
	days := flag.Int("days", 90, "number of days to simulate")
	start := flag.String("start", "2025-01-01", "simulation start date (YYYY-MM-DD)")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	out := flag.String("out", "simulated_transactions.csv", "output CSV path")
	parallel := flag.Bool("parallel", false, "simulate personas on independent workers")
	driftDays := flag.Int("drift-days", 7, "apply spending drift every N days (0 disables)")
	profileFile := flag.String("profile-file", "", "extra profile YAML to include as profile:count via -personas")
	catalogFile := flag.String("catalog-file", "", "merchant catalog YAML (default: built-in UK catalog)")
	uploadGCS := flag.Bool("gcs", false, "upload the CSV to the configured GCS bucket")
	insertBQ := flag.Bool("bq", false, "insert the run into the configured BigQuery table")
	flag.Parse()

	startDate, err := civil.ParseDate(*start)
	if err != nil {
		log.Fatal().Err(err).Str("start", *start).Msg("invalid start date")
	}

	catalog := merchant.Builtin()
	if *catalogFile != "" {
		catalog, err = merchant.LoadFile(*catalogFile)
		if err != nil {
			log.Fatal().Err(err).Msg("loading merchant catalog")
		}
	}

	specs, err := buildSpecs(*personas, *profileFile)
	if err != nil {
		log.Fatal().Err(err).Msg("building persona specs")
	}

	_, runSeed := sim.NewSeededRNG(*seed)

	ctx := logger.WithContext(context.Background(), log)
	res, err := sim.Run(ctx, sim.Config{
		StartDate:      startDate,
		Days:           *days,
		Seed:           runSeed,
		DriftEveryDays: *driftDays,
		DriftStdDev:    engine.DefaultDriftStdDev,
		Parallel:       *parallel,
	}, specs, catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}

	if err := csvout.WriteFile(*out, res.Transactions); err != nil {
		log.Fatal().Err(err).Msg("writing CSV")
	}
	log.Info().Str("path", *out).Int("transactions", len(res.Transactions)).Msg("wrote CSV")

	if *uploadGCS || *insertBQ {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("loading config")
		}

		cloudCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()

		if *uploadGCS {
			object := fmt.Sprintf("runs/%s.csv", res.RunID)
			if err := gcsuploader.UploadFile(cloudCtx, cfg.GCSBucket, object, *out); err != nil {
				log.Fatal().Err(err).Msg("uploading CSV to GCS")
			}
			log.Info().Str("bucket", cfg.GCSBucket).Str("object", object).Msg("uploaded CSV")
		}
		if *insertBQ {
			if err := infraBQ.InsertSimulatedTransactions(cloudCtx, cfg, res.RunID, res.Transactions); err != nil {
				log.Fatal().Err(err).Msg("inserting into BigQuery")
			}
			log.Info().Str("table", cfg.BigQueryTable).Msg("inserted run into BigQuery")
		}
	}

	fmt.Printf("Run %s complete: %d transactions over %d days for %d personas.\n",
		res.RunID, len(res.Transactions), res.Days, res.Personas)
}

// buildSpecs expands the persona counts, registering an extra YAML profile
// first so it can be referenced by name in the counts string.
func buildSpecs(personas, profileFile string) ([]sim.PersonaSpec, error) {
	if profileFile == "" {
		return sim.ParsePersonaCounts(personas)
	}

	extra, err := profile.LoadFile(profileFile)
	if err != nil {
		return nil, err
	}
	return sim.ParsePersonaCountsWith(personas, map[string]*profile.Profile{extra.Name: extra})
}
