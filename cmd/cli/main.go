package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/dvloznov/cardsim/internal/config"
	"github.com/dvloznov/cardsim/internal/csvout"
	"github.com/dvloznov/cardsim/internal/engine"
	"github.com/dvloznov/cardsim/internal/gcsuploader"
	"github.com/dvloznov/cardsim/internal/logger"
	"github.com/dvloznov/cardsim/internal/merchant"
	"github.com/dvloznov/cardsim/internal/profile"
	"github.com/dvloznov/cardsim/internal/profilegen"
	"github.com/dvloznov/cardsim/internal/sim"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "simulate":
		runSimulate(log)
	case "upload":
		runUpload(log)
	case "fetch-profile":
		runFetchProfile(log)
	case "draft":
		runDraft(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Cardsim CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  simulate       Run a simulation and write the CSV output")
	fmt.Println("  upload         Upload a run CSV to GCS")
	fmt.Println("  fetch-profile  Fetch and validate a profile YAML from GCS")
	fmt.Println("  draft          Draft a persona profile from a prose description")
	fmt.Println("  help           Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runSimulate(log zerolog.Logger) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	personas := fs.String("personas", "commuter:10,student:10", "comma-separated profile:count pairs")
	days := fs.Int("days", 90, "number of days to simulate")
	start := fs.String("start", "2025-01-01", "simulation start date (YYYY-MM-DD)")
	seed := fs.Int64("seed", 0, "random seed (0 picks one from the clock)")
	out := fs.String("out", "simulated_transactions.csv", "output CSV path")
	parallel := fs.Bool("parallel", false, "simulate personas on independent workers")
	fs.Parse(os.Args[2:])

	startDate, err := civil.ParseDate(*start)
	if err != nil {
		log.Fatal().Err(err).Str("start", *start).Msg("invalid start date")
	}
	specs, err := sim.ParsePersonaCounts(*personas)
	if err != nil {
		log.Fatal().Err(err).Msg("building persona specs")
	}
	_, runSeed := sim.NewSeededRNG(*seed)

	ctx := logger.WithContext(context.Background(), log)
	res, err := sim.Run(ctx, sim.Config{
		StartDate:      startDate,
		Days:           *days,
		Seed:           runSeed,
		DriftEveryDays: 7,
		DriftStdDev:    engine.DefaultDriftStdDev,
		Parallel:       *parallel,
	}, specs, merchant.Builtin())
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}

	if err := csvout.WriteFile(*out, res.Transactions); err != nil {
		log.Fatal().Err(err).Msg("writing CSV")
	}
	fmt.Printf("Run %s: wrote %d transactions to %s\n", res.RunID, len(res.Transactions), *out)
}

func runUpload(log zerolog.Logger) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	file := fs.String("file", "", "local CSV file to upload")
	object := fs.String("object", "", "destination object name (default: runs/<filename>)")
	fs.Parse(os.Args[2:])

	if *file == "" {
		log.Fatal().Msg("Error: --file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if cfg.GCSBucket == "" {
		log.Fatal().Msg("Error: CARDSIM_GCS_BUCKET is not set")
	}

	dest := *object
	if dest == "" {
		dest = "runs/" + filepath.Base(*file)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("file", *file).Str("bucket", cfg.GCSBucket).Str("object", dest).Msg("Starting upload")

	if err := gcsuploader.UploadFile(ctx, cfg.GCSBucket, dest, *file); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Println("Upload completed successfully.")
}

func runFetchProfile(log zerolog.Logger) {
	fs := flag.NewFlagSet("fetch-profile", flag.ExitOnError)
	gcsURI := fs.String("gcs-uri", "", "GCS URI of the profile YAML")
	out := fs.String("out", "", "local path to save the profile (default: object filename)")
	fs.Parse(os.Args[2:])

	if *gcsURI == "" {
		log.Fatal().Msg("Error: --gcs-uri is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	storage := gcsuploader.NewGCSStorageService()
	data, err := storage.FetchFromGCS(ctx, *gcsURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Fetch failed")
	}

	prof, err := profile.Parse(data)
	if err != nil {
		log.Fatal().Err(err).Msg("Profile failed validation")
	}

	dest := *out
	if dest == "" {
		dest = storage.ExtractFilenameFromGCSURI(*gcsURI)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("Saving profile")
	}

	fmt.Printf("Fetched profile %q (%d categories) to %s\n", prof.Name, len(prof.Categories), dest)
}

func runDraft(log zerolog.Logger) {
	fs := flag.NewFlagSet("draft", flag.ExitOnError)
	description := fs.String("description", "", "prose description of the persona")
	fs.Parse(os.Args[2:])

	if *description == "" {
		log.Fatal().Msg("Error: --description is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	drafter := profilegen.NewGeminiDrafter(cfg.GeminiModel, merchant.Builtin())
	prof, err := drafter.DraftProfile(ctx, *description)
	if err != nil {
		log.Fatal().Err(err).Msg("Drafting failed")
	}

	fmt.Printf("Drafted profile %q with %d categories.\n", prof.Name, len(prof.Categories))
}
