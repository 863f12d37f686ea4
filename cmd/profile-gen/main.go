package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dvloznov/cardsim/internal/config"
	"github.com/dvloznov/cardsim/internal/logger"
	"github.com/dvloznov/cardsim/internal/merchant"
	"github.com/dvloznov/cardsim/internal/profile"
	"github.com/dvloznov/cardsim/internal/profilegen"
)

// profile-gen drafts a persona profile YAML from a prose description and
// writes it to disk, ready for -profile-file on the simulate command.
func main() {
	log := logger.New()

	description := flag.String("description", "", "prose description of the persona (e.g. \"a retired gardener who shops on Tuesdays\")")
	out := flag.String("out", "profile.yaml", "output YAML path")
	catalogFile := flag.String("catalog-file", "", "merchant catalog YAML (default: built-in UK catalog)")
	flag.Parse()

	if *description == "" {
		log.Fatal().Msg("Error: --description is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	catalog := merchant.Builtin()
	if *catalogFile != "" {
		catalog, err = merchant.LoadFile(*catalogFile)
		if err != nil {
			log.Fatal().Err(err).Msg("loading merchant catalog")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("model", cfg.GeminiModel).Msg("Drafting profile")

	drafter := profilegen.NewGeminiDrafter(cfg.GeminiModel, catalog)
	prof, err := drafter.DraftProfile(ctx, *description)
	if err != nil {
		log.Fatal().Err(err).Msg("Drafting failed")
	}

	data, err := profile.Encode(prof)
	if err != nil {
		log.Fatal().Err(err).Msg("Encoding profile")
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("Writing profile")
	}

	fmt.Printf("Drafted profile %q (%d categories) to %s\n", prof.Name, len(prof.Categories), *out)
}
