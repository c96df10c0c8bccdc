package main

import (
	"fmt"
	"os"

	"github.com/RusMail/document-dealer/internal/config"
	"github.com/RusMail/document-dealer/internal/db"
	"github.com/RusMail/document-dealer/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	admin, err := db.SeedAdmin(database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin")
	}
	if admin == nil {
		log.Info().Msg("admin user already exists")
		return
	}
	log.Info().Str("email", admin.Email).Msg("default admin user created")

	if err := db.SeedSampleContractor(database, admin); err != nil {
		log.Fatal().Err(err).Msg("failed to seed sample contractor")
	}
	log.Info().Msg("sample contractor created")
}
