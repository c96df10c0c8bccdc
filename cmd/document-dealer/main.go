package main

import (
	"fmt"
	"os"

	"github.com/RusMail/document-dealer/internal/auth"
	"github.com/RusMail/document-dealer/internal/config"
	"github.com/RusMail/document-dealer/internal/db"
	"github.com/RusMail/document-dealer/internal/excel"
	httphandler "github.com/RusMail/document-dealer/internal/http"
	"github.com/RusMail/document-dealer/internal/http/middleware"
	"github.com/RusMail/document-dealer/internal/logger"
	"github.com/RusMail/document-dealer/internal/pdf"
	"github.com/RusMail/document-dealer/internal/render"
	"github.com/RusMail/document-dealer/internal/repository"
	"github.com/RusMail/document-dealer/internal/service"
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

	userRepo := repository.NewUserRepository(database)
	contractorRepo := repository.NewContractorRepository(database)
	documentRepo := repository.NewDocumentRepository(database)

	cardGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	registryExporter := excel.NewGenerator()
	webhookClient := render.NewClient(cfg.Webhook.URL, cfg.Webhook.Timeout)

	tokenIssuer := auth.NewIssuer(cfg.Auth.Secret)
	tokenParser := auth.NewParser(cfg.Auth.Secret)

	authService := service.NewAuthService(userRepo, tokenIssuer)
	contractorService := service.NewContractorService(contractorRepo, registryExporter, cardGenerator)
	documentService := service.NewDocumentService(documentRepo, contractorRepo, webhookClient, log)

	handler := httphandler.NewHandler(authService, contractorService, documentService, database, log)
	authMiddleware := middleware.Auth(tokenParser, userRepo)
	adminMiddleware := middleware.AdminOnly()
	router := httphandler.NewRouter(handler, authMiddleware, adminMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting document dealer")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
