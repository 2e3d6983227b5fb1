package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yegors/airscen/internal/api"
	"github.com/yegors/airscen/internal/briefing"
	"github.com/yegors/airscen/internal/config"
	"github.com/yegors/airscen/internal/loader"
	"github.com/yegors/airscen/internal/scenario"
	"github.com/yegors/airscen/internal/storage/sqlite"
	"github.com/yegors/airscen/internal/websocket"
	"github.com/yegors/airscen/pkg/logger"
)

var (
	// Version is injected at build time
	Version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional - will search in configs/ and root directory)")
	flag.Parse()

	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting airscen server",
		logger.String("version", Version),
		logger.String("config_path", *configPath),
	)

	// Scenario archive
	store, err := sqlite.NewScenarioStorage(cfg.Storage.SQLitePath, log)
	if err != nil {
		log.Error("Failed to create SQLite storage", logger.Error(err))
		os.Exit(1)
	}
	defer store.Close()
	log.Info("Using SQLite storage", logger.String("path", cfg.Storage.SQLitePath))

	// WebSocket event hub
	wsServer := websocket.NewServer(log)
	go wsServer.Run()

	// Scenario service
	assembler := scenario.NewAssembler(log)
	scenarioService := scenario.NewService(assembler, store, wsServer, log)

	// Load the configured scenario document and sector boundaries
	docLoader := loader.New(log)
	if cfg.Scenario.DocumentPath != "" {
		doc, err := docLoader.ReadDocument(cfg.Scenario.DocumentPath)
		if err != nil {
			log.Error("Failed to read scenario document", logger.Error(err))
			os.Exit(1)
		}
		if _, err := scenarioService.LoadDocument(doc, cfg.Scenario.DocumentPath); err != nil {
			log.Error("Failed to load scenario document", logger.Error(err))
			os.Exit(1)
		}

		if cfg.Scenario.SectorsPath != "" {
			records, err := docLoader.ReadSectorRecords(cfg.Scenario.SectorsPath)
			if err != nil {
				log.Error("Failed to read sector records", logger.Error(err))
				os.Exit(1)
			}
			if err := scenarioService.AddSectors(records); err != nil {
				log.Error("Failed to add sectors", logger.Error(err))
				os.Exit(1)
			}
		}
	} else {
		log.Info("No scenario document configured, starting empty")
	}

	// Optional AI briefing
	var briefingService *briefing.Service
	if cfg.Briefing.Enabled {
		briefingService, err = briefing.NewService(
			context.Background(),
			cfg.Briefing.APIKey,
			cfg.Briefing.Model,
			time.Duration(cfg.Briefing.CacheTTLSecs)*time.Second,
			log,
		)
		if err != nil {
			log.Error("Failed to create briefing service", logger.Error(err))
			os.Exit(1)
		}
		log.Info("Briefing service enabled", logger.String("model", cfg.Briefing.Model))
	} else {
		log.Info("Briefing service disabled in configuration")
	}

	// API router
	router := api.NewRouter(scenarioService, briefingService, cfg, log, wsServer)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSecs) * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", logger.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error on startup", logger.String("addr", addr), logger.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", logger.Error(err))
	} else {
		log.Info("HTTP server shutdown complete")
	}

	log.Info("Server fully stopped")
}
