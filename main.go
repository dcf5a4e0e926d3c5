package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"artwork-dedup/internal/api"
	"artwork-dedup/internal/constants"
	"artwork-dedup/internal/domain"
	"artwork-dedup/internal/infrastructure/repository"
	"artwork-dedup/internal/ingest"
	"artwork-dedup/internal/similarity"
	"artwork-dedup/pkg/config"
	"artwork-dedup/pkg/database"
	"artwork-dedup/pkg/events"
	"artwork-dedup/pkg/logging"
)

func main() {
	ingestFile := flag.String("ingest", "", "run a batch dedup pass over the given JSON records file, then exit")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("config validation: ", err)
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Output:     "stdout",
		EnableFile: cfg.EnableFileLogging,
		FilePath:   cfg.LogFile,
	})
	if err != nil {
		log.Fatal("logger setup: ", err)
	}
	defer logger.Close()

	// Similarity weights/thresholds: optional YAML override, defaults
	// otherwise. Invariants are enforced here, never on the scoring path.
	simCfg := similarity.DefaultConfig()
	if cfg.SimilarityConfigPath != "" {
		simCfg, err = similarity.LoadConfig(cfg.SimilarityConfigPath)
		if err != nil {
			log.Fatal("similarity config: ", err)
		}
		logger.Info("loaded similarity config", "path", cfg.SimilarityConfigPath)
	}
	if err := simCfg.Validate(); err != nil {
		log.Fatal("similarity config validation: ", err)
	}
	strategy := similarity.NewDefaultStrategy(simCfg)

	db, err := database.NewWithConfig(cfg.DatabaseURL, cfg)
	if err != nil {
		log.Fatal("database: ", err)
	}
	defer db.Close()

	repo := repository.NewSQLRepository(db)

	if *ingestFile != "" {
		if err := runIngest(logger, repo, strategy, db, cfg, *ingestFile); err != nil {
			log.Fatal("ingest: ", err)
		}
		return
	}

	router := api.NewRouter(repo, strategy, db, cfg.CandidateRadiusMeters, cfg.CandidateLimit, cfg.MetricsEnabled, cfg.MetricsPath)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  constants.HTTPReadTimeoutDefault,
		WriteTimeout: constants.HTTPWriteTimeoutDefault,
	}

	go func() {
		logger.Info("starting artwork dedup service", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server: ", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), constants.GracefulShutdownTimeoutDefault)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// runIngest deduplicates a batch file of import records against stored
// artworks, recording every decision to the audit trail.
func runIngest(logger *logging.Logger, repo domain.ArtworkRepository, strategy similarity.Strategy, db *database.DB, cfg *config.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var records []ingest.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}

	pipelineCfg := ingest.DefaultConfig()
	pipelineCfg.WorkerCount = cfg.WorkerCount
	pipelineCfg.RadiusMeters = cfg.CandidateRadiusMeters
	pipelineCfg.MaxCandidates = cfg.CandidateLimit

	pipeline := ingest.NewPipeline(repo, strategy, pipelineCfg).
		WithAuditLog(events.NewSQLStore(db))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting batch ingest", "file", path, "records", len(records))
	pipeline.Run(ctx, records)

	stats := pipeline.Stats()
	logger.Info("batch ingest finished",
		"total", stats.TotalRecords,
		"created", stats.Created,
		"skipped", stats.SkippedDuplicates,
		"flagged", stats.Flagged,
		"failed", stats.Failed)
	return nil
}
