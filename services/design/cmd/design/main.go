package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"beadatelier/internal/quota"
	"beadatelier/internal/util"
	"beadatelier/pkg/ai"
	"beadatelier/pkg/catalog"
	"beadatelier/pkg/storage"
	"beadatelier/pkg/store"
	"beadatelier/services/design/internal/app"
	"beadatelier/services/design/internal/config"
	"beadatelier/services/design/internal/server"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	var generator ai.ImageGenerator
	switch cfg.Provider {
	case "gemini":
		generator, err = ai.NewGeminiImageClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		generator, err = ai.NewOpenAIImageClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	}
	if err != nil {
		log.Fatalf("failed to init image provider: %v", err)
	}

	var artifactStore store.Store
	if cfg.DatabaseURL != "" {
		artifactStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to init postgres store: %v", err)
		}
	} else {
		ttl, err := config.ParseArtifactTTL(cfg.ArtifactTTL)
		if err != nil {
			log.Fatalf("failed to parse artifact ttl: %v", err)
		}
		artifactStore = store.NewMemoryStore(ttl)
	}

	var objects storage.ObjectStore
	if cfg.MinioEnabled() {
		minioStore, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("failed to init object store: %v", err)
		}
		objects = minioStore
	}

	var limiter *quota.RedisDayLimiter
	if cfg.QuotaRedisAddr != "" {
		limiter, err = quota.NewRedisDayLimiter(cfg.QuotaRedisAddr, cfg.QuotaRedisPassword, "atelier:design:quota", cfg.DailyLimit)
		if err != nil {
			log.Fatalf("failed to init quota limiter: %v", err)
		}
	}

	appCore, err := app.New(app.Config{
		Generator: generator,
		Store:     artifactStore,
		Objects:   objects,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer, err := server.New(server.Config{
		App:            appCore,
		Catalog:        catalog.Default(),
		Quota:          limiter,
		TrustForwarded: cfg.TrustForwardedHeaders,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("design server listening", "addr", addr, "provider", cfg.Provider)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
