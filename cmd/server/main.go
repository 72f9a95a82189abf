package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"agri-updates/internal/ai"
	"agri-updates/internal/config"
	"agri-updates/internal/database"
	"agri-updates/internal/dedup"
	"agri-updates/internal/generator"
	"agri-updates/internal/logger"
	"agri-updates/internal/scheduler"
	"agri-updates/internal/server"
	"agri-updates/internal/telegram"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err == nil {
		err = cfg.ValidateServer()
	}
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}
	gin.SetMode(cfg.Mode)

	zlog, err := logger.New(cfg.Mode)
	if err != nil {
		log.Fatalf("❌ Logger error: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		zlog.Fatal("database connection failed", "driver", cfg.Database.Driver, "error", err)
	}
	defer store.Close()
	log.Printf("✅ Connected to %s store", cfg.Database.Driver)

	opts := []generator.Option{
		generator.WithMarkers(generator.DefaultMarkers().Extend(cfg.GenericMarkers)),
		generator.WithLogger(zlog),
	}
	polisher, err := ai.New(ai.Settings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.Timeout(),
	})
	switch {
	case err == nil:
		opts = append(opts, generator.WithPolisher(polisher))
		log.Printf("🤖 Polishing with %s", cfg.LLM.Provider)
	case errors.Is(err, ai.ErrNotConfigured):
		log.Println("⚠️ No LLM configured, generating from original text only")
	default:
		zlog.Fatal("llm client setup failed", "error", err)
	}

	deps := server.Deps{
		Engine:         generator.New(opts...),
		Store:          store,
		Log:            zlog,
		Secret:         cfg.WebhookSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		PostURL:        cfg.PostURL,
	}

	if cfg.RedisURL != "" {
		rc, err := dedup.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			zlog.Fatal("redis connection failed", "error", err)
		}
		defer rc.Close()
		deps.Cache = rc
		log.Println("✅ Using Redis fingerprint cache")
	} else {
		deps.Cache = dedup.NewFileCache(cfg.CachePath)
	}

	if cfg.Telegram.Token != "" {
		bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			zlog.Fatal("telegram bot setup failed", "error", err)
		}
		deps.Notifier = bot

		sched := scheduler.New(store, bot, cfg.DigestSchedule)
		if err := sched.Start(ctx); err != nil {
			zlog.Fatal("scheduler start failed", "error", err)
		}
		defer sched.Stop()
	} else {
		log.Println("⚠️ Telegram not configured, notifications and digest disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(deps).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", "error", err)
	}
}
