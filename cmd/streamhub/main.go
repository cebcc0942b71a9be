package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/streamhub/streamhub/internal/database"
	"github.com/streamhub/streamhub/internal/geoip"
	"github.com/streamhub/streamhub/internal/notify"
	"github.com/streamhub/streamhub/internal/server"
	slackpkg "github.com/streamhub/streamhub/internal/slack"
	"github.com/streamhub/streamhub/internal/storage"
	"github.com/streamhub/streamhub/internal/video"
	webhookpkg "github.com/streamhub/streamhub/internal/webhook"
)

func main() {
	port := getEnv("PORT", "8000")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	watchSecret := os.Getenv("WATCH_TOKEN_SECRET")
	if watchSecret == "" {
		log.Fatal("WATCH_TOKEN_SECRET is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, databaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(databaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}
	log.Println("database migrations applied")

	baseURL := getEnv("BASE_URL", "http://localhost:8000")

	var store video.ObjectStorage
	var bannerDir string
	switch backend := getEnv("STORAGE_BACKEND", "local"); backend {
	case "s3":
		s3Store, err := storage.NewS3(ctx, storage.S3Config{
			Endpoint:       getEnv("S3_ENDPOINT", "http://localhost:3900"),
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			Bucket:         getEnv("S3_BUCKET", "streamhub"),
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			Region:         getEnv("S3_REGION", "eu-central-1"),
		})
		if err != nil {
			log.Fatalf("storage initialization failed: %v", err)
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Fatalf("storage bucket check failed: %v", err)
		}
		store = s3Store
		log.Println("storage bucket ready")
	case "local":
		localStore, err := storage.NewLocal(getEnv("BANNER_DIR", "static/banners"))
		if err != nil {
			log.Fatalf("storage initialization failed: %v", err)
		}
		store = localStore
		bannerDir = localStore.Dir()
		log.Printf("storing banners in %s", bannerDir)
	default:
		log.Fatalf("unknown STORAGE_BACKEND %q (want local or s3)", backend)
	}

	var geoResolver *geoip.Resolver
	if path := os.Getenv("GEOIP_DB_PATH"); path != "" {
		geoResolver, err = geoip.New(path)
		if err != nil {
			log.Printf("geoip disabled: %v", err)
			geoResolver = nil
		} else {
			defer geoResolver.Close()
			log.Println("geoip lookups enabled")
		}
	}

	var publishNotifier video.PublishNotifier
	var deleteNotifier video.DeleteNotifier
	if url := os.Getenv("SLACK_WEBHOOK_URL"); url != "" {
		slackClient := slackpkg.New(url)
		publishNotifier = notify.NewMultiPublishNotifier(slackClient)
		deleteNotifier = notify.NewMultiDeleteNotifier(slackClient)
		log.Println("slack notifications enabled")
	}

	var webhookClient *webhookpkg.Client
	if url := os.Getenv("EVENT_WEBHOOK_URL"); url != "" {
		webhookClient = webhookpkg.New(db.Pool, url, os.Getenv("EVENT_WEBHOOK_SECRET"))
		log.Println("event webhooks enabled")
	}

	srv := server.New(server.Config{
		DB:               db.Pool,
		Pinger:           db,
		Storage:          store,
		BannerDir:        bannerDir,
		BaseURL:          baseURL,
		WatchSecret:      watchSecret,
		S3PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
		GeoResolver:      geoResolver,
		PublishNotifier:  publishNotifier,
		DeleteNotifier:   deleteNotifier,
		WebhookClient:    webhookClient,
	})

	cleanupMinutes := getEnvInt64("CLEANUP_INTERVAL_MINUTES", 60)
	if cleanupMinutes > 0 {
		cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
		defer cleanupCancel()
		video.StartCleanupLoop(cleanupCtx, db.Pool, store, time.Duration(cleanupMinutes)*time.Minute)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("streamhub listening on :%s", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-shutdownCh
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	log.Println("shutdown complete")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
