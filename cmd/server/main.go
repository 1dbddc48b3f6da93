package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"cuet-tuition-backend/internal/config"
	"cuet-tuition-backend/internal/database"
	"cuet-tuition-backend/internal/handlers"
	"cuet-tuition-backend/internal/middleware"
	"cuet-tuition-backend/internal/repository"
	"cuet-tuition-backend/internal/router"
	"cuet-tuition-backend/internal/services"
	"cuet-tuition-backend/internal/storage"
	"cuet-tuition-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting CUET Tuition Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Catalog (PostgreSQL or in-memory seed) ────
	var (
		listingSource services.ListingSource
		tuitionStore  services.TuitionStore
	)
	if cfg.DatabaseURL != "" {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("✗ Database migration failed: %v", err)
		}
		log.Println("✓ Database migrations applied")

		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("✗ PostgreSQL connection failed: %v", err)
		}
		defer pool.Close()
		log.Println("✓ PostgreSQL connected")

		listingSource = repository.NewListingRepo(pool)
		tuitionStore = repository.NewTuitionRepo(pool)
	} else {
		listingSource = repository.NewMemoryListingRepo(repository.SeedTutors())
		tuitionStore = repository.NewMemoryTuitionRepo(repository.SeedTuitions(time.Now()))
		log.Println("✓ In-memory catalog seeded (DATABASE_URL not set)")
	}

	// ──── Step 3: Initialize Redis Clients ────
	var pubsubClient *redis.Client
	var kvClient *redis.Client
	if cfg.RedisURL != "" {
		redisClients, err := database.NewRedisClients(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClients.Close()
		pubsubClient = redisClients.PubSub
		kvClient = redisClients.KV
		log.Println("✓ Redis connected")
	}

	// ──── Step 4: Session Storage ────
	var kv storage.KV
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		kv = storage.NewRedisKV(kvClient, "tuition:", services.ExpiryWindow)
	case config.SessionStoreFile:
		fileKV, err := storage.NewFileKV(cfg.SessionFile)
		if err != nil {
			log.Fatalf("✗ Session file unavailable: %v", err)
		}
		kv = fileKV
	default:
		kv = storage.NewMemoryKV()
	}
	log.Printf("✓ Session store: %s", cfg.SessionStore)

	var verifier services.CredentialVerifier = services.AcceptAnyPassword{}
	if cfg.AuthMode == config.AuthModeDemo {
		demo, err := services.NewDefaultDemoAccounts()
		if err != nil {
			log.Fatalf("✗ Demo accounts setup failed: %v", err)
		}
		verifier = demo
	}
	log.Printf("✓ Auth mode: %s", cfg.AuthMode)

	// ──── Step 5: Start WebSocket Hub ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	wsHub := websocket.NewHub(pubsubClient, jwtAuth)

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go wsHub.Run(hubCtx)
	log.Println("✓ WebSocket hub started")

	// ──── Initialize Services & Handlers ────
	sessions := services.NewSessions(kv, verifier)
	listingService := services.NewListingService(listingSource)
	tuitionService := services.NewTuitionService(tuitionStore, wsHub)

	sessionHandler := handlers.NewSessionHandler(sessions, jwtAuth, wsHub)
	listingHandler := handlers.NewListingHandler(listingService)
	tuitionHandler := handlers.NewTuitionHandler(tuitionService, sessions)

	clientIdentity := middleware.NewClientIdentity([]byte(cfg.CookieSecret), cfg.IsProduction())
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		clientIdentity,
		authLimiter,
		sessionHandler,
		listingHandler,
		tuitionHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		authLimiter.Stop()
		stopHub()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ CUET Tuition Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
