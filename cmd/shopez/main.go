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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"shopez/internal/cart"
	"shopez/internal/catalog"
	shopezhttp "shopez/internal/http"
	"shopez/internal/session"
	"shopez/internal/store"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	RedisPassword   string
	CatalogBaseURL  string
	SessionSecret   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	// A missing .env file is fine; everything has env defaults.
	_ = godotenv.Load()

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CatalogBaseURL:  getEnv("CATALOG_BASE_URL", catalog.DefaultBaseURL),
		SessionSecret:   getEnv("SESSION_SECRET", "dev-secret"),
		RequestTimeout:  15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Printf("Connected to cart store at %s", cfg.RedisAddr)

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cfg.RequestTimeout)
	cartStore := store.NewRedisStore(redisClient)
	cartService := cart.NewService(cartStore)
	verifier := session.NewVerifier(cfg.SessionSecret)
	sessions := session.NewHub()

	// Top-level identity-changed subscription: log the session gate as it
	// flips, the way the app root watched auth state.
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go func() {
		for id := range sessions.Watch(watchCtx) {
			if id == nil {
				log.Println("no active session")
			} else {
				log.Printf("session active for user %s", id.UserID)
			}
		}
	}()

	catalogHandler := shopezhttp.NewCatalogHandler(catalogClient, cfg.RequestTimeout)
	cartHandler := shopezhttp.NewCartHandler(cartService, catalogClient, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:        ":" + cfg.HTTPPort,
		Handler:     shopezhttp.NewRouter(catalogHandler, cartHandler, verifier, sessions),
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: the cart event stream stays open indefinitely.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("ShopEZ storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down storefront...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("storefront stopped")
}
