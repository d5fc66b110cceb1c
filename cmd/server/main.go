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
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"retailpulse/backend/internal/cache"
	"retailpulse/backend/internal/config"
	"retailpulse/backend/internal/generator"
	"retailpulse/backend/internal/httpapi"
	"retailpulse/backend/internal/metrics"
	"retailpulse/backend/internal/service"
	"retailpulse/backend/internal/store/memory"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	cfg := config.Load()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Printf("WARN: %v; using %s", err, loc)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	closers := make([]func() error, 0, 1)

	snapshots := cache.SnapshotCache(cache.NoopSnapshotCache{})
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisSnapshotCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable (%v), using noop snapshot cache", err)
		} else {
			snapshots = redisCache
			closers = append(closers, redisCache.Close)
			log.Println("snapshot cache: redis")
		}
	} else {
		log.Println("snapshot cache: noop")
	}

	m := metrics.New()
	gen := generator.New(generatorConfig(cfg, loc))
	svc := service.New(memory.New(), snapshots, gen, cfg.SnapshotTTL(), m)
	if err := svc.Preload(ctx); err != nil {
		log.Fatalf("preload store data: %v", err)
	}
	api := httpapi.New(svc, m, cfg.AllowedOrigin, cfg.RegeneratePerMinute)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("retail analytics backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}

func generatorConfig(cfg config.Config, loc *time.Location) generator.Config {
	return generator.Config{
		Seed:     cfg.DataSeed,
		Location: loc,
		Options: generator.Options{
			SKUCount:   cfg.SKUCount,
			OrderCount: cfg.OrderCount,
			RankedSKUs: generator.DefaultOptions().RankedSKUs,
		},
	}
}

func validateConfig(cfg config.Config) error {
	if cfg.AllowedOrigin == "" {
		return fmt.Errorf("ALLOWED_ORIGIN must be set")
	}
	if cfg.SKUCount > 10000 {
		return fmt.Errorf("SKU_COUNT must be at most 10000, got %d", cfg.SKUCount)
	}
	if cfg.OrderCount > 10000 {
		return fmt.Errorf("ORDER_COUNT must be at most 10000, got %d", cfg.OrderCount)
	}
	return nil
}
