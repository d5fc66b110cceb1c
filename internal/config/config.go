package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                string
	AllowedOrigin       string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	SnapshotTTLSeconds  int
	DataSeed            int64
	SKUCount            int
	OrderCount          int
	Timezone            string
	RegeneratePerMinute int
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	seed, err := strconv.ParseInt(getEnv("DATA_SEED", "0"), 10, 64)
	if err != nil {
		seed = 0
	}

	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		AllowedOrigin:       getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             redisDB,
		SnapshotTTLSeconds:  positiveInt("SNAPSHOT_TTL_SECONDS", 86400),
		DataSeed:            seed,
		SKUCount:            nonNegativeInt("SKU_COUNT", 50),
		OrderCount:          nonNegativeInt("ORDER_COUNT", 20),
		Timezone:            strings.TrimSpace(getEnv("TIMEZONE", "Asia/Kolkata")),
		RegeneratePerMinute: positiveInt("REGENERATE_PER_MINUTE", 6),
	}

	return cfg
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func (c Config) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLSeconds) * time.Second
}

// Location resolves Timezone, falling back to the host zone when the name
// is unknown.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func positiveInt(key string, fallback int) int {
	val, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil || val < 1 {
		return fallback
	}
	return val
}

func nonNegativeInt(key string, fallback int) int {
	val, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil || val < 0 {
		return fallback
	}
	return val
}
