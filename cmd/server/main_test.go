package main

import (
	"testing"
	"time"

	"retailpulse/backend/internal/config"
)

func TestValidateConfigRejectsOversizedCatalog(t *testing.T) {
	err := validateConfig(config.Config{AllowedOrigin: "http://127.0.0.1:3000", SKUCount: 50000, OrderCount: 20})
	if err == nil {
		t.Fatalf("expected oversized SKU_COUNT to be rejected")
	}
}

func TestValidateConfigRejectsEmptyOrigin(t *testing.T) {
	if err := validateConfig(config.Config{SKUCount: 50, OrderCount: 20}); err == nil {
		t.Fatalf("expected empty origin to be rejected")
	}
}

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	err := validateConfig(config.Config{AllowedOrigin: "http://127.0.0.1:3000", SKUCount: 50, OrderCount: 20})
	if err != nil {
		t.Fatalf("expected defaults to pass, got %v", err)
	}
}

func TestGeneratorConfigCarriesSizing(t *testing.T) {
	cfg := config.Config{DataSeed: 99, SKUCount: 0, OrderCount: 12}
	got := generatorConfig(cfg, time.UTC)

	if got.Seed != 99 || got.Location != time.UTC {
		t.Fatalf("unexpected seed/location: %+v", got)
	}
	if got.Options.SKUCount != 0 || got.Options.OrderCount != 12 || got.Options.RankedSKUs != 5 {
		t.Fatalf("unexpected options: %+v", got.Options)
	}
}
