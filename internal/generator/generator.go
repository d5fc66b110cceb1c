// Package generator builds the synthetic per-store analytics record. Every
// function takes its random source explicitly, so a fixed seed and a fixed
// clock reproduce the same record byte for byte.
package generator

import (
	"time"

	"retailpulse/backend/internal/domain"
)

type Options struct {
	SKUCount   int
	OrderCount int
	RankedSKUs int
}

func DefaultOptions() Options {
	return Options{SKUCount: 50, OrderCount: 20, RankedSKUs: 5}
}

// withDefaults swaps a zero Options for the defaults. A partially set Options
// keeps an explicit zero SKU or order count.
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o == (Options{}) {
		return defaults
	}
	if o.SKUCount < 0 {
		o.SKUCount = 0
	}
	if o.OrderCount < 0 {
		o.OrderCount = 0
	}
	if o.RankedSKUs <= 0 {
		o.RankedSKUs = defaults.RankedSKUs
	}
	return o
}

// GenerateStoreData assembles one store's record. The step order matters:
// later aggregators consume the totals and SKUs drawn earlier, and the
// random draws happen in a fixed sequence.
func GenerateStoreData(rng *Rand, now time.Time, storeID domain.StoreID, opts Options) domain.StoreData {
	opts = opts.withDefaults()

	history := GenerateSalesHistory(rng, now)
	totalSales := TotalSales(history)

	skus := GenerateSKUs(rng, now, opts.SKUCount)
	topSKUs := TopSKUs(skus, opts.RankedSKUs)
	slowSKUs := SlowSKUs(skus, opts.RankedSKUs)
	alerts := BuildInventoryAlerts(skus)

	kpi := BuildKPI(rng, totalSales, skus)
	categoryPerformance := BuildCategoryPerformance(rng, totalSales)
	campaigns := GenerateVMCampaigns(rng, now)
	turnover := rng.Float(3, 8)
	orders := GenerateOrders(rng, now, opts.OrderCount)

	return domain.StoreData{
		StoreID:             storeID,
		GeneratedAt:         now,
		KPI:                 kpi,
		SalesHistory:        history,
		CategoryPerformance: categoryPerformance,
		TopSKUs:             topSKUs,
		SlowSKUs:            slowSKUs,
		VMCampaigns:         campaigns,
		InventoryAlerts:     alerts,
		InventoryTurnover:   turnover,
		RecentOrders:        orders,
		Documents:           Documents(),
		PaymentStats:        BuildPaymentStats(totalSales),
		RegionalSales:       BuildRegionalSales(rng, totalSales),
	}
}

type Config struct {
	// Seed fixes the random sequence per store. Zero seeds from the clock.
	Seed     int64
	Location *time.Location
	Now      func() time.Time
	Options  Options
}

// Generator binds a clock, a seed policy and sizing options so callers only
// need a store identifier.
type Generator struct {
	seed     int64
	location *time.Location
	now      func() time.Time
	opts     Options
}

func New(cfg Config) *Generator {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Generator{
		seed:     cfg.Seed,
		location: cfg.Location,
		now:      cfg.Now,
		opts:     cfg.Options.withDefaults(),
	}
}

func (g *Generator) Generate(storeID domain.StoreID) domain.StoreData {
	now := g.now().In(g.location)
	base := g.seed
	if base == 0 {
		base = now.UnixNano()
	}
	return GenerateStoreData(NewRand(SeedFor(base, storeID)), now, storeID, g.opts)
}

func (g *Generator) Options() Options {
	return g.opts
}
