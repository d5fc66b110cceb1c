package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"retailpulse/backend/internal/cache"
	"retailpulse/backend/internal/domain"
	"retailpulse/backend/internal/generator"
	"retailpulse/backend/internal/metrics"
	"retailpulse/backend/internal/store"
	"retailpulse/backend/internal/xid"
)

const (
	stockValueShare     = 0.4
	deadStockUnitValue  = 2500
	defaultSnapshotTTL  = 24 * time.Hour
	snapshotReadTimeout = 2 * time.Second
)

// Service is the data provider handed to every consumer. It owns the
// generated record per store; a record is generated at most once at a time
// per store and published whole.
type Service struct {
	repo        store.Repository
	snapshots   cache.SnapshotCache
	generator   *generator.Generator
	snapshotTTL time.Duration
	metrics     *metrics.Metrics
	inflight    singleflight.Group
}

func New(repo store.Repository, snapshots cache.SnapshotCache, gen *generator.Generator, snapshotTTL time.Duration, m *metrics.Metrics) *Service {
	if snapshots == nil {
		snapshots = cache.NoopSnapshotCache{}
	}
	if gen == nil {
		gen = generator.New(generator.Config{})
	}
	if snapshotTTL <= 0 {
		snapshotTTL = defaultSnapshotTTL
	}

	return &Service{
		repo:        repo,
		snapshots:   snapshots,
		generator:   gen,
		snapshotTTL: snapshotTTL,
		metrics:     m,
	}
}

// Preload builds every store's record. It runs once before the server
// starts accepting requests.
func (s *Service) Preload(ctx context.Context) error {
	for _, id := range domain.AllStores() {
		if _, err := s.load(ctx, id, metrics.TriggerPreload, false); err != nil {
			return fmt.Errorf("preload %s: %w", id, err)
		}
	}
	return nil
}

func (s *Service) StoreData(ctx context.Context, rawStoreID string) (*domain.StoreData, error) {
	id, ok := domain.ParseStoreID(rawStoreID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownStore, rawStoreID)
	}

	data, err := s.repo.GetStoreData(ctx, id)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return s.load(ctx, id, metrics.TriggerLookup, false)
}

// Regenerate replaces a store's record with a freshly generated one.
// Callers that arrive while a generation for the same store is running share
// its result instead of starting another.
func (s *Service) Regenerate(ctx context.Context, rawStoreID string) (*domain.StoreData, error) {
	id, ok := domain.ParseStoreID(rawStoreID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownStore, rawStoreID)
	}
	return s.load(ctx, id, metrics.TriggerRegenerate, true)
}

func (s *Service) load(ctx context.Context, id domain.StoreID, trigger string, force bool) (*domain.StoreData, error) {
	result, err, _ := s.inflight.Do(string(id), func() (any, error) {
		if !force {
			if data, err := s.repo.GetStoreData(ctx, id); err == nil {
				return data, nil
			}
			if snapshot := s.readSnapshot(ctx, id); snapshot != nil {
				log.Printf("[service] store=%s revision=%s loaded from snapshot cache", id, snapshot.Revision)
				return s.repo.PutStoreData(ctx, *snapshot)
			}
		}

		startedAt := time.Now()
		data := s.generator.Generate(id)
		data.Revision = xid.New("rev")
		took := time.Since(startedAt)
		s.metrics.ObserveGeneration(string(id), trigger, took)

		published, err := s.repo.PutStoreData(ctx, data)
		if err != nil {
			return nil, err
		}
		if err := s.snapshots.Set(ctx, published, s.snapshotTTL); err != nil {
			log.Printf("[service] WARN: snapshot cache write failed store=%s: %v", id, err)
		}

		log.Printf("[service] generated store=%s revision=%s trigger=%s total_sales=%d took=%s",
			id, published.Revision, trigger, published.KPI.TotalSales, took)
		return published, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.StoreData), nil
}

func (s *Service) readSnapshot(ctx context.Context, id domain.StoreID) *domain.StoreData {
	readCtx, cancel := context.WithTimeout(ctx, snapshotReadTimeout)
	defer cancel()

	snapshot, ok, err := s.snapshots.Get(readCtx, id)
	switch {
	case err != nil:
		s.metrics.ObserveSnapshot(metrics.SnapshotError)
		log.Printf("[service] WARN: snapshot cache read failed store=%s: %v", id, err)
		return nil
	case !ok:
		s.metrics.ObserveSnapshot(metrics.SnapshotMiss)
		return nil
	}
	s.metrics.ObserveSnapshot(metrics.SnapshotHit)
	return snapshot
}

func (s *Service) ListStores(ctx context.Context) ([]domain.StoreSummary, error) {
	summaries := make([]domain.StoreSummary, 0, len(domain.AllStores()))
	for _, id := range domain.AllStores() {
		data, err := s.StoreData(ctx, string(id))
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, domain.StoreSummary{
			Store:       domain.StoreInfo(id),
			Revision:    data.Revision,
			GeneratedAt: data.GeneratedAt,
			TotalSales:  data.KPI.TotalSales,
		})
	}
	return summaries, nil
}

func (s *Service) KPI(ctx context.Context, rawStoreID string) (domain.KPI, error) {
	data, err := s.StoreData(ctx, rawStoreID)
	if err != nil {
		return domain.KPI{}, err
	}
	return data.KPI, nil
}

func (s *Service) SalesOverview(ctx context.Context, rawStoreID string) (domain.SalesOverview, error) {
	data, err := s.StoreData(ctx, rawStoreID)
	if err != nil {
		return domain.SalesOverview{}, err
	}
	return domain.SalesOverview{
		StoreID:             data.StoreID,
		TotalSales:          data.KPI.TotalSales,
		History:             data.SalesHistory,
		CategoryPerformance: data.CategoryPerformance,
		PaymentStats:        data.PaymentStats,
	}, nil
}

func (s *Service) InventorySummary(ctx context.Context, rawStoreID string) (domain.InventorySummary, error) {
	data, err := s.StoreData(ctx, rawStoreID)
	if err != nil {
		return domain.InventorySummary{}, err
	}
	return summarizeInventory(data), nil
}

func summarizeInventory(data *domain.StoreData) domain.InventorySummary {
	return domain.InventorySummary{
		StoreID:        data.StoreID,
		StockValue:     int64(math.Round(float64(data.KPI.TotalSales) * stockValueShare)),
		LowStockSKUs:   data.KPI.OutOfStockRisk,
		DeadStockValue: int64(data.KPI.OverstockAlerts) * deadStockUnitValue,
		Alerts:         data.InventoryAlerts,
		TopSKUs:        data.TopSKUs,
		SlowSKUs:       data.SlowSKUs,
	}
}

// FilterOrders narrows the recent orders by status (exact, case-insensitive)
// and by a free-text query over order id and customer name.
func (s *Service) FilterOrders(ctx context.Context, rawStoreID string, status string, query string) ([]domain.Order, error) {
	data, err := s.StoreData(ctx, rawStoreID)
	if err != nil {
		return nil, err
	}
	return filterOrders(data.RecentOrders, status, query)
}

func filterOrders(orders []domain.Order, status string, query string) ([]domain.Order, error) {
	status = strings.TrimSpace(status)
	var wantStatus domain.OrderStatus
	if status != "" {
		parsed, ok := parseOrderStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: status %q", store.ErrInvalidFilter, status)
		}
		wantStatus = parsed
	}
	query = strings.ToLower(strings.TrimSpace(query))

	result := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if wantStatus != "" && order.Status != wantStatus {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(order.ID), query) &&
			!strings.Contains(strings.ToLower(order.CustomerName), query) {
			continue
		}
		result = append(result, order)
	}
	return result, nil
}

func parseOrderStatus(raw string) (domain.OrderStatus, bool) {
	for _, status := range []domain.OrderStatus{domain.OrderCompleted, domain.OrderPending, domain.OrderReturned, domain.OrderCancelled} {
		if strings.EqualFold(raw, string(status)) {
			return status, true
		}
	}
	return "", false
}

func (s *Service) SearchDistricts(ctx context.Context, rawStoreID string, query string) ([]domain.RegionalSales, error) {
	data, err := s.StoreData(ctx, rawStoreID)
	if err != nil {
		return nil, err
	}
	return searchDistricts(data.RegionalSales, query), nil
}

func searchDistricts(regions []domain.RegionalSales, query string) []domain.RegionalSales {
	query = strings.ToLower(strings.TrimSpace(query))
	result := make([]domain.RegionalSales, 0, len(regions))
	for _, region := range regions {
		if query == "" || strings.Contains(strings.ToLower(region.Region), query) {
			result = append(result, region)
		}
	}
	return result
}

func (s *Service) Campaigns(ctx context.Context, rawStoreID string) ([]domain.VMCampaign, error) {
	data, err := s.StoreData(ctx, rawStoreID)
	if err != nil {
		return nil, err
	}
	return data.VMCampaigns, nil
}

func (s *Service) Documents(ctx context.Context, rawStoreID string) ([]domain.Document, error) {
	data, err := s.StoreData(ctx, rawStoreID)
	if err != nil {
		return nil, err
	}
	return data.Documents, nil
}
