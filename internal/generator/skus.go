package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"retailpulse/backend/internal/domain"
)

const (
	firstSKUNumber = 1000

	replenishStockBelow   = 20
	replenishSellThrough  = 50.0
	fastMovingSellThrough = 80.0
	slowMovingSellThrough = 20.0
	deadStockOnHand       = 100
	deadStockSellThrough  = 15.0
)

var categories = []string{
	"Newborn Essentials",
	"Toddler Boys",
	"Toddler Girls",
	"Baby Gear",
	"Feeding & Nursing",
	"Toys & Gifts",
}

var productTypes = []string{
	"Cotton Romper", "Muslin Swaddle", "Diaper Bag", "Feeding Bottle", "Soft Toy",
	"Party Dress", "Denim Dungaree", "Baby Walker", "Teether Set", "Crib Sheet",
}

// Categories returns the fixed merchandise categories.
func Categories() []string {
	return append([]string(nil), categories...)
}

func GenerateSKUs(rng *Rand, now time.Time, count int) []domain.SKU {
	if count <= 0 {
		return []domain.SKU{}
	}

	skus := make([]domain.SKU, 0, count)
	for i := 0; i < count; i++ {
		category := categories[rng.Int(0, len(categories)-1)]
		productType := productTypes[rng.Int(0, len(productTypes)-1)]
		price := rng.Int(299, 3999)
		stock := rng.Int(0, 150)
		sellThrough := rng.Float(10, 95)
		daysSalesInventory := rng.Int(5, 120)

		// Quantity only looks at stock; the needed flag also wants velocity.
		replenishQty := 0
		if stock < replenishStockBelow {
			replenishQty = rng.Int(50, 100)
		}
		restocked := now.AddDate(0, 0, -rng.Int(1, 60))

		skus = append(skus, domain.SKU{
			ID:                  fmt.Sprintf("SKU-%d", firstSKUNumber+i),
			Name:                fmt.Sprintf("Premium %s - %s", productType, strings.Fields(category)[0]),
			Category:            category,
			Price:               int64(price),
			StockOnHand:         stock,
			SellThroughRate:     sellThrough,
			DaysSalesInventory:  daysSalesInventory,
			Status:              ClassifySKU(stock, sellThrough),
			ReplenishmentNeeded: stock < replenishStockBelow && sellThrough > replenishSellThrough,
			ReplenishmentQty:    replenishQty,
			LastRestocked:       restocked.Format(dateLayout),
		})
	}
	return skus
}

// ClassifySKU applies the status rules in order; later rules win.
func ClassifySKU(stockOnHand int, sellThroughRate float64) domain.SKUStatus {
	status := domain.SKUStatusNormal
	if sellThroughRate > fastMovingSellThrough {
		status = domain.SKUStatusFastMoving
	}
	if sellThroughRate < slowMovingSellThrough {
		status = domain.SKUStatusSlowMoving
	}
	if stockOnHand > deadStockOnHand && sellThroughRate < deadStockSellThrough {
		status = domain.SKUStatusDeadStock
	}
	return status
}

// TopSKUs returns up to n SKUs with the highest sell-through, without
// reordering the input.
func TopSKUs(skus []domain.SKU, n int) []domain.SKU {
	return rankSKUs(skus, n, func(a, b domain.SKU) bool {
		return a.SellThroughRate > b.SellThroughRate
	})
}

func SlowSKUs(skus []domain.SKU, n int) []domain.SKU {
	return rankSKUs(skus, n, func(a, b domain.SKU) bool {
		return a.SellThroughRate < b.SellThroughRate
	})
}

func rankSKUs(skus []domain.SKU, n int, less func(a, b domain.SKU) bool) []domain.SKU {
	ranked := append([]domain.SKU{}, skus...)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
