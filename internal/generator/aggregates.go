package generator

import (
	"math"
	"sort"

	"retailpulse/backend/internal/domain"
)

const (
	MaxInventoryAlerts = 5

	outOfStockBelow = 10

	lowStockMessage = "Stock critical. Replenish immediately."
	highAgeMessage  = "Item is not moving. Visual change recommended."
)

func BuildKPI(rng *Rand, totalSales int64, skus []domain.SKU) domain.KPI {
	kpi := domain.KPI{
		TotalSales:       totalSales,
		SalesGrowth:      rng.Float(5, 20),
		ConversionRate:   rng.Float(15, 35),
		ConversionImpact: rng.Float(2, 5),
		StockVelocity:    rng.Float(50, 150),
	}
	for _, sku := range skus {
		if sku.StockOnHand < outOfStockBelow {
			kpi.OutOfStockRisk++
		}
		if sku.Status == domain.SKUStatusDeadStock {
			kpi.OverstockAlerts++
		}
	}
	kpi.VMCompliance = rng.Int(80, 99)
	return kpi
}

// BuildCategoryPerformance draws each category's share independently against
// the same total; the percentages are not normalized to 100.
func BuildCategoryPerformance(rng *Rand, totalSales int64) []domain.CategoryPerformance {
	lo := int64(math.Ceil(float64(totalSales) * 0.1))
	hi := int64(math.Floor(float64(totalSales) * 0.3))

	result := make([]domain.CategoryPerformance, 0, len(categories))
	for _, category := range categories {
		revenue := rng.Int64(lo, hi)
		result = append(result, domain.CategoryPerformance{
			Category:   category,
			Revenue:    revenue,
			Percentage: percentOf(revenue, totalSales),
			Growth:     rng.Float(-5, 15),
		})
	}
	return result
}

// BuildInventoryAlerts keeps catalog order and stops at MaxInventoryAlerts.
func BuildInventoryAlerts(skus []domain.SKU) []domain.InventoryAlert {
	alerts := make([]domain.InventoryAlert, 0, MaxInventoryAlerts)
	for _, sku := range skus {
		if len(alerts) == MaxInventoryAlerts {
			break
		}
		deadStock := sku.Status == domain.SKUStatusDeadStock
		if !sku.ReplenishmentNeeded && !deadStock {
			continue
		}

		alert := domain.InventoryAlert{
			ID:       "ALERT-" + sku.ID,
			SKUID:    sku.ID,
			SKUName:  sku.Name,
			Type:     domain.AlertTypeLowStock,
			Severity: domain.AlertSeverityCritical,
			Message:  lowStockMessage,
		}
		if deadStock {
			alert.Type = domain.AlertTypeHighAge
			alert.Severity = domain.AlertSeverityWarning
			alert.Message = highAgeMessage
		}
		alerts = append(alerts, alert)
	}
	return alerts
}

// BuildPaymentStats splits totalSales 45/35/20. Cash takes the remainder so
// the three amounts always add back up to totalSales.
func BuildPaymentStats(totalSales int64) []domain.PaymentStat {
	upi := int64(math.Round(float64(totalSales) * 0.45))
	card := int64(math.Round(float64(totalSales) * 0.35))
	cash := totalSales - upi - card

	return []domain.PaymentStat{
		{Method: domain.PaymentUPI, Amount: upi, Percentage: 45},
		{Method: domain.PaymentCard, Amount: card, Percentage: 35},
		{Method: domain.PaymentCash, Amount: cash, Percentage: 20},
	}
}

var districts = []string{
	"Chennai", "Coimbatore", "Tiruppur",
	"Madurai", "Tiruchirappalli", "Salem",
	"Tirunelveli", "Erode", "Vellore", "Thoothukkudi",
	"Kancheepuram", "Thiruvallur", "Cuddalore", "Dindigul",
}

var districtMultipliers = map[string]float64{
	"Chennai":         5.0,
	"Coimbatore":      4.0,
	"Tiruppur":        3.5,
	"Madurai":         1.5,
	"Tiruchirappalli": 1.5,
	"Salem":           1.5,
}

func Districts() []string {
	return append([]string(nil), districts...)
}

func isTopDistrict(region string) bool {
	return region == "Chennai" || region == "Coimbatore" || region == "Tiruppur"
}

// BuildRegionalSales spreads totalSales over the fixed districts. The top
// three get a tight variance band so Chennai > Coimbatore > Tiruppur holds
// for every draw; everyone else gets a wide band.
func BuildRegionalSales(rng *Rand, totalSales int64) []domain.RegionalSales {
	baseAmount := float64(totalSales) / 15

	result := make([]domain.RegionalSales, 0, len(districts))
	for _, region := range districts {
		multiplier, ok := districtMultipliers[region]
		if !ok {
			multiplier = rng.Float(0.3, 0.8)
		}

		var variance float64
		if isTopDistrict(region) {
			variance = rng.Float(0.95, 1.05)
		} else {
			variance = rng.Float(0.5, 1.5)
		}

		result = append(result, domain.RegionalSales{
			Region: region,
			Sales:  int64(math.Round(baseAmount * multiplier * variance)),
			Growth: rng.Float(-5, 20),
		})
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Sales > result[j].Sales })
	for i := range result {
		result[i].Percentage = percentOf(result[i].Sales, totalSales)
	}
	return result
}

func percentOf(part int64, total int64) int64 {
	if total == 0 {
		return 0
	}
	return int64(math.Round(float64(part) / float64(total) * 100))
}
