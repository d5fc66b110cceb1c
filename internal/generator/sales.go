package generator

import (
	"math"
	"time"

	"retailpulse/backend/internal/domain"
)

const (
	SalesHistoryDays = 30

	baseDailyRevenue  = 50000.0
	averageOrderValue = 1200.0
	footfallConverts  = 0.30
	weekendBoost      = 1.3

	dateLayout      = "2006-01-02"
	orderDateLayout = "2006-01-02 15:04"
)

// GenerateSalesHistory returns one point per day for the 30 days ending on
// now's calendar day, oldest first. Days are independent draws apart from
// the shared weekend boost.
func GenerateSalesHistory(rng *Rand, now time.Time) []domain.SalesDataPoint {
	history := make([]domain.SalesDataPoint, 0, SalesHistoryDays)
	for i := SalesHistoryDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)

		factor := rng.Float(0.8, 1.2)
		boost := 1.0
		if isWeekend(date) {
			boost = weekendBoost
		}

		revenue := int64(math.Round(baseDailyRevenue * factor * boost))
		orders := int64(math.Round(float64(revenue) / averageOrderValue))
		footfall := int64(math.Round(float64(orders) / footfallConverts * rng.Float(0.8, 1.2)))

		history = append(history, domain.SalesDataPoint{
			Date:     date.Format(dateLayout),
			Revenue:  revenue,
			Orders:   orders,
			Footfall: footfall,
		})
	}
	return history
}

func TotalSales(history []domain.SalesDataPoint) int64 {
	var total int64
	for _, point := range history {
		total += point.Revenue
	}
	return total
}

func isWeekend(t time.Time) bool {
	day := t.Weekday()
	return day == time.Saturday || day == time.Sunday
}
