package generator

import (
	"fmt"
	"sort"
	"time"

	"retailpulse/backend/internal/domain"
)

var customerNames = []string{
	"Priya M", "Divya S", "Karthik R", "Anitha K",
	"Rahul V", "Sangeetha P", "Lakshmi N", "Vikram S",
}

// GenerateOrders returns count orders from the past week, newest first.
// Status and payment method each come from two sequential threshold draws,
// so the split is roughly 72/18/10 and 40/42/18 rather than clean fixed odds.
func GenerateOrders(rng *Rand, now time.Time, count int) []domain.Order {
	if count <= 0 {
		return []domain.Order{}
	}

	orders := make([]domain.Order, 0, count)
	for i := 0; i < count; i++ {
		orders = append(orders, domain.Order{
			ID:            fmt.Sprintf("ORD-%d", rng.Int(10000, 99999)),
			CustomerName:  customerNames[rng.Int(0, len(customerNames)-1)],
			Date:          now.AddDate(0, 0, -rng.Int(0, 7)).Format(orderDateLayout),
			Items:         rng.Int(1, 5),
			Total:         int64(rng.Int(800, 8000)),
			Status:        drawOrderStatus(rng),
			PaymentMethod: drawPaymentMethod(rng),
		})
	}

	// The layout is fixed width, so string order is chronological order.
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Date > orders[j].Date })
	return orders
}

func drawOrderStatus(rng *Rand) domain.OrderStatus {
	if rng.Chance() > 0.9 {
		return domain.OrderReturned
	}
	if rng.Chance() > 0.8 {
		return domain.OrderPending
	}
	return domain.OrderCompleted
}

func drawPaymentMethod(rng *Rand) domain.PaymentMethod {
	if rng.Chance() > 0.6 {
		return domain.PaymentUPI
	}
	if rng.Chance() > 0.3 {
		return domain.PaymentCard
	}
	return domain.PaymentCash
}

func Documents() []domain.Document {
	return []domain.Document{
		{ID: "DOC-001", Title: "Monthly Sales Report - Nov", Type: domain.DocumentReport, Date: "2024-12-01", Size: "2.4 MB"},
		{ID: "DOC-002", Title: "VM Audit Checklist", Type: domain.DocumentAudit, Date: "2024-12-10", Size: "1.1 MB"},
		{ID: "DOC-003", Title: "Inventory Stock Sheet", Type: domain.DocumentReport, Date: "2024-12-22", Size: "4.5 MB"},
		{ID: "DOC-004", Title: "Festive Campaign Guidelines", Type: domain.DocumentPolicy, Date: "2024-11-20", Size: "8.2 MB"},
		{ID: "DOC-005", Title: "Invoice #INV-2024-001", Type: domain.DocumentInvoice, Date: "2024-12-20", Size: "150 KB"},
	}
}

func GenerateVMCampaigns(rng *Rand, now time.Time) []domain.VMCampaign {
	daysAgo := func(n int) string {
		return now.AddDate(0, 0, -n).Format(dateLayout)
	}

	fair := domain.VMCampaign{
		CampaignName:        "Newborn Essentials Fair",
		StartDate:           daysAgo(45),
		EndDate:             daysAgo(15),
		ComplianceScore:     rng.Int(85, 98),
		SalesUplift:         rng.Float(12, 25),
		BeforeSales:         int64(rng.Int(40000, 45000)),
		AfterSales:          int64(rng.Int(50000, 60000)),
		AuditResult:         domain.AuditPass,
		WindowDisplayRating: 4.5,
		FloorDisplayRating:  4.2,
	}

	diwali := domain.VMCampaign{
		CampaignName:        "Diwali Kids Collection",
		StartDate:           daysAgo(90),
		EndDate:             daysAgo(80),
		ComplianceScore:     rng.Int(90, 100),
		SalesUplift:         rng.Float(30, 50),
		BeforeSales:         int64(rng.Int(45000, 50000)),
		AfterSales:          int64(rng.Int(70000, 90000)),
		AuditResult:         domain.AuditPass,
		WindowDisplayRating: 5.0,
		FloorDisplayRating:  4.9,
	}

	summer := domain.VMCampaign{
		CampaignName:        "Summer Cotton Fest",
		StartDate:           daysAgo(10),
		EndDate:             daysAgo(0),
		ComplianceScore:     rng.Int(70, 90),
		SalesUplift:         rng.Float(5, 15),
		BeforeSales:         int64(rng.Int(42000, 48000)),
		AfterSales:          int64(rng.Int(45000, 55000)),
		AuditResult:         domain.AuditPass,
		WindowDisplayRating: 3.8,
		FloorDisplayRating:  4.0,
	}
	if rng.Int(0, 1) == 1 {
		summer.AuditResult = domain.AuditWarning
	}

	return []domain.VMCampaign{fair, diwali, summer}
}
