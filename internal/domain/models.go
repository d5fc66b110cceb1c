package domain

import (
	"strings"
	"time"
)

type StoreID string

const (
	StoreTirupur    StoreID = "Tirupur"
	StoreCoimbatore StoreID = "Coimbatore"
	StoreChennai    StoreID = "Chennai"
)

// AllStores returns the fixed store identifiers in dashboard order.
func AllStores() []StoreID {
	return []StoreID{StoreTirupur, StoreCoimbatore, StoreChennai}
}

// ParseStoreID matches raw against the fixed identifiers, ignoring case.
func ParseStoreID(raw string) (StoreID, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, id := range AllStores() {
		if strings.EqualFold(trimmed, string(id)) {
			return id, true
		}
	}
	return "", false
}

type Store struct {
	ID       StoreID `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Location string  `json:"location" yaml:"location"`
}

func StoreInfo(id StoreID) Store {
	return Store{ID: id, Name: string(id), Location: string(id) + ", Tamil Nadu"}
}

type SalesDataPoint struct {
	Date     string `json:"date" yaml:"date"`
	Revenue  int64  `json:"revenue" yaml:"revenue"`
	Orders   int64  `json:"orders" yaml:"orders"`
	Footfall int64  `json:"footfall" yaml:"footfall"`
}

type SKUStatus string

const (
	SKUStatusFastMoving SKUStatus = "Fast Moving"
	SKUStatusSlowMoving SKUStatus = "Slow Moving"
	SKUStatusNormal     SKUStatus = "Normal"
	SKUStatusDeadStock  SKUStatus = "Dead Stock"
)

type SKU struct {
	ID                  string    `json:"id" yaml:"id"`
	Name                string    `json:"name" yaml:"name"`
	Category            string    `json:"category" yaml:"category"`
	Price               int64     `json:"price" yaml:"price"`
	StockOnHand         int       `json:"stockOnHand" yaml:"stockOnHand"`
	SellThroughRate     float64   `json:"sellThroughRate" yaml:"sellThroughRate"`
	DaysSalesInventory  int       `json:"daysSalesInventory" yaml:"daysSalesInventory"`
	Status              SKUStatus `json:"status" yaml:"status"`
	ReplenishmentNeeded bool      `json:"replenishmentNeeded" yaml:"replenishmentNeeded"`
	ReplenishmentQty    int       `json:"replenishmentQty" yaml:"replenishmentQty"`
	LastRestocked       string    `json:"lastRestocked" yaml:"lastRestocked"`
	ImageURL            string    `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

type AlertType string

const (
	AlertTypeLowStock  AlertType = "Low Stock"
	AlertTypeOverstock AlertType = "Overstock"
	AlertTypeHighAge   AlertType = "High Age"
)

type AlertSeverity string

const (
	AlertSeverityCritical AlertSeverity = "Critical"
	AlertSeverityWarning  AlertSeverity = "Warning"
	AlertSeverityInfo     AlertSeverity = "Info"
)

type InventoryAlert struct {
	ID       string        `json:"id" yaml:"id"`
	SKUID    string        `json:"skuId" yaml:"skuId"`
	SKUName  string        `json:"skuName" yaml:"skuName"`
	Type     AlertType     `json:"type" yaml:"type"`
	Severity AlertSeverity `json:"severity" yaml:"severity"`
	Message  string        `json:"message" yaml:"message"`
}

type KPI struct {
	TotalSales       int64   `json:"totalSales" yaml:"totalSales"`
	SalesGrowth      float64 `json:"salesGrowth" yaml:"salesGrowth"`
	ConversionRate   float64 `json:"conversionRate" yaml:"conversionRate"`
	ConversionImpact float64 `json:"conversionImpact" yaml:"conversionImpact"`
	StockVelocity    float64 `json:"stockVelocity" yaml:"stockVelocity"`
	OutOfStockRisk   int     `json:"outOfStockRisk" yaml:"outOfStockRisk"`
	OverstockAlerts  int     `json:"overstockAlerts" yaml:"overstockAlerts"`
	VMCompliance     int     `json:"vmCompliance" yaml:"vmCompliance"`
}

type CategoryPerformance struct {
	Category   string  `json:"category" yaml:"category"`
	Revenue    int64   `json:"revenue" yaml:"revenue"`
	Percentage int64   `json:"percentage" yaml:"percentage"`
	Growth     float64 `json:"growth" yaml:"growth"`
}

type AuditResult string

const (
	AuditPass    AuditResult = "Pass"
	AuditFail    AuditResult = "Fail"
	AuditWarning AuditResult = "Warning"
)

type VMCampaign struct {
	CampaignName        string      `json:"campaignName" yaml:"campaignName"`
	StartDate           string      `json:"startDate" yaml:"startDate"`
	EndDate             string      `json:"endDate" yaml:"endDate"`
	ComplianceScore     int         `json:"complianceScore" yaml:"complianceScore"`
	SalesUplift         float64     `json:"salesUplift" yaml:"salesUplift"`
	BeforeSales         int64       `json:"beforeSales" yaml:"beforeSales"`
	AfterSales          int64       `json:"afterSales" yaml:"afterSales"`
	AuditResult         AuditResult `json:"auditResult" yaml:"auditResult"`
	WindowDisplayRating float64     `json:"windowDisplayRating" yaml:"windowDisplayRating"`
	FloorDisplayRating  float64     `json:"floorDisplayRating" yaml:"floorDisplayRating"`
}

type OrderStatus string

const (
	OrderCompleted OrderStatus = "Completed"
	OrderPending   OrderStatus = "Pending"
	OrderReturned  OrderStatus = "Returned"
	OrderCancelled OrderStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "Card"
	PaymentCash PaymentMethod = "Cash"
)

type Order struct {
	ID            string        `json:"id" yaml:"id"`
	CustomerName  string        `json:"customerName" yaml:"customerName"`
	Date          string        `json:"date" yaml:"date"`
	Items         int           `json:"items" yaml:"items"`
	Total         int64         `json:"total" yaml:"total"`
	Status        OrderStatus   `json:"status" yaml:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod" yaml:"paymentMethod"`
}

type DocumentType string

const (
	DocumentInvoice DocumentType = "Invoice"
	DocumentReport  DocumentType = "Report"
	DocumentAudit   DocumentType = "Audit"
	DocumentPolicy  DocumentType = "Policy"
)

type Document struct {
	ID    string       `json:"id" yaml:"id"`
	Title string       `json:"title" yaml:"title"`
	Type  DocumentType `json:"type" yaml:"type"`
	Date  string       `json:"date" yaml:"date"`
	Size  string       `json:"size" yaml:"size"`
}

type PaymentStat struct {
	Method     PaymentMethod `json:"method" yaml:"method"`
	Amount     int64         `json:"amount" yaml:"amount"`
	Percentage int64         `json:"percentage" yaml:"percentage"`
}

type RegionalSales struct {
	Region     string  `json:"region" yaml:"region"`
	Sales      int64   `json:"sales" yaml:"sales"`
	Growth     float64 `json:"growth" yaml:"growth"`
	Percentage int64   `json:"percentage" yaml:"percentage"`
}

// StoreData is the per-store aggregate. It is never mutated after it has
// been published; regeneration replaces it wholesale.
type StoreData struct {
	StoreID             StoreID               `json:"storeId" yaml:"storeId"`
	Revision            string                `json:"revision,omitempty" yaml:"revision,omitempty"`
	GeneratedAt         time.Time             `json:"generatedAt" yaml:"generatedAt"`
	KPI                 KPI                   `json:"kpi" yaml:"kpi"`
	SalesHistory        []SalesDataPoint      `json:"salesHistory" yaml:"salesHistory"`
	CategoryPerformance []CategoryPerformance `json:"categoryPerformance" yaml:"categoryPerformance"`
	TopSKUs             []SKU                 `json:"topSkus" yaml:"topSkus"`
	SlowSKUs            []SKU                 `json:"slowSkus" yaml:"slowSkus"`
	VMCampaigns         []VMCampaign          `json:"vmCampaigns" yaml:"vmCampaigns"`
	InventoryAlerts     []InventoryAlert      `json:"inventoryAlerts" yaml:"inventoryAlerts"`
	InventoryTurnover   float64               `json:"inventoryTurnover" yaml:"inventoryTurnover"`
	RecentOrders        []Order               `json:"recentOrders" yaml:"recentOrders"`
	Documents           []Document            `json:"documents" yaml:"documents"`
	PaymentStats        []PaymentStat         `json:"paymentStats" yaml:"paymentStats"`
	RegionalSales       []RegionalSales       `json:"regionalSales" yaml:"regionalSales"`
}

type StoreSummary struct {
	Store       Store     `json:"store"`
	Revision    string    `json:"revision"`
	GeneratedAt time.Time `json:"generatedAt"`
	TotalSales  int64     `json:"totalSales"`
}

type InventorySummary struct {
	StoreID        StoreID          `json:"storeId"`
	StockValue     int64            `json:"stockValue"`
	LowStockSKUs   int              `json:"lowStockSkus"`
	DeadStockValue int64            `json:"deadStockValue"`
	Alerts         []InventoryAlert `json:"alerts"`
	TopSKUs        []SKU            `json:"topSkus"`
	SlowSKUs       []SKU            `json:"slowSkus"`
}

type SalesOverview struct {
	StoreID             StoreID               `json:"storeId"`
	TotalSales          int64                 `json:"totalSales"`
	History             []SalesDataPoint      `json:"history"`
	CategoryPerformance []CategoryPerformance `json:"categoryPerformance"`
	PaymentStats        []PaymentStat         `json:"paymentStats"`
}
