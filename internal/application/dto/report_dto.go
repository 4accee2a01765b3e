package dto

import "github.com/shopspring/decimal"

// DashboardResponse conteos generales y alertas de stock para el panel.
type DashboardResponse struct {
	Products  int64             `json:"products"`
	Clients   int64             `json:"clients"`
	Providers int64             `json:"providers"`
	Sales     int64             `json:"sales"`
	Purchases int64             `json:"purchases"`
	LowStock  []ProductResponse `json:"low_stock"`
}

// MonthlyTotalResponse total monetario por mes.
type MonthlyTotalResponse struct {
	Month string          `json:"month"` // YYYY-MM
	Total decimal.Decimal `json:"total"`
}

// AuditEntryResponse registro de bitácora.
type AuditEntryResponse struct {
	ID        int64  `json:"id"`
	ActorID   string `json:"actor_id"`
	ActorName string `json:"actor_name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Action    string `json:"action"`
}

// AuditListResponse listado de bitácora.
type AuditListResponse struct {
	Items []AuditEntryResponse `json:"items"`
	Count int                  `json:"count"`
}
