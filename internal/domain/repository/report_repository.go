package repository

import (
	"context"

	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DashboardSummary conteos generales para el panel.
type DashboardSummary struct {
	Products  int64
	Clients   int64
	Providers int64
	Sales     int64
	Purchases int64
}

// MonthlyTotal total monetario de movimientos por mes (YYYY-MM).
type MonthlyTotal struct {
	Month string
	Total decimal.Decimal
}

// ReportRepository puerto de consultas agregadas de solo lectura.
type ReportRepository interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
	// LowStock productos activos con existencia en o por debajo del mínimo.
	LowStock(ctx context.Context) ([]*entity.Product, error)
	MonthlyTotals(ctx context.Context, direction string, year int) ([]MonthlyTotal, error)
}
