package postgres

import (
	"context"
	"fmt"

	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepository)(nil)

// ReportRepository consultas agregadas de solo lectura para panel y reportes.
type ReportRepository struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepository {
	return &ReportRepository{q: q}
}

// Summary conteos generales del panel en una sola consulta.
func (r *ReportRepository) Summary(ctx context.Context) (*repository.DashboardSummary, error) {
	query := `
		SELECT
			(SELECT count(*) FROM products),
			(SELECT count(*) FROM clients),
			(SELECT count(*) FROM providers),
			(SELECT count(*) FROM movements WHERE direction = 'SALE'),
			(SELECT count(*) FROM movements WHERE direction = 'PURCHASE')`

	var s repository.DashboardSummary
	err := r.q.QueryRow(ctx, query).
		Scan(&s.Products, &s.Clients, &s.Providers, &s.Sales, &s.Purchases)
	if err != nil {
		return nil, fmt.Errorf("resumen de panel: %w", err)
	}
	return &s, nil
}

// LowStock productos activos con existencia en o por debajo del mínimo,
// los más críticos primero.
func (r *ReportRepository) LowStock(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT code, name, price, tax_rate, min_stock, max_stock, quantity, active, created_at, updated_at
		FROM products
		WHERE active = TRUE AND quantity <= min_stock
		ORDER BY quantity ASC, code ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("consultar stock bajo: %w", err)
	}
	defer rows.Close()

	products := []*entity.Product{}
	for rows.Next() {
		var p entity.Product
		err := rows.Scan(&p.Code, &p.Name, &p.Price, &p.TaxRate, &p.Min, &p.Max,
			&p.Quantity, &p.Active, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("leer producto de stock bajo: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// MonthlyTotals total monetario por mes (YYYY-MM) de una dirección en un año.
func (r *ReportRepository) MonthlyTotals(ctx context.Context, direction string, year int) ([]repository.MonthlyTotal, error) {
	query := `
		SELECT to_char(created_at, 'YYYY-MM') AS month, COALESCE(sum(amount), 0)
		FROM movements
		WHERE direction = $1 AND EXTRACT(YEAR FROM created_at) = $2
		GROUP BY month
		ORDER BY month ASC`

	rows, err := r.q.Query(ctx, query, direction, year)
	if err != nil {
		return nil, fmt.Errorf("consultar totales mensuales: %w", err)
	}
	defer rows.Close()

	totals := []repository.MonthlyTotal{}
	for rows.Next() {
		var t repository.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("leer total mensual: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
