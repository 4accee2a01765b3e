package usecase

import (
	"context"

	"github.com/digitalstock/digital-stock-api/internal/application/dto"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
)

// ReportUseCase agregaciones de solo lectura para el panel de control.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Dashboard conteos generales más la lista de productos en o bajo el mínimo.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	summary, err := uc.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.DashboardResponse{
		Products:  summary.Products,
		Clients:   summary.Clients,
		Providers: summary.Providers,
		Sales:     summary.Sales,
		Purchases: summary.Purchases,
		LowStock:  make([]dto.ProductResponse, 0, len(lowStock)),
	}
	for _, p := range lowStock {
		resp.LowStock = append(resp.LowStock, *toProductResponse(p))
	}
	return resp, nil
}

// MonthlyTotals totales por mes de una dirección en un año.
func (uc *ReportUseCase) MonthlyTotals(ctx context.Context, direction string, year int) ([]dto.MonthlyTotalResponse, error) {
	totals, err := uc.repo.MonthlyTotals(ctx, direction, year)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MonthlyTotalResponse, 0, len(totals))
	for _, t := range totals {
		resp = append(resp, dto.MonthlyTotalResponse{Month: t.Month, Total: t.Total})
	}
	return resp, nil
}
