package repository

import (
	"context"

	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductPatch campos opcionales para actualización parcial de un producto.
// Solo los campos no-nil se aplican; Quantity no es actualizable por esta vía
// (se maneja exclusivamente con AdjustQuantity desde el motor de movimientos).
type ProductPatch struct {
	Name    *string
	Price   *decimal.Decimal
	TaxRate *decimal.Decimal
	Min     *int64
	Max     *int64
	Active  *bool
}

// ProductFilter filtros de listado.
type ProductFilter struct {
	Search string // por nombre o código
	Active *bool
}

// ProductRepository puerto de persistencia del catálogo de productos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByCode devuelve nil, nil si el producto no existe.
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// FindActiveByCode devuelve nil, nil si el producto no existe o está inactivo.
	FindActiveByCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Update aplica el patch; devuelve false si el producto no existe.
	Update(ctx context.Context, code string, patch ProductPatch) (bool, error)
	// AdjustQuantity aplica un delta con signo de forma condicional y atómica:
	// retorna domain.ErrInsufficientStock si el delta dejaría la existencia negativa.
	AdjustQuantity(ctx context.Context, code string, delta int64) error
	Count(ctx context.Context) (int64, error)
}
