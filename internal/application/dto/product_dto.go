package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Quantity es la existencia inicial; después solo cambia vía movimientos.
type CreateProductRequest struct {
	Code     string          `json:"code" validate:"required,min=1,max=20"`
	Name     string          `json:"name" validate:"required,min=1,max=120"`
	Price    decimal.Decimal `json:"price"`
	TaxRate  decimal.Decimal `json:"tax_rate"`
	Min      int64           `json:"min" validate:"min=0"`
	Max      int64           `json:"max" validate:"min=0"`
	Quantity int64           `json:"quantity" validate:"min=0"`
}

// UpdateProductRequest actualización parcial (sin Quantity: se maneja vía movimientos).
type UpdateProductRequest struct {
	Name    *string          `json:"name" validate:"omitempty,min=1,max=120"`
	Price   *decimal.Decimal `json:"price"`
	TaxRate *decimal.Decimal `json:"tax_rate"`
	Min     *int64           `json:"min" validate:"omitempty,min=0"`
	Max     *int64           `json:"max" validate:"omitempty,min=0"`
	Active  *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Min       int64           `json:"min"`
	Max       int64           `json:"max"`
	Quantity  int64           `json:"quantity"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Count int               `json:"count"`
}
