package dto

import "github.com/shopspring/decimal"

// MovementLineRequest una línea de compra o venta.
type MovementLineRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateMovementRequest entrada para registrar una compra o una venta.
// counterparty_id es el proveedor en compras y el cliente en ventas.
type CreateMovementRequest struct {
	CounterpartyID string                `json:"counterparty_id" validate:"required"`
	Lines          []MovementLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// MovementLineResponse línea con los snapshots del producto al momento de la transacción.
type MovementLineResponse struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Quantity    int64           `json:"quantity"`
}

// CounterpartyResponse snapshot del tercero; omitido si el id no existe en el directorio.
type CounterpartyResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// MovementResponse resultado de crear o consultar un movimiento.
type MovementResponse struct {
	ID           int64                  `json:"id"`
	Direction    string                 `json:"direction"`
	Amount       decimal.Decimal        `json:"amount"`
	Subtotal     decimal.Decimal        `json:"subtotal"`
	Tax          decimal.Decimal        `json:"tax"`
	Date         string                 `json:"date"`
	Time         string                 `json:"time"`
	Counterparty *CounterpartyResponse  `json:"counterparty,omitempty"`
	Lines        []MovementLineResponse `json:"lines"`
}

// MovementListItem fila de listado de movimientos.
type MovementListItem struct {
	ID               int64           `json:"id"`
	CounterpartyID   string          `json:"counterparty_id"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
	Date             string          `json:"date"`
	Time             string          `json:"time"`
	Amount           decimal.Decimal `json:"amount"`
}

// MovementListResponse listado de movimientos.
type MovementListResponse struct {
	Items []MovementListItem `json:"items"`
	Count int                `json:"count"`
}
