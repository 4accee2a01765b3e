package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity solo lo muta el motor de movimientos (delta con signo);
// Min/Max son umbrales informativos validados solo al crear/editar (Min < Max).
type Product struct {
	Code      string // código único, llave natural
	Name      string
	Price     decimal.Decimal // precio unitario de venta (>= 0)
	TaxRate   decimal.Decimal // IVA en porcentaje, 0..100
	Min       int64           // stock mínimo (umbral de advertencia en ventas)
	Max       int64           // stock máximo (informativo, nunca bloquea compras)
	Quantity  int64           // existencia actual (>= 0)
	Active    bool            // inactivo = invisible para movimientos
	CreatedAt time.Time
	UpdatedAt time.Time
}
