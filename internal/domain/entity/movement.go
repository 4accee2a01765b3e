package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de un movimiento de inventario.
const (
	DirectionPurchase = "PURCHASE" // entrada: compra a proveedor, suma stock
	DirectionSale     = "SALE"     // salida: venta a cliente, resta stock
)

// Movement es la cabecera de una compra o venta. Inmutable una vez creada:
// no existen operaciones de actualización ni borrado sobre movimientos.
type Movement struct {
	ID               int64  // consecutivo asignado por la base de datos
	Direction        string // PURCHASE | SALE
	CounterpartyID   string // proveedor en compras, cliente en ventas
	CounterpartyName string // denormalizado en lecturas (JOIN); vacío si el tercero no existe
	Date             string // YYYY-MM-DD
	Time             string // HH:MM:SS
	Amount           decimal.Decimal
	CreatedAt        time.Time
	CreatedBy        string // cédula del usuario que registró el movimiento
}

// MovementDetail es una línea de movimiento. Nombre, precio e IVA son
// snapshots del producto al momento de la transacción. Un mismo producto
// puede aparecer en varias líneas; LineNo las distingue.
type MovementDetail struct {
	MovementID  int64
	LineNo      int
	ProductCode string
	ProductName string
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Quantity    int64
}
