package entity

import "time"

// Party representa un tercero del directorio: cliente (ventas) o proveedor (compras).
// El motor de movimientos solo lo lee; nombre, identificador y email se copian
// al comprobante para que los documentos históricos no cambien si el tercero se edita.
type Party struct {
	ID        string // cédula o RIF, llave natural
	Name      string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Kind de tercero, usado para elegir la tabla y el texto de los comprobantes.
const (
	PartyClient   = "CLIENT"
	PartyProvider = "PROVIDER"
)
