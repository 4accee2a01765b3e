package movement

import (
	"context"

	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor de movimientos: cualquier error
// devuelto por fn revierte cabecera, detalles y ajustes de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		clientRepo repository.PartyRepository,
		providerRepo repository.PartyRepository,
	) error) error
}

// ReceiptData vista de un movimiento ya confirmado, suficiente para
// renderizar el comprobante y enviarlo por correo.
type ReceiptData struct {
	ID        int64
	Direction string // entity.DirectionPurchase | entity.DirectionSale
	Date      string
	Time      string
	Amount    decimal.Decimal
	Party     *entity.Party // nil si el tercero no existe en el directorio
	Lines     []*entity.MovementDetail
}

// ReceiptGenerator renderiza el comprobante PDF de un movimiento.
// Layout determinista; pagina cuando las líneas exceden la capacidad de página.
type ReceiptGenerator interface {
	Render(data *ReceiptData) ([]byte, error)
}

// MailSender entrega un correo HTML con un adjunto PDF.
type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string, attachment []byte, filename string) error
}

// Notifier despacha el comprobante de un movimiento confirmado.
// Se invoca solo después del commit; su resultado jamás afecta al caller.
type Notifier interface {
	Dispatch(data *ReceiptData)
}
