package movement

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/pkg/logger"
)

// ReceiptNotifier implementación de Notifier: genera el PDF y lo envía por correo
// en una goroutine desacoplada, con timeout por envío. Los fallos se registran y
// se descartan; nunca se propagan al flujo de la petición.
type ReceiptNotifier struct {
	receipts ReceiptGenerator
	mail     MailSender
	log      *logger.Logger
	timeout  time.Duration

	wg sync.WaitGroup
}

// NewReceiptNotifier construye el despachador. timeout acota cada envío.
func NewReceiptNotifier(receipts ReceiptGenerator, mail MailSender, log *logger.Logger, timeout time.Duration) *ReceiptNotifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ReceiptNotifier{receipts: receipts, mail: mail, log: log, timeout: timeout}
}

// Dispatch lanza el envío en background y retorna de inmediato.
// El caller no conserva handle; un apagado a mitad de envío pierde esa notificación.
func (n *ReceiptNotifier) Dispatch(data *ReceiptData) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		n.deliver(ctx, data)
	}()
}

// Wait bloquea hasta que terminen los envíos en curso (apagado ordenado).
func (n *ReceiptNotifier) Wait() {
	n.wg.Wait()
}

// deliver renderiza y envía el comprobante. Todo error termina aquí, en el log.
func (n *ReceiptNotifier) deliver(ctx context.Context, data *ReceiptData) {
	if data.Party == nil {
		n.log.Warn().
			Int64("movement_id", data.ID).
			Msg("tercero sin registro en el directorio, no se envía comprobante")
		return
	}
	email := strings.TrimSpace(data.Party.Email)
	if !strings.Contains(email, "@") {
		n.log.Warn().
			Int64("movement_id", data.ID).
			Str("party_id", data.Party.ID).
			Msg("tercero sin email válido, no se envía comprobante")
		return
	}

	pdfBytes, err := n.receipts.Render(data)
	if err != nil {
		n.log.Error().Err(err).
			Int64("movement_id", data.ID).
			Str("email", email).
			Msg("generar comprobante PDF")
		return
	}

	subject, body, filename := mailContent(data)
	if err := n.mail.Send(ctx, email, subject, body, pdfBytes, filename); err != nil {
		n.log.Error().Err(err).
			Int64("movement_id", data.ID).
			Str("email", email).
			Msg("enviar comprobante por correo")
		return
	}

	n.log.Info().
		Int64("movement_id", data.ID).
		Str("email", email).
		Msg("comprobante enviado")
}

// NopNotifier descarta los despachos. Se usa cuando el envío de comprobantes
// no está configurado (SMTP sin credenciales).
type NopNotifier struct{}

// Dispatch no hace nada.
func (NopNotifier) Dispatch(*ReceiptData) {}

// mailContent asunto, cuerpo HTML y nombre de adjunto según la dirección del movimiento.
func mailContent(data *ReceiptData) (subject, body, filename string) {
	if data.Direction == entity.DirectionPurchase {
		subject = fmt.Sprintf("Comprobante de Recepción #%d - Digital Stock", data.ID)
		body = fmt.Sprintf(
			"<h1>Recepción de Mercancía</h1><p>Hemos procesado la recepción de mercancía (Orden #%d).</p><p>Adjuntamos el comprobante de la operación.</p>",
			data.ID)
		filename = fmt.Sprintf("Comprobante_Compra_%d.pdf", data.ID)
		return
	}
	subject = fmt.Sprintf("Su Factura de Compra #%d - Digital Stock", data.ID)
	body = fmt.Sprintf(
		"<h1>Gracias por su compra</h1><p>Adjunto encontrará su factura N° %d.</p><p>Atentamente,<br>Digital Stock</p>",
		data.ID)
	filename = fmt.Sprintf("Factura_Venta_%d.pdf", data.ID)
	return
}
