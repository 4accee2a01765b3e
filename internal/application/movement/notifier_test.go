package movement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/pkg/logger"
)

type stubReceipts struct {
	bytes []byte
	err   error
	calls int
}

func (s *stubReceipts) Render(*ReceiptData) ([]byte, error) {
	s.calls++
	return s.bytes, s.err
}

type sentMail struct {
	to, subject, body, filename string
	attachment                  []byte
}

type stubMail struct {
	mu   sync.Mutex
	err  error
	sent []sentMail
}

func (s *stubMail) Send(_ context.Context, to, subject, htmlBody string, attachment []byte, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: htmlBody, filename: filename, attachment: attachment})
	return nil
}

func saleReceipt() *ReceiptData {
	return &ReceiptData{
		ID:        7,
		Direction: entity.DirectionSale,
		Date:      "2026-08-29",
		Time:      "10:15:00",
		Amount:    price("34.80"),
		Party:     &entity.Party{ID: "V-123", Name: "María Pérez", Email: "maria@example.com"},
		Lines: []*entity.MovementDetail{
			{MovementID: 7, ProductCode: "100001", ProductName: "Harina de Maíz 1kg", UnitPrice: price("10"), TaxRate: price("16"), Quantity: 3},
		},
	}
}

func TestDeliver_VentaEnviaFactura(t *testing.T) {
	receipts := &stubReceipts{bytes: []byte("%PDF-fake")}
	mailer := &stubMail{}
	n := NewReceiptNotifier(receipts, mailer, logger.Nop(), time.Second)

	n.deliver(context.Background(), saleReceipt())

	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	assert.Equal(t, "maria@example.com", sent.to)
	assert.Equal(t, "Su Factura de Compra #7 - Digital Stock", sent.subject)
	assert.Equal(t, "Factura_Venta_7.pdf", sent.filename)
	assert.Equal(t, []byte("%PDF-fake"), sent.attachment)
	assert.Contains(t, sent.body, "Gracias por su compra")
}

func TestDeliver_CompraEnviaComprobanteDeRecepcion(t *testing.T) {
	receipts := &stubReceipts{bytes: []byte("%PDF-fake")}
	mailer := &stubMail{}
	n := NewReceiptNotifier(receipts, mailer, logger.Nop(), time.Second)

	data := saleReceipt()
	data.Direction = entity.DirectionPurchase
	data.Party = &entity.Party{ID: "J-900", Name: "Distribuidora Centro", Email: "ventas@centro.example"}
	n.deliver(context.Background(), data)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Comprobante de Recepción #7 - Digital Stock", mailer.sent[0].subject)
	assert.Equal(t, "Comprobante_Compra_7.pdf", mailer.sent[0].filename)
}

func TestDeliver_SinTerceroNoEnvia(t *testing.T) {
	receipts := &stubReceipts{bytes: []byte("x")}
	mailer := &stubMail{}
	n := NewReceiptNotifier(receipts, mailer, logger.Nop(), time.Second)

	data := saleReceipt()
	data.Party = nil
	n.deliver(context.Background(), data)

	assert.Zero(t, receipts.calls, "sin tercero no se genera el PDF")
	assert.Empty(t, mailer.sent)
}

func TestDeliver_EmailInvalidoNoEnvia(t *testing.T) {
	receipts := &stubReceipts{bytes: []byte("x")}
	mailer := &stubMail{}
	n := NewReceiptNotifier(receipts, mailer, logger.Nop(), time.Second)

	data := saleReceipt()
	data.Party.Email = "   "
	n.deliver(context.Background(), data)

	assert.Zero(t, receipts.calls)
	assert.Empty(t, mailer.sent)
}

func TestDeliver_ErroresSeTraganSinPanico(t *testing.T) {
	// Fallo al renderizar
	n := NewReceiptNotifier(&stubReceipts{err: errors.New("sin fuente")}, &stubMail{}, logger.Nop(), time.Second)
	assert.NotPanics(t, func() { n.deliver(context.Background(), saleReceipt()) })

	// Fallo al enviar
	mailer := &stubMail{err: errors.New("SMTP caído")}
	n = NewReceiptNotifier(&stubReceipts{bytes: []byte("x")}, mailer, logger.Nop(), time.Second)
	assert.NotPanics(t, func() { n.deliver(context.Background(), saleReceipt()) })
	assert.Empty(t, mailer.sent)
}

func TestDispatch_EntregaEnBackgroundYWaitEspera(t *testing.T) {
	receipts := &stubReceipts{bytes: []byte("x")}
	mailer := &stubMail{}
	n := NewReceiptNotifier(receipts, mailer, logger.Nop(), time.Second)

	n.Dispatch(saleReceipt())
	n.Wait()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Len(t, mailer.sent, 1)
}
