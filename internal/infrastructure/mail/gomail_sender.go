// Package mail implementa el envío SMTP de comprobantes con gomail.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/digitalstock/digital-stock-api/internal/application/movement"
	"github.com/digitalstock/digital-stock-api/pkg/config"
)

var _ movement.MailSender = (*GomailSender)(nil)

// GomailSender envía correos HTML con adjunto PDF por SMTP.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender construye el sender desde la configuración SMTP.
// Fuera de producción se admite TLS con certificado no verificable,
// para servidores SMTP de desarrollo.
func NewGomailSender(cfg config.SMTPConfig, production bool) *GomailSender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	if !production {
		dialer.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &GomailSender{dialer: dialer, from: cfg.Sender()}
}

// Send entrega el correo. Respeta la cancelación del contexto: si el ctx
// vence antes de que el servidor SMTP responda, retorna ctx.Err().
func (s *GomailSender) Send(ctx context.Context, to, subject, htmlBody string, attachment []byte, filename string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	if len(attachment) > 0 {
		msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("enviar correo a %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
