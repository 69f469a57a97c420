package service

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/gestaofacil/backend/internal/domain/serviceorder"
	"github.com/gestaofacil/backend/pkg/logger"
)

// ErrMailerDisabled indica que o SMTP não foi configurado no ambiente
var ErrMailerDisabled = errors.New("envio de email não configurado")

// Mailer envia os emails transacionais do sistema via SMTP
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	resetURL string
	logger   logger.Logger
}

// NewMailerFromEnv monta o Mailer a partir das variáveis SMTP_HOST,
// SMTP_PORT, SMTP_USER, SMTP_PASSWORD, SMTP_FROM e RESET_URL. Sem
// SMTP_HOST o mailer fica desabilitado.
func NewMailerFromEnv(logger logger.Logger) *Mailer {
	m := &Mailer{
		from:     os.Getenv("SMTP_FROM"),
		resetURL: os.Getenv("RESET_URL"),
		logger:   logger,
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return m
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	m.dialer = gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"))
	if m.from == "" {
		m.from = os.Getenv("SMTP_USER")
	}
	return m
}

// Enabled informa se o envio de email está configurado
func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

// SendPasswordReset envia o link de redefinição de senha. O erro é
// devolvido ao chamador: sem o email o fluxo de redefinição não avança.
func (m *Mailer) SendPasswordReset(to, name, token string) error {
	if !m.Enabled() {
		return ErrMailerDisabled
	}

	link := fmt.Sprintf("%s?token=%s", m.resetURL, token)
	body := fmt.Sprintf(`<p>Olá, %s.</p>
<p>Recebemos um pedido de redefinição de senha. O link abaixo é válido por 30 minutos e pode ser usado uma única vez:</p>
<p><a href="%s">Redefinir senha</a></p>
<p>Se você não fez este pedido, ignore este email.</p>`, name, link)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Redefinição de senha")
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("erro ao enviar email de redefinição: %w", err)
	}
	return nil
}

// NotifyServiceOrderStatus comunica a troca de status de uma ordem de
// serviço. Melhor-esforço: falhas são registradas no log e engolidas.
func (m *Mailer) NotifyServiceOrderStatus(to string, o *serviceorder.ServiceOrder, oldStatus serviceorder.Status) {
	if !m.Enabled() || to == "" {
		return
	}

	body := fmt.Sprintf(`<p>A ordem de serviço do cliente <b>%s</b> mudou de status.</p>
<p>%s &rarr; <b>%s</b></p>
<p>%s</p>`, o.CustomerName, oldStatus.Label(), o.Status.Label(), o.Description)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Ordem de serviço: %s", o.Status.Label()))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("falha ao enviar notificação de ordem de serviço",
			"error", err, "orderId", o.ID, "status", o.Status)
	}
}
