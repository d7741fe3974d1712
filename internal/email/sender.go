package email

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/ignatzorin/skillswapper-backend/internal/config"
	"github.com/ignatzorin/skillswapper-backend/internal/logger"
)

// Message письмо, готовое к отправке.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender отправляет письма.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender возвращает SMTP отправителя, либо логирующую заглушку, если SMTP не настроен.
func NewSender(cfg config.SMTPConfig) Sender {
	if !cfg.Enabled() {
		return LogSender{}
	}
	return NewSMTPSender(cfg)
}

// SMTPSender отправляет письма через SMTP.
type SMTPSender struct {
	from   string
	dialer *gomail.Dialer
}

// NewSMTPSender создаёт SMTP отправителя.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send отправляет письмо. Контекст проверяется только до соединения с сервером.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("email: отправка на %s: %w", msg.To, err)
	}

	return nil
}

// LogSender пишет письма в лог вместо отправки (режим разработки).
type LogSender struct{}

// Send логирует письмо.
func (LogSender) Send(_ context.Context, msg Message) error {
	logger.L().WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("email: SMTP не настроен, письмо не отправлено")
	return nil
}
