package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"notifysvc/internal/config"
)

// Mailer is the outbound mail capability: deliver one message to one
// address, success or failure.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTP struct {
	cfg config.SMTPConfig
}

func NewSMTP(cfg config.SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) Send(_ context.Context, to, subject, body string) error {
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("Battery Passport <%s>", s.cfg.From)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/plain; charset=UTF-8"

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + body

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(message))
}
