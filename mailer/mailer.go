// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/gomail.v2"

	"ai-edu-portal/config"
)

// ErrNotConfigured is returned when no SMTP host is configured.
// Callers are expected to fall back to logging the message content
// in development environments.
var ErrNotConfigured = errors.New("smtp is not configured")

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewFromConfig 는 config.yaml 의 smtp 섹션과 SMTP_USERNAME/SMTP_PASSWORD
// 환경변수로 Mailer 를 생성한다.
func NewFromConfig(cfg config.AppConfig) *Mailer {
	return &Mailer{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     cfg.SMTP.From,
	}
}

func (m *Mailer) Send(to, subject, textBody string) error {
	if m.host == "" {
		return ErrNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendPasswordReset 은 비밀번호 재설정 링크 메일을 발송한다.
func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(`A password reset was requested for your account.

Open the link below to choose a new password. The link expires in one hour.

%s

If you did not request this, you can ignore this message.
`, resetURL)

	return m.Send(to, "Reset your password", body)
}
