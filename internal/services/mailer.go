package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer отправляет служебные письма
type Mailer interface {
	SendPasswordReset(to, resetLink string) error
}

// LogMailer пишет письмо в лог вместо отправки, для dev-окружения
// без SMTP-релея
type LogMailer struct{}

func (LogMailer) SendPasswordReset(to, resetLink string) error {
	logrus.WithFields(logrus.Fields{"to": to, "link": resetLink}).
		Info("password reset email (not sent: SMTP is not configured)")
	return nil
}

// SMTPMailer отправляет почту через настроенный в окружении релей
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailerFromEnv() (*SMTPMailer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}
	port := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		port = parsed
	}
	user := os.Getenv("SMTP_USER")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}
	return &SMTPMailer{
		host: host,
		port: port,
		user: user,
		pass: os.Getenv("SMTP_PASSWORD"),
		from: from,
	}, nil
}

func (m *SMTPMailer) SendPasswordReset(to, resetLink string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your Jessbook password")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Someone requested a password reset for your account.</p>
<p><a href=%q>Reset password</a> (the link is valid for one hour)</p>
<p>If this wasn't you, you can ignore this email.</p>`, resetLink))

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return dialer.DialAndSend(msg)
}
