package service

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/huynhdieutuong/DevCamper-API/config"

	"github.com/jordan-wright/email"
)

// Mailer delivers a single plain-text message. The SMTP implementation is
// swapped for a fake in tests.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)
	if m.cfg.Email == "" {
		return e.Send(addr, nil)
	}
	return e.Send(addr, smtp.PlainAuth("", m.cfg.Email, m.cfg.Password, m.cfg.Host))
}

// MailService renders the notification emails the auth flows send. Links
// embed the raw one-time token; only its digest is ever stored.
type MailService struct {
	mailer    Mailer
	publicURL string
}

func NewMailService(mailer Mailer, publicURL string) *MailService {
	return &MailService{mailer: mailer, publicURL: publicURL}
}

func (s *MailService) SendVerificationEmail(to, name, rawToken string) error {
	link := fmt.Sprintf("%s/auth/confirmation/%s", s.publicURL, rawToken)
	body := fmt.Sprintf("Hello %s,\n\nPlease verify your account by clicking the link below:\n\n%s", name, link)
	return s.mailer.Send(to, "Account verification token", body)
}

func (s *MailService) SendResetPasswordEmail(to, rawToken string) error {
	link := fmt.Sprintf("%s/auth/resetpassword/%s", s.publicURL, rawToken)
	body := fmt.Sprintf("You are receiving this email because you (or someone else) has requested the reset of a password. Please make a PUT request to:\n\n%s", link)
	return s.mailer.Send(to, "Password reset token", body)
}
