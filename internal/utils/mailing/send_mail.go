package mailing

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

// Sender delivers a single HTML email.
type Sender interface {
	SendMail(toEmail string, subject string, body string) error
}

type smtpSender struct {
	config MailConfig
}

func NewSMTPSender(config MailConfig) Sender {
	return &smtpSender{config: config}
}

func (s *smtpSender) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", s.config.SMTPEmail, s.config.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(s.config.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port %q: %w", s.config.SMTPPort, err)
	}
	dialer := gomail.NewDialer(
		s.config.SMTPHost,
		port,
		s.config.SMTPEmail,
		s.config.SMTPPassword,
	)

	if err := dialer.DialAndSend(mailer); err != nil {
		return fmt.Errorf("send mail to %s: %w", toEmail, err)
	}
	return nil
}

var (
	verifyTemplate = template.Must(template.New("verify").Parse(
		`<p>Hi {{.Username}},</p>` +
			`<p>Welcome to CrisisAid. Please confirm your email address by opening the link below.</p>` +
			`<p><a href="{{.Link}}">{{.Link}}</a></p>`))

	decisionTemplate = template.Must(template.New("decision").Parse(
		`<p>Hi {{.Username}},</p>` +
			`<p>Your volunteer application for <strong>{{.CrisisTitle}}</strong> was {{.Status}}.</p>` +
			`{{if eq .Status "approved"}}<p>You can now post updates on this crisis.</p>{{end}}`))
)

func VerificationEmail(appURL, username, token string) (string, string, error) {
	var buf bytes.Buffer
	err := verifyTemplate.Execute(&buf, map[string]string{
		"Username": username,
		"Link":     fmt.Sprintf("%s/api/accounts/verify?token=%s", appURL, token),
	})
	if err != nil {
		return "", "", err
	}
	return "Verify your CrisisAid account", buf.String(), nil
}

func ApplicationDecisionEmail(username, crisisTitle, status string) (string, string, error) {
	var buf bytes.Buffer
	err := decisionTemplate.Execute(&buf, map[string]string{
		"Username":    username,
		"CrisisTitle": crisisTitle,
		"Status":      status,
	})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Your volunteer application was %s", status), buf.String(), nil
}
