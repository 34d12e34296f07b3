package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"jobbridge-backend/config"
)

// EmailService sends transactional mail via the configured SMTP relay.
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// GuardianConsentData holds the data for the guardian consent request mail.
type GuardianConsentData struct {
	GuardianName string
	MinorName    string
	City         string
	ConsentURL   string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

const guardianConsentTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Einverständniserklärung erforderlich</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1a7f5a; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; background: #1a7f5a; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>JobBridge</h1>
        </div>
        <div class="content">
            <p>Hallo {{.GuardianName}},</p>
            <p>{{.MinorName}} aus {{.City}} möchte sich bei JobBridge registrieren,
            um kleine Jobs in der Region zu finden. Da {{.MinorName}} minderjährig ist,
            benötigen wir Ihre Einverständniserklärung.</p>
            <p><a class="button" href="{{.ConsentURL}}">Einverständnis prüfen</a></p>
            <p>Wenn Sie diese Anfrage nicht erwartet haben, können Sie sie über den
            gleichen Link ablehnen.</p>
        </div>
        <div class="footer">
            <p>Diese E-Mail wurde automatisch von JobBridge versendet.</p>
        </div>
    </div>
</body>
</html>`

// IsConfigured reports whether SMTP credentials are present.
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// SendGuardianConsentRequest mails the consent request to a minor's guardian.
func (s *EmailService) SendGuardianConsentRequest(to string, data GuardianConsentData) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service not configured")
	}

	tmpl, err := template.New("guardian_consent").Parse(guardianConsentTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.send(to, "JobBridge: Einverständniserklärung erforderlich", body.String())
}

func (s *EmailService) send(to, subject, htmlBody string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.fromEmail, to, subject, htmlBody,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
