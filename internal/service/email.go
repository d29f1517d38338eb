package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/smtp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pageza/portfolio/backend/config"
	"github.com/pageza/portfolio/backend/internal/models"
)

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService tells the site owner about new contact messages. Without an
// SMTP host the email is logged instead of sent.
type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	toEmail      string
	sendMail     SendMailFunc
}

var _ IEmailService = (*EmailService)(nil)

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		fromEmail:    cfg.EmailFrom,
		toEmail:      cfg.NotifyEmail,
		sendMail:     smtp.SendMail,
	}
}

// NotifyContactMessage emails the owner a copy of a contact form submission.
func (s *EmailService) NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	caser := cases.Title(language.English)
	subject := fmt.Sprintf("[Portfolio] New message from %s: %s", caser.String(msg.Name), msg.Subject)
	return s.SendEmail(s.toEmail, subject, buildContactEmailBody(msg), msg.Email)
}

// SendEmail sends an HTML email. replyTo may be empty.
func (s *EmailService) SendEmail(to, subject, body, replyTo string) error {
	// Header injection guard
	subject = strings.NewReplacer("\r", " ", "\n", " ").Replace(subject)
	replyTo = strings.NewReplacer("\r", "", "\n", "").Replace(replyTo)

	if s.smtpHost == "" {
		log.Printf("SMTP not configured, logging email to %q: %s", to, subject)
		return nil
	}

	var auth smtp.Auth
	if s.smtpUsername != "" {
		auth = smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	}

	var headers strings.Builder
	fmt.Fprintf(&headers, "To: %s\r\n", to)
	fmt.Fprintf(&headers, "From: %s\r\n", s.fromEmail)
	if replyTo != "" {
		fmt.Fprintf(&headers, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&headers, "Subject: %s\r\n", subject)
	headers.WriteString("MIME-Version: 1.0\r\n")
	headers.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := s.sendMail(addr, auth, s.fromEmail, []string{to}, []byte(headers.String()+body+"\r\n")); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildContactEmailBody(msg *models.ContactMessage) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h2>New contact message</h2>
	<p><strong>From:</strong> %s &lt;%s&gt;</p>
	<p><strong>Subject:</strong> %s</p>
	<p><strong>Received:</strong> %s</p>
	<div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; white-space: pre-wrap;">%s</div>
</body>
</html>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Subject),
		msg.CreatedAt.Format("2006-01-02 15:04 MST"),
		html.EscapeString(msg.Message),
	)
}
