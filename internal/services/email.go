package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"mokshamaa/internal/config"
	"mokshamaa/internal/domain"
)

// EmailService handles sending emails
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// SendInquiryNotification notifies the site admin about a new inquiry
func (s *EmailService) SendInquiryNotification(inquiry *domain.Inquiry) error {
	if !s.cfg.Enabled || s.cfg.AdminEmail == "" {
		log.Printf("[EMAIL] New inquiry %s from %s (%s), notification disabled", inquiry.ID, inquiry.Name, inquiry.Email)
		return nil
	}

	subject := fmt.Sprintf("New %s Inquiry from %s", inquiry.Category, inquiry.Name)

	area := "Not specified"
	if inquiry.Area != nil && *inquiry.Area != "" {
		area = *inquiry.Area
	}
	budget := "Not specified"
	if inquiry.BudgetRange != nil && *inquiry.BudgetRange != "" {
		budget = *inquiry.BudgetRange
	}
	timeline := "Not specified"
	if inquiry.Timeline != nil && *inquiry.Timeline != "" {
		timeline = *inquiry.Timeline
	}
	submitted := inquiry.CreatedAt.Format("January 2, 2006 at 3:04 PM")

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>New Service Inquiry</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #C2410C;">New Service Inquiry</h2>

        <div style="background: #FFF7ED; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Name:</strong> %s</p>
            <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
            <p><strong>Phone:</strong> %s</p>
            <p><strong>Location:</strong> %s, %s (%s)</p>
            <p><strong>Category:</strong> %s</p>
            <p><strong>Budget:</strong> %s</p>
            <p><strong>Timeline:</strong> %s</p>
            <p><strong>Submitted:</strong> %s</p>
        </div>

        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #C2410C; border-radius: 4px; margin: 20px 0;">
            <h3 style="color: #0D1A2D; margin-top: 0;">Requirements:</h3>
            <p style="white-space: pre-wrap;">%s</p>
        </div>

        <p style="color: #64748B; font-size: 14px;">
            Inquiry ID: %s
        </p>
    </div>
</body>
</html>`, inquiry.Name, inquiry.Email, inquiry.Email, inquiry.Phone,
		inquiry.City, inquiry.State, area, inquiry.Category, budget, timeline,
		submitted, inquiry.Description, inquiry.ID)

	textLines := []string{
		"New Service Inquiry",
		"",
		"Name: " + inquiry.Name,
		"Email: " + inquiry.Email,
		"Phone: " + inquiry.Phone,
		fmt.Sprintf("Location: %s, %s (%s)", inquiry.City, inquiry.State, area),
		"Category: " + string(inquiry.Category),
		"Budget: " + budget,
		"Timeline: " + timeline,
		"Submitted: " + submitted,
		"",
		"Requirements:",
		inquiry.Description,
		"",
		"Inquiry ID: " + inquiry.ID,
	}
	textBody := strings.Join(textLines, "\n")

	return s.SendHTMLEmail(s.cfg.AdminEmail, subject, htmlBody, textBody)
}

// SendEmail sends a generic email (plain text)
func (s *EmailService) SendEmail(to, subject, body string) error {
	return s.SendHTMLEmail(to, subject, "", body)
}

// SendHTMLEmail sends an HTML email with plain text fallback
func (s *EmailService) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if !s.cfg.Enabled {
		log.Printf("[EMAIL] Would send to %s: %s", to, subject)
		return nil
	}

	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("email service not properly configured")
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	// Build multipart message
	boundary := "----=_NextPart_1234567890"

	headers := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n"

	message := headers +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		textBody + "\r\n"

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"Content-Transfer-Encoding: quoted-printable\r\n" +
			"\r\n" +
			htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
