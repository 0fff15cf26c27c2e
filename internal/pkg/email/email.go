package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendWelcomeEmail(toEmail, toName, role string) error
	SendInterviewScheduledEmail(toEmail, toName string, notice InterviewNotice) error
}

// InterviewNotice describes a scheduled interview for the student mail
type InterviewNotice struct {
	JobTitle string
	Company  string
	Date     time.Time
	Mode     string
	Round    string
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

func (s *EmailServiceImpl) configured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

// SendWelcomeEmail greets a newly registered student or employer
func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName, role string) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("role", role).
			Msg("SMTP credentials not configured - welcome email not sent.")
		return nil
	}

	subject := "Welcome to the Placement Portal"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to the Placement Portal!</h2>
				<p>Hello %s,</p>
				<p>Your %s account is ready. Sign in at <a href="%s">%s</a> to get started.</p>
				<p>Best regards,<br>The Placement Cell</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(toName), html.EscapeString(role), s.config.BaseURL, s.config.BaseURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendInterviewScheduledEmail tells a student about a new interview round
func (s *EmailServiceImpl) SendInterviewScheduledEmail(toEmail, toName string, notice InterviewNotice) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("jobTitle", notice.JobTitle).
			Time("date", notice.Date).
			Msg("SMTP credentials not configured - interview email not sent.")
		return nil
	}

	subject := fmt.Sprintf("Interview scheduled: %s", notice.JobTitle)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Hello %s,</p>
				<p>An interview has been scheduled for <strong>%s</strong> at %s.</p>
				<ul>
					<li>Date: %s</li>
					<li>Mode: %s</li>
					<li>Round: %s</li>
				</ul>
				<p>Best regards,<br>The Placement Cell</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(toName), html.EscapeString(notice.JobTitle), html.EscapeString(notice.Company),
		notice.Date.Format("02 Jan 2006"), html.EscapeString(notice.Mode), html.EscapeString(notice.Round))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// buildMessage renders headers in a fixed order followed by the HTML body
func (s *EmailServiceImpl) buildMessage(toEmail, subject, htmlBody string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", toEmail)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.String()
}

func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	message := []byte(s.buildMessage(toEmail, subject, htmlBody))
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, message); err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create SMTP client")
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		s.logger.Error().Err(err).Msg("SMTP authentication failed")
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return nil
}
