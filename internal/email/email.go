// Package email provides email sending functionality
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strings"
)

// Config holds email configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

// Service handles email sending
type Service struct {
	config    *Config
	templates map[string]*template.Template
}

// NewService creates a new email service
func NewService(config *Config) *Service {
	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
	}
	s.loadTemplates()
	return s
}

// Email represents an email message
type Email struct {
	To       []string
	CC       []string
	BCC      []string
	Subject  string
	Body     string
	HTMLBody string
}

func (s *Service) loadTemplates() {

	// Thank-you sent to whoever submits the contact form
	s.templates["contact_thank_you"] = template.Must(template.New("contact_thank_you").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #6366f1 0%, #8b5cf6 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; }
        .content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
        .summary { background: white; border-radius: 8px; padding: 20px; margin: 20px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .footer { text-align: center; color: #6b7280; font-size: 12px; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Thanks for reaching out!</h1>
        </div>
        <div class="content">
            <p>Hi {{.Name}},</p>
            <p>We received your message and one of our team will get back to you within one business day.</p>

            <div class="summary">
                {{if .ProjectType}}<p><strong>Project type:</strong> {{.ProjectType}}</p>{{end}}
                {{if .Budget}}<p><strong>Budget:</strong> {{.Budget}}</p>{{end}}
                {{if .Timeline}}<p><strong>Timeline:</strong> {{.Timeline}}</p>{{end}}
                <p><strong>Your message:</strong><br/>{{.Message}}</p>
            </div>

            <p>In the meantime, feel free to browse our recent work.</p>
        </div>
        <div class="footer">
            PixelCraft Digital • We build brands and products
        </div>
    </div>
</body>
</html>
`))

	// New-lead notification sent to the agency inbox
	s.templates["lead_notification"] = template.Must(template.New("lead_notification").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #10b981; color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .lead-card { background: white; border-left: 4px solid #10b981; padding: 20px; margin: 20px 0; border-radius: 0 8px 8px 0; }
        .btn { display: inline-block; background: #10b981; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>📥 New Lead: {{.Name}}</h2>
    </div>
    <div class="content">
        <div class="lead-card">
            <p><strong>Name:</strong> {{.Name}}</p>
            <p><strong>Email:</strong> {{.Email}}</p>
            {{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>{{end}}
            {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
            {{if .ProjectType}}<p><strong>Project type:</strong> {{.ProjectType}}</p>{{end}}
            {{if .Budget}}<p><strong>Budget:</strong> {{.Budget}}</p>{{end}}
            {{if .Timeline}}<p><strong>Timeline:</strong> {{.Timeline}}</p>{{end}}
            <p><strong>Message:</strong><br/>{{.Message}}</p>
        </div>

        <a href="{{.AdminURL}}" class="btn">Open in Admin</a>
    </div>
    <div class="footer">
        PixelCraft Digital • Admin notifications
    </div>
</div>
</body>
</html>
`))

	// Weekly digest of new leads
	s.templates["weekly_digest"] = template.Must(template.New("weekly_digest").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #3b82f6 0%, #2563eb 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; }
        .content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
        .lead-row { background: white; padding: 14px 18px; margin: 10px 0; border-radius: 8px; }
        .footer { text-align: center; color: #6b7280; font-size: 12px; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Weekly Lead Digest</h1>
            <p>{{.Total}} new {{if eq .Total 1}}lead{{else}}leads{{end}} this week</p>
        </div>
        <div class="content">
            {{range .Leads}}
            <div class="lead-row">
                <strong>{{.Name}}</strong> ({{.Email}}){{if .ProjectType}} — {{.ProjectType}}{{end}}
            </div>
            {{else}}
            <p>No new leads this week.</p>
            {{end}}
        </div>
        <div class="footer">
            PixelCraft Digital • Weekly summary
        </div>
    </div>
</body>
</html>
`))
}

// Send sends an email
func (s *Service) Send(email *Email) error {
	if s.config.Host == "" {
		log.Println("Email not configured, skipping send")
		return nil
	}

	var msg bytes.Buffer

	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ", ")))
	if len(email.CC) > 0 {
		msg.WriteString(fmt.Sprintf("Cc: %s\r\n", strings.Join(email.CC, ", ")))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody != "" {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.HTMLBody)
	} else {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.Body)
	}

	recipients := append(email.To, email.CC...)
	recipients = append(recipients, email.BCC...)

	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: s.config.Host,
		}

		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("TLS dial error: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			return fmt.Errorf("SMTP client error: %w", err)
		}
		defer client.Close()

		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("auth error: %w", err)
		}

		if err = client.Mail(s.config.From); err != nil {
			return fmt.Errorf("mail error: %w", err)
		}

		for _, rcpt := range recipients {
			if err = client.Rcpt(rcpt); err != nil {
				return fmt.Errorf("rcpt error: %w", err)
			}
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("data error: %w", err)
		}

		if _, err = w.Write(msg.Bytes()); err != nil {
			return fmt.Errorf("write error: %w", err)
		}

		if err = w.Close(); err != nil {
			return fmt.Errorf("close error: %w", err)
		}

		return client.Quit()
	}

	return smtp.SendMail(addr, auth, s.config.From, recipients, msg.Bytes())
}

// SendWithTemplate sends an email using a template
func (s *Service) SendWithTemplate(to []string, subject, templateName string, data interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("template not found: %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	return s.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: body.String(),
	})
}

// ============================================
// Convenience Methods
// ============================================

// ContactThankYouData holds data for the submitter's confirmation email
type ContactThankYouData struct {
	Name        string
	ProjectType string
	Budget      string
	Timeline    string
	Message     string
}

// SendContactThankYou confirms receipt to the person who submitted the form
func (s *Service) SendContactThankYou(to string, data ContactThankYouData) error {
	return s.SendWithTemplate(
		[]string{to},
		"We received your message — PixelCraft Digital",
		"contact_thank_you",
		data,
	)
}

// LeadNotificationData holds data for the internal new-lead email
type LeadNotificationData struct {
	Name        string
	Email       string
	Company     string
	Phone       string
	ProjectType string
	Budget      string
	Timeline    string
	Message     string
	AdminURL    string
}

// SendLeadNotification alerts the agency inbox about a new lead
func (s *Service) SendLeadNotification(to string, data LeadNotificationData) error {
	return s.SendWithTemplate(
		[]string{to},
		fmt.Sprintf("[PixelCraft] New lead: %s", data.Name),
		"lead_notification",
		data,
	)
}

// DigestLead is one row in the weekly digest
type DigestLead struct {
	Name        string
	Email       string
	ProjectType string
}

// WeeklyDigestData holds data for the weekly lead digest email
type WeeklyDigestData struct {
	Total int
	Leads []DigestLead
}

// SendWeeklyDigest sends the weekly lead summary to the agency inbox
func (s *Service) SendWeeklyDigest(to string, data WeeklyDigestData) error {
	return s.SendWithTemplate(
		[]string{to},
		"[PixelCraft] Weekly lead digest",
		"weekly_digest",
		data,
	)
}
