package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
}

// Template data structures
type WelcomeEmailData struct {
	Name         string
	SiteURL      string
	LoginURL     string
	DashboardURL string
}

type QuoteConfirmationData struct {
	FullName          string
	WebsiteType       string
	ProjectDesc       string
	EstimatedTimeline string
	ContactEmail      string
}

type QuoteOperatorAlertData struct {
	FullName      string
	Email         string
	Phone         string
	CompanyName   string
	WebsiteType   string
	ProjectDesc   string
	BudgetDisplay string
	Timeline      string
	FeaturesList  string
	AdminURL      string
}

type ContactMessageData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type WeeklyReportData struct {
	Period            string
	NewUsers          int64
	NewQuotes         int64
	CompletedProjects int64
	NewsletterSignups int64
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to []string, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	return s.post(EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	})
}

func (s *EmailService) post(emailData EmailData) error {
	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	log.Printf("Email %q sent to %v", emailData.Subject, emailData.To)
	return nil
}

// Email sending methods
func (s *EmailService) SendWelcomeEmail(to, name, baseURL string) error {
	data := WelcomeEmailData{
		Name:         name,
		SiteURL:      baseURL,
		LoginURL:     baseURL + "/login",
		DashboardURL: baseURL + "/dashboard",
	}
	return s.sendTemplateEmail([]string{to}, "Welcome to Onehux Web Service!", "welcome.html", data)
}

func (s *EmailService) SendQuoteConfirmation(to string, data QuoteConfirmationData) error {
	return s.sendTemplateEmail(
		[]string{to},
		"Thank you for your website quote request - Onehux",
		"quote_confirmation.html",
		data,
	)
}

func (s *EmailService) SendQuoteOperatorAlert(to []string, data QuoteOperatorAlertData) error {
	return s.sendTemplateEmail(
		to,
		fmt.Sprintf("New Website Quote Request from %s", data.FullName),
		"quote_operator_alert.html",
		data,
	)
}

func (s *EmailService) SendContactMessage(to []string, data ContactMessageData) error {
	return s.sendTemplateEmail(
		to,
		fmt.Sprintf("Contact form: %s", data.Subject),
		"contact_message.html",
		data,
	)
}

// SendRawHTML sends pre-rendered content, used by newsletter campaigns where
// the body comes from the operator rather than an embedded template.
func (s *EmailService) SendRawHTML(to, subject, html string) error {
	emailData := EmailData{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	return s.post(emailData)
}

func (s *EmailService) SendWeeklyReport(to []string, data WeeklyReportData) error {
	return s.sendTemplateEmail(
		to,
		fmt.Sprintf("Weekly Analytics Report - %s", data.Period),
		"weekly_report.html",
		data,
	)
}
