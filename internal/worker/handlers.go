package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"onehux_backend/internal/model"
	"onehux_backend/pkg/config"
	"onehux_backend/pkg/database"
	"onehux_backend/pkg/email"
	"onehux_backend/pkg/jobs"
)

var cfg *config.Config

func Init(c *config.Config) {
	cfg = c
}

var timelineDisplay = map[string]string{
	"asap":     "Rush delivery (additional fees apply)",
	"1_month":  "2-4 weeks",
	"2_months": "4-8 weeks",
	"3_months": "8-12 weeks",
	"flexible": "Flexible timeline",
}

var budgetDisplay = map[string]string{
	"500-1000":   "$500 - $1,000",
	"1000-2500":  "$1,000 - $2,500",
	"2500-5000":  "$2,500 - $5,000",
	"5000-10000": "$5,000 - $10,000",
	"10000+":     "$10,000+",
	"not_sure":   "Not specified",
}

// operatorRecipients falls back to the from address when no operator emails
// are configured.
func operatorRecipients() []string {
	if len(cfg.Email.OperatorEmails) > 0 {
		return cfg.Email.OperatorEmails
	}
	return []string{cfg.Email.From}
}

// NewMux registers every task handler on an asynq mux.
func NewMux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TypeWelcomeEmail, HandleWelcomeEmail)
	mux.HandleFunc(jobs.TypeQuoteConfirmation, HandleQuoteConfirmation)
	mux.HandleFunc(jobs.TypeQuoteOperatorAlert, HandleQuoteOperatorAlert)
	mux.HandleFunc(jobs.TypeContactEmail, HandleContactEmail)
	mux.HandleFunc(jobs.TypeNewsletterEmail, HandleNewsletterEmail)
	mux.HandleFunc(jobs.TypeWeeklyReport, HandleWeeklyReport)
	mux.HandleFunc(jobs.TypeSessionCleanup, HandleSessionCleanup)
	mux.HandleFunc(jobs.TypeDatabaseMaintenance, HandleDatabaseMaintenance)
	mux.HandleFunc(jobs.TypeActivityReport, HandleActivityReport)
	mux.HandleFunc(jobs.TypeHealthCheck, HandleHealthCheck)
	return mux
}

func HandleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var payload jobs.WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal welcome payload: %v: %w", err, asynq.SkipRetry)
	}

	var user model.User
	if err := database.GetDB().First(&user, "id = ?", payload.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("User %s not found, skipping welcome email", payload.UserID)
			return nil
		}
		return err
	}

	return email.GlobalEmailService.SendWelcomeEmail(user.Email, user.GetFullName(), cfg.Server.BaseURL)
}

func HandleQuoteConfirmation(ctx context.Context, t *asynq.Task) error {
	quote, err := loadQuote(t)
	if err != nil || quote == nil {
		return err
	}

	estimated := timelineDisplay[quote.Timeline]
	if estimated == "" {
		estimated = "To be determined"
	}

	return email.GlobalEmailService.SendQuoteConfirmation(quote.Email, email.QuoteConfirmationData{
		FullName:          quote.FullName,
		WebsiteType:       quote.WebsiteType,
		ProjectDesc:       quote.ProjectDescription,
		EstimatedTimeline: estimated,
		ContactEmail:      operatorRecipients()[0],
	})
}

func HandleQuoteOperatorAlert(ctx context.Context, t *asynq.Task) error {
	quote, err := loadQuote(t)
	if err != nil || quote == nil {
		return err
	}

	budget := budgetDisplay[quote.BudgetRange]
	if budget == "" {
		budget = "Unknown"
	}

	features := "None specified"
	var list []string
	if len(quote.FeaturesNeeded) > 0 {
		if err := json.Unmarshal(quote.FeaturesNeeded, &list); err == nil && len(list) > 0 {
			features = strings.Join(list, ", ")
		}
	}

	return email.GlobalEmailService.SendQuoteOperatorAlert(operatorRecipients(), email.QuoteOperatorAlertData{
		FullName:      quote.FullName,
		Email:         quote.Email,
		Phone:         quote.Phone,
		CompanyName:   quote.CompanyName,
		WebsiteType:   quote.WebsiteType,
		ProjectDesc:   quote.ProjectDescription,
		BudgetDisplay: budget,
		Timeline:      quote.Timeline,
		FeaturesList:  features,
		AdminURL:      fmt.Sprintf("%s/admin/quotes/%s", cfg.Server.BaseURL, quote.ID),
	})
}

func HandleContactEmail(ctx context.Context, t *asynq.Task) error {
	var payload jobs.ContactEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal contact payload: %v: %w", err, asynq.SkipRetry)
	}

	return email.GlobalEmailService.SendContactMessage(operatorRecipients(), email.ContactMessageData{
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Message: payload.Message,
	})
}

func HandleNewsletterEmail(ctx context.Context, t *asynq.Task) error {
	var payload jobs.NewsletterEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal newsletter payload: %v: %w", err, asynq.SkipRetry)
	}

	var subscribers []model.NewsletterSubscription
	if err := database.GetDB().
		Where("id IN ? AND is_active = ?", payload.SubscriberIDs, true).
		Find(&subscribers).Error; err != nil {
		return err
	}

	sent, failed := 0, 0
	for _, sub := range subscribers {
		if err := email.GlobalEmailService.SendRawHTML(sub.Email, payload.Subject, payload.HTML); err != nil {
			log.Printf("Failed to send newsletter to %s: %v", sub.Email, err)
			failed++
			continue
		}
		sent++
	}
	log.Printf("Newsletter sent: %d successful, %d failed", sent, failed)
	return nil
}

func HandleWeeklyReport(ctx context.Context, t *asynq.Task) error {
	end := time.Now()
	start := end.AddDate(0, 0, -7)

	report, err := WeeklyCounts(database.GetDB(), start, end)
	if err != nil {
		return err
	}

	log.Printf("Weekly analytics: %+v", report)
	return email.GlobalEmailService.SendWeeklyReport(operatorRecipients(), report)
}

func HandleSessionCleanup(ctx context.Context, t *asynq.Task) error {
	sessions, users, err := CleanupExpired(database.GetDB())
	if err != nil {
		return err
	}
	log.Printf("Cleanup completed: %d expired sessions, %d unverified users removed", sessions, users)
	return nil
}

func HandleDatabaseMaintenance(ctx context.Context, t *asynq.Task) error {
	quotes, users, err := MaintainDatabase(database.GetDB())
	if err != nil {
		return err
	}
	log.Printf("Database maintenance completed: %d quotes, %d active users", quotes, users)
	return nil
}

func HandleActivityReport(ctx context.Context, t *asynq.Task) error {
	return SnapshotActivity(database.GetDB())
}

func HandleHealthCheck(ctx context.Context, t *asynq.Task) error {
	log.Printf("Worker healthy at %s", time.Now().UTC().Format(time.RFC3339))
	return nil
}

// loadQuote resolves the quote referenced by an email task. A missing record
// is terminal, not retryable.
func loadQuote(t *asynq.Task) (*model.QuoteRequest, error) {
	var payload jobs.QuotePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote payload: %v: %w", err, asynq.SkipRetry)
	}

	var quote model.QuoteRequest
	if err := database.GetDB().First(&quote, "id = ?", payload.QuoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Quote %s not found, skipping notification", payload.QuoteID)
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}
