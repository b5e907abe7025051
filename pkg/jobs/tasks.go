package jobs

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names, one per kind of background work.
const (
	TypeWelcomeEmail        = "email:welcome"
	TypeQuoteConfirmation   = "email:quote_confirmation"
	TypeQuoteOperatorAlert  = "email:quote_operator_alert"
	TypeContactEmail        = "email:contact"
	TypeNewsletterEmail     = "email:newsletter"
	TypeWeeklyReport        = "report:weekly"
	TypeSessionCleanup      = "maintenance:cleanup"
	TypeDatabaseMaintenance = "maintenance:database"
	TypeActivityReport      = "maintenance:activity"
	TypeHealthCheck         = "worker:healthcheck"
)

// Queue names mirror the task routing of the original deployment.
const (
	QueueEmail       = "email"
	QueueMaintenance = "maintenance"
	QueueAnalytics   = "analytics"
)

const MaxRetry = 3

type WelcomeEmailPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

type QuotePayload struct {
	QuoteID uuid.UUID `json:"quote_id"`
}

// ContactEmailPayload carries the full message: contact submissions are not
// persisted, the task payload is the only copy.
type ContactEmailPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type NewsletterEmailPayload struct {
	SubscriberIDs []uint `json:"subscriber_ids"`
	Subject       string `json:"subject"`
	HTML          string `json:"html"`
}

func NewWelcomeEmailTask(userID uuid.UUID) (*asynq.Task, error) {
	data, err := json.Marshal(WelcomeEmailPayload{UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWelcomeEmail, data, asynq.Queue(QueueEmail), asynq.MaxRetry(MaxRetry)), nil
}

func NewQuoteConfirmationTask(quoteID uuid.UUID) (*asynq.Task, error) {
	data, err := json.Marshal(QuotePayload{QuoteID: quoteID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeQuoteConfirmation, data, asynq.Queue(QueueEmail), asynq.MaxRetry(MaxRetry)), nil
}

func NewQuoteOperatorAlertTask(quoteID uuid.UUID) (*asynq.Task, error) {
	data, err := json.Marshal(QuotePayload{QuoteID: quoteID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeQuoteOperatorAlert, data, asynq.Queue(QueueEmail), asynq.MaxRetry(MaxRetry)), nil
}

func NewContactEmailTask(payload ContactEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeContactEmail, data, asynq.Queue(QueueEmail), asynq.MaxRetry(MaxRetry)), nil
}

func NewNewsletterEmailTask(payload NewsletterEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNewsletterEmail, data, asynq.Queue(QueueEmail), asynq.MaxRetry(2)), nil
}

func NewWeeklyReportTask() *asynq.Task {
	return asynq.NewTask(TypeWeeklyReport, nil, asynq.Queue(QueueAnalytics))
}

func NewSessionCleanupTask() *asynq.Task {
	return asynq.NewTask(TypeSessionCleanup, nil, asynq.Queue(QueueMaintenance))
}

func NewDatabaseMaintenanceTask() *asynq.Task {
	return asynq.NewTask(TypeDatabaseMaintenance, nil, asynq.Queue(QueueMaintenance))
}

func NewActivityReportTask() *asynq.Task {
	return asynq.NewTask(TypeActivityReport, nil, asynq.Queue(QueueAnalytics))
}

func NewHealthCheckTask() *asynq.Task {
	return asynq.NewTask(TypeHealthCheck, nil, asynq.Queue(QueueMaintenance))
}
