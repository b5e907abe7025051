package jobs

import (
	"log"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"onehux_backend/pkg/config"
)

// Enqueuer is the narrow surface the web path uses. Tests swap in a recorder.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) error
}

type asynqEnqueuer struct {
	client *asynq.Client
}

func (e *asynqEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) error {
	_, err := e.client.Enqueue(task, opts...)
	return err
}

var client Enqueuer

func InitClient(cfg *config.Config) {
	client = &asynqEnqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}),
	}
	log.Println("Job queue client initialized")
}

func SetClient(c Enqueuer) {
	client = c
}

// enqueue logs and swallows broker failures: the web-facing write has already
// committed and must not be rolled back by a notification problem.
func enqueue(task *asynq.Task) {
	if client == nil {
		log.Printf("Job queue client not initialized, dropping task %s", task.Type())
		return
	}
	if err := client.Enqueue(task); err != nil {
		log.Printf("Could not enqueue task %s: %v", task.Type(), err)
		return
	}
	log.Printf("Queued task %s", task.Type())
}

func EnqueueWelcomeEmail(userID uuid.UUID) {
	task, err := NewWelcomeEmailTask(userID)
	if err != nil {
		log.Printf("Could not build welcome email task: %v", err)
		return
	}
	enqueue(task)
}

// EnqueueQuoteEmails queues the client confirmation and the operator alert as
// two independent tasks. They may run in any order and fail independently.
func EnqueueQuoteEmails(quoteID uuid.UUID) {
	if task, err := NewQuoteConfirmationTask(quoteID); err != nil {
		log.Printf("Could not build quote confirmation task: %v", err)
	} else {
		enqueue(task)
	}

	if task, err := NewQuoteOperatorAlertTask(quoteID); err != nil {
		log.Printf("Could not build quote operator alert task: %v", err)
	} else {
		enqueue(task)
	}
}

// EnqueueNewsletterCampaign queues one batch send covering the given
// subscribers.
func EnqueueNewsletterCampaign(payload NewsletterEmailPayload) {
	task, err := NewNewsletterEmailTask(payload)
	if err != nil {
		log.Printf("Could not build newsletter task: %v", err)
		return
	}
	enqueue(task)
}

func EnqueueContactEmail(payload ContactEmailPayload) {
	task, err := NewContactEmailTask(payload)
	if err != nil {
		log.Printf("Could not build contact email task: %v", err)
		return
	}
	enqueue(task)
}
