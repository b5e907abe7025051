package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"onehux_backend/pkg/database"
	"onehux_backend/pkg/jobs"
)

// taskRecorder stands in for the queue client and remembers what was enqueued.
type taskRecorder struct {
	tasks []*asynq.Task
}

func (r *taskRecorder) Enqueue(task *asynq.Task, opts ...asynq.Option) error {
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *taskRecorder) types() []string {
	out := make([]string, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t.Type())
	}
	return out
}

func setupTestDB(t *testing.T) (*gorm.DB, *taskRecorder) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&User{}, &Session{}, &QuoteRequest{}, &NewsletterSubscription{}))
	database.SetDB(db)

	recorder := &taskRecorder{}
	jobs.SetClient(recorder)
	t.Cleanup(func() { jobs.SetClient(nil) })

	return db, recorder
}

func newTestQuote() QuoteRequest {
	return QuoteRequest{
		FullName:           "Jane Doe",
		Email:              "jane@example.com",
		Phone:              "+15551234567",
		WebsiteType:        "business",
		ProjectDescription: "Company site with a blog",
		BudgetRange:        "1000-2500",
		Timeline:           "1_month",
	}
}

func TestQuoteCreateDefaults(t *testing.T) {
	db, recorder := setupTestDB(t)

	quote := newTestQuote()
	require.NoError(t, db.Create(&quote).Error)

	assert.NotEqual(t, uuid.Nil, quote.ID)
	assert.Equal(t, QuoteStatusNew, quote.Status)
	assert.Nil(t, quote.ContactedAt)
	assert.Nil(t, quote.EstimatedCost)

	// Intake queues the confirmation and the operator alert as separate tasks.
	assert.ElementsMatch(t, []string{jobs.TypeQuoteConfirmation, jobs.TypeQuoteOperatorAlert}, recorder.types())
}

func TestContactedAtStampedOnce(t *testing.T) {
	db, _ := setupTestDB(t)

	quote := newTestQuote()
	require.NoError(t, db.Create(&quote).Error)
	require.Nil(t, quote.ContactedAt)

	quote.Status = QuoteStatusContacted
	require.NoError(t, db.Save(&quote).Error)
	require.NotNil(t, quote.ContactedAt)
	first := *quote.ContactedAt

	time.Sleep(10 * time.Millisecond)

	quote.AdminNotes = "Called, left a voicemail"
	require.NoError(t, db.Save(&quote).Error)

	var reloaded QuoteRequest
	require.NoError(t, db.First(&reloaded, "id = ?", quote.ID).Error)
	require.NotNil(t, reloaded.ContactedAt)
	assert.WithinDuration(t, first, *reloaded.ContactedAt, time.Millisecond)
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from QuoteStatus
		to   QuoteStatus
		want bool
	}{
		{"forward one step", QuoteStatusNew, QuoteStatusContacted, true},
		{"forward skipping steps", QuoteStatusNew, QuoteStatusCompleted, true},
		{"same status", QuoteStatusQuoted, QuoteStatusQuoted, true},
		{"backwards", QuoteStatusQuoted, QuoteStatusContacted, false},
		{"cancel from new", QuoteStatusNew, QuoteStatusCancelled, true},
		{"cancel from in progress", QuoteStatusInProgress, QuoteStatusCancelled, true},
		{"cancel completed", QuoteStatusCompleted, QuoteStatusCancelled, false},
		{"revive cancelled", QuoteStatusCancelled, QuoteStatusNew, false},
		{"reopen completed", QuoteStatusCompleted, QuoteStatusInProgress, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := QuoteRequest{Status: tc.from}
			assert.Equal(t, tc.want, q.CanTransitionTo(tc.to))
		})
	}
}

func TestValidQuoteStatus(t *testing.T) {
	for _, s := range []string{"new", "contacted", "quoted", "approved", "in_progress", "completed", "cancelled"} {
		assert.True(t, ValidQuoteStatus(s), s)
	}
	assert.False(t, ValidQuoteStatus("pending"))
	assert.False(t, ValidQuoteStatus(""))
}
