package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"onehux_backend/pkg/cache"
	"onehux_backend/pkg/jobs"
)

type QuoteStatus string

const (
	QuoteStatusNew        QuoteStatus = "new"
	QuoteStatusContacted  QuoteStatus = "contacted"
	QuoteStatusQuoted     QuoteStatus = "quoted"
	QuoteStatusApproved   QuoteStatus = "approved"
	QuoteStatusInProgress QuoteStatus = "in_progress"
	QuoteStatusCompleted  QuoteStatus = "completed"
	QuoteStatusCancelled  QuoteStatus = "cancelled"
)

// statusOrder positions the happy path. Cancelled sits outside the order and
// is handled separately.
var statusOrder = map[QuoteStatus]int{
	QuoteStatusNew:        0,
	QuoteStatusContacted:  1,
	QuoteStatusQuoted:     2,
	QuoteStatusApproved:   3,
	QuoteStatusInProgress: 4,
	QuoteStatusCompleted:  5,
}

var WebsiteTypes = []string{"business", "ecommerce", "portfolio", "blog", "landing", "web_app", "custom"}

var BudgetRanges = []string{"500-1000", "1000-2500", "2500-5000", "5000-10000", "10000+", "not_sure"}

var Timelines = []string{"asap", "1_month", "2_months", "3_months", "flexible"}

type QuoteRequest struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`

	FullName    string `json:"full_name" gorm:"not null"`
	Email       string `json:"email" gorm:"index;not null"`
	Phone       string `json:"phone" gorm:"size:20;not null"`
	CompanyName string `json:"company_name"`

	WebsiteType        string         `json:"website_type" gorm:"size:50;not null"`
	ProjectDescription string         `json:"project_description" gorm:"type:text"`
	BudgetRange        string         `json:"budget_range" gorm:"size:20;not null"`
	Timeline           string         `json:"timeline" gorm:"size:20;not null"`
	FeaturesNeeded     datatypes.JSON `json:"features_needed"`
	CurrentWebsite     string         `json:"current_website"`

	Status        QuoteStatus `json:"status" gorm:"size:20;index;default:'new'"`
	EstimatedCost *float64    `json:"estimated_cost" gorm:"type:numeric(10,2)"`
	AdminNotes    string      `json:"admin_notes" gorm:"type:text"`

	UserID *uuid.UUID `json:"user_id" gorm:"type:uuid"`
	User   *User      `json:"-" gorm:"foreignKey:UserID"`

	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ContactedAt *time.Time `json:"contacted_at"`
}

func (QuoteRequest) TableName() string {
	return "quote_requests"
}

func (q *QuoteRequest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Status == "" {
		q.Status = QuoteStatusNew
	}
	return nil
}

// BeforeSave stamps ContactedAt on the first transition into contacted. The
// timestamp is written at most once; later contacted->other->contacted cycles
// keep the original contact time.
func (q *QuoteRequest) BeforeSave(tx *gorm.DB) error {
	if q.Status == QuoteStatusContacted && q.ContactedAt == nil {
		now := time.Now()
		q.ContactedAt = &now
	}
	return nil
}

// AfterCreate fires the intake side effects: client confirmation and operator
// alert go on the queue, analytics counters get bumped. None of it can fail
// the insert.
func (q *QuoteRequest) AfterCreate(tx *gorm.DB) error {
	jobs.EnqueueQuoteEmails(q.ID)
	cache.TrackQuoteCreated(q.WebsiteType, q.BudgetRange)
	return nil
}

func (q *QuoteRequest) IsNew() bool {
	return q.Status == QuoteStatusNew
}

func (q *QuoteRequest) IsTerminal() bool {
	return q.Status == QuoteStatusCompleted || q.Status == QuoteStatusCancelled
}

// CanTransitionTo enforces the workflow: forward moves along the happy path,
// cancellation from any non-terminal state.
func (q *QuoteRequest) CanTransitionTo(next QuoteStatus) bool {
	if next == q.Status {
		return true
	}
	if next == QuoteStatusCancelled {
		return !q.IsTerminal()
	}
	from, ok := statusOrder[q.Status]
	if !ok {
		return false
	}
	to, ok := statusOrder[next]
	if !ok {
		return false
	}
	return to > from
}

func ValidQuoteStatus(s string) bool {
	if QuoteStatus(s) == QuoteStatusCancelled {
		return true
	}
	_, ok := statusOrder[QuoteStatus(s)]
	return ok
}
