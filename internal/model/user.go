package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"onehux_backend/pkg/jobs"
)

type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email    string    `json:"email" gorm:"uniqueIndex;not null"`
	Password string    `json:"-" gorm:"not null"`
	Username string    `json:"username" gorm:"uniqueIndex;not null"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number" gorm:"size:17"`
	CompanyName string `json:"company_name"`
	Website     string `json:"website"`
	Bio         string `json:"bio" gorm:"size:500"`
	Avatar      string `json:"avatar"`

	IsVerified      bool `json:"is_verified" gorm:"default:false"`
	IsStaff         bool `json:"is_staff" gorm:"default:false"`
	IsActive        bool `json:"is_active" gorm:"default:true"`
	NewsletterOptIn bool `json:"newsletter_opt_in" gorm:"default:true"`

	LastLoginIP string     `json:"last_login_ip"`
	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AfterCreate queues the welcome email. Enqueue failures are logged inside the
// jobs client and never roll back the registration.
func (u *User) AfterCreate(tx *gorm.DB) error {
	jobs.EnqueueWelcomeEmail(u.ID)
	return nil
}

func (u *User) GetFullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return strings.Split(u.Email, "@")[0]
	}
	return full
}

func (u *User) GetShortName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return strings.Split(u.Email, "@")[0]
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":                u.ID,
		"username":          u.Username,
		"email":             u.Email,
		"first_name":        u.FirstName,
		"last_name":         u.LastName,
		"full_name":         u.GetFullName(),
		"phone_number":      u.PhoneNumber,
		"company_name":      u.CompanyName,
		"website":           u.Website,
		"bio":               u.Bio,
		"avatar":            u.Avatar,
		"is_verified":       u.IsVerified,
		"newsletter_opt_in": u.NewsletterOptIn,
		"created_at":        u.CreatedAt,
	}
}
