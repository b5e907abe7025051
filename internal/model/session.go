package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is the persisted counterpart of an issued token, so logins can be
// revoked and expired rows purged by the maintenance job.
type Session struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
