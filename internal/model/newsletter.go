package model

import "time"

type NewsletterSubscription struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null"`
	Name           string     `json:"name" gorm:"size:255"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`
	SubscribedAt   time.Time  `json:"subscribed_at" gorm:"autoCreateTime"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
}

func (NewsletterSubscription) TableName() string {
	return "newsletter_subscriptions"
}

// Reactivate flips an inactive subscription back on and clears the
// unsubscribe timestamp.
func (n *NewsletterSubscription) Reactivate() {
	n.IsActive = true
	n.UnsubscribedAt = nil
}

func (n *NewsletterSubscription) Unsubscribe() {
	now := time.Now()
	n.IsActive = false
	n.UnsubscribedAt = &now
}
