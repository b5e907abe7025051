package worker

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"onehux_backend/internal/model"
	"onehux_backend/pkg/cache"
	"onehux_backend/pkg/email"
)

// unverifiedMaxAge is how long an unverified account that never logged in is
// kept before cleanup removes it.
const unverifiedMaxAge = 7 * 24 * time.Hour

// CleanupExpired purges expired sessions and stale unverified accounts.
// Idempotent: a second run in the same window deletes nothing.
func CleanupExpired(db *gorm.DB) (sessions int64, users int64, err error) {
	res := db.Where("expires_at < ?", time.Now()).Delete(&model.Session{})
	if res.Error != nil {
		return 0, 0, fmt.Errorf("session cleanup: %w", res.Error)
	}
	sessions = res.RowsAffected

	cutoff := time.Now().Add(-unverifiedMaxAge)
	res = db.Where("is_verified = ? AND last_login_at IS NULL AND created_at < ?", false, cutoff).
		Delete(&model.User{})
	if res.Error != nil {
		return sessions, 0, fmt.Errorf("unverified user cleanup: %w", res.Error)
	}
	users = res.RowsAffected

	return sessions, users, nil
}

// WeeklyCounts gathers the aggregate numbers for the operator report.
func WeeklyCounts(db *gorm.DB, start, end time.Time) (email.WeeklyReportData, error) {
	report := email.WeeklyReportData{
		Period: fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
	}

	if err := db.Model(&model.User{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&report.NewUsers).Error; err != nil {
		return report, err
	}

	if err := db.Model(&model.QuoteRequest{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&report.NewQuotes).Error; err != nil {
		return report, err
	}

	if err := db.Model(&model.QuoteRequest{}).
		Where("status = ? AND updated_at BETWEEN ? AND ?", model.QuoteStatusCompleted, start, end).
		Count(&report.CompletedProjects).Error; err != nil {
		return report, err
	}

	if err := db.Model(&model.NewsletterSubscription{}).
		Where("subscribed_at BETWEEN ? AND ?", start, end).
		Count(&report.NewsletterSignups).Error; err != nil {
		return report, err
	}

	return report, nil
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type typeCount struct {
	WebsiteType string `json:"website_type"`
	Count       int64  `json:"count"`
}

type activitySnapshot struct {
	TotalQuotes        int64         `json:"total_quotes"`
	RecentQuotes30Days int64         `json:"recent_quotes_30_days"`
	StatusDistribution []statusCount `json:"status_distribution"`
	PopularTypes       []typeCount   `json:"popular_website_types"`
	AnalysisDate       string        `json:"analysis_date"`
}

// SnapshotActivity computes quote activity aggregates, logs them and caches
// the snapshot for the back-office.
func SnapshotActivity(db *gorm.DB) error {
	snap := activitySnapshot{
		AnalysisDate: time.Now().UTC().Format(time.RFC3339),
	}

	if err := db.Model(&model.QuoteRequest{}).Count(&snap.TotalQuotes).Error; err != nil {
		return err
	}

	if err := db.Model(&model.QuoteRequest{}).
		Where("created_at >= ?", time.Now().AddDate(0, 0, -30)).
		Count(&snap.RecentQuotes30Days).Error; err != nil {
		return err
	}

	if err := db.Model(&model.QuoteRequest{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&snap.StatusDistribution).Error; err != nil {
		return err
	}

	if err := db.Model(&model.QuoteRequest{}).
		Select("website_type, COUNT(*) as count").
		Group("website_type").
		Order("count DESC").
		Limit(5).
		Scan(&snap.PopularTypes).Error; err != nil {
		return err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	cache.StoreSnapshot(cache.ActivitySnapshotKey, payload, 12*time.Hour)
	log.Printf("Activity analysis completed: %s", payload)
	return nil
}

// MaintainDatabase reports table totals and refreshes planner statistics.
// VACUUM ANALYZE only applies to Postgres; other dialects just report counts.
func MaintainDatabase(db *gorm.DB) (totalQuotes, activeUsers int64, err error) {
	if err = db.Model(&model.QuoteRequest{}).Count(&totalQuotes).Error; err != nil {
		return
	}
	if err = db.Model(&model.User{}).Where("is_active = ?", true).Count(&activeUsers).Error; err != nil {
		return
	}

	if db.Dialector.Name() == "postgres" {
		if err = db.Exec("VACUUM ANALYZE").Error; err != nil {
			err = fmt.Errorf("vacuum analyze: %w", err)
		}
	}
	return
}
