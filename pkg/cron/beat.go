package cron

import (
	"log"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"

	"onehux_backend/pkg/jobs"
)

// InitBeat starts the periodic schedule. Each entry only enqueues, the worker
// pool does the actual work.
func InitBeat(client *asynq.Client) *cron.Cron {
	c := cron.New()

	schedule := []struct {
		spec string
		name string
		task func() *asynq.Task
	}{
		{"0 2 * * *", "session cleanup", jobs.NewSessionCleanupTask},
		{"0 1 * * 1", "weekly report", jobs.NewWeeklyReportTask},
		{"0 */6 * * *", "activity analysis", jobs.NewActivityReportTask},
		{"0 6 * * *", "worker health check", jobs.NewHealthCheckTask},
		{"0 3 * * 0", "database maintenance", jobs.NewDatabaseMaintenanceTask},
	}

	for _, entry := range schedule {
		entry := entry
		_, err := c.AddFunc(entry.spec, func() {
			if _, err := client.Enqueue(entry.task()); err != nil {
				log.Printf("Could not enqueue %s: %v", entry.name, err)
				return
			}
			log.Printf("Enqueued %s", entry.name)
		})
		if err != nil {
			log.Printf("Could not schedule %s: %v", entry.name, err)
		}
	}

	c.Start()
	log.Println("Beat schedule started")
	return c
}
