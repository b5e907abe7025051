package main

import (
	"log"
	"time"

	"github.com/hibiken/asynq"

	"onehux_backend/internal/worker"
	"onehux_backend/pkg/cache"
	"onehux_backend/pkg/config"
	"onehux_backend/pkg/cron"
	"onehux_backend/pkg/database"
	"onehux_backend/pkg/email"
)

func main() {
	cfg := config.Load()

	if err := email.InitEmailService(cfg.Email.ResendAPIKey, cfg.Email.From); err != nil {
		log.Fatal("Could not initialize email service:", err)
	}

	database.InitDB(cfg.Database.URL)
	cache.Init(cfg)
	worker.Init(cfg)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	if cfg.Flags.BeatEnabled {
		beatClient := asynq.NewClient(redisOpt)
		defer beatClient.Close()
		beat := cron.InitBeat(beatClient)
		defer beat.Stop()
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"email":       6,
			"maintenance": 2,
			"analytics":   1,
		},
		RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
			return time.Duration(n) * 60 * time.Second
		},
	})

	log.Printf("Worker is running against %s", cfg.Redis.Addr)
	if err := srv.Run(worker.NewMux()); err != nil {
		log.Fatal("Could not run worker:", err)
	}
}
