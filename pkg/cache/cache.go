package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"onehux_backend/pkg/config"
)

var rdb *redis.Client

const counterTTL = 24 * time.Hour

// ActivitySnapshotKey holds the latest activity analysis for the back office.
const ActivitySnapshotKey = "activity_snapshot"

func Init(cfg *config.Config) {
	rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis cache unavailable: %v", err)
	}
}

// TrackQuoteCreated bumps the daily, per-type and per-budget counters. Counter
// failures are logged and ignored, they never affect the request.
func TrackQuoteCreated(websiteType, budgetRange string) {
	if rdb == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	today := time.Now().Format("2006-01-02")
	keys := []string{
		fmt.Sprintf("daily_quotes:%s", today),
		fmt.Sprintf("quote_type_count:%s", websiteType),
		fmt.Sprintf("quote_budget_count:%s", budgetRange),
	}

	for _, key := range keys {
		if err := rdb.Incr(ctx, key).Err(); err != nil {
			log.Printf("Could not bump counter %s: %v", key, err)
			continue
		}
		rdb.Expire(ctx, key, counterTTL)
	}
}

// StoreSnapshot keeps the latest activity analysis for the admin dashboard.
func StoreSnapshot(key string, payload []byte, ttl time.Duration) {
	if rdb == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		log.Printf("Could not store snapshot %s: %v", key, err)
	}
}

func GetSnapshot(key string) ([]byte, error) {
	if rdb == nil {
		return nil, redis.Nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	return rdb.Get(ctx, key).Bytes()
}
