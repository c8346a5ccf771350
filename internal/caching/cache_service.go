package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"stockpulse/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService caches aggregation reports. Stats are a reporting view, so a
// slightly stale cached report is acceptable; cache failures must degrade to
// a recompute, never to wrong numbers.
type CacheService interface {
	GetStatsReport(ctx context.Context, key string) (*models.StatsReport, error)
	SetStatsReport(ctx context.Context, key string, report *models.StatsReport, ttl time.Duration) error
	DeleteStatsReports(ctx context.Context, keys ...string) error
}

// StatsKey builds the cache key for one warehouse's report, or the
// fleet-level report when warehouseID is nil.
func StatsKey(warehouseID *uuid.UUID) string {
	if warehouseID == nil {
		return "stockpulse:stats:all"
	}
	return fmt.Sprintf("stockpulse:stats:%s", warehouseID.String())
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as a bare host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetStatsReport(ctx context.Context, key string) (*models.StatsReport, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var report models.StatsReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *redisCacheService) SetStatsReport(ctx context.Context, key string, report *models.StatsReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteStatsReports(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
