package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/forecast-engine/internal/config"
	"github.com/andresuchdata/forecast-engine/internal/domain"
	"github.com/andresuchdata/forecast-engine/internal/forecast"
)

const (
	reportKeyPrefix  = "forecast:report"
	scanBatchSize    = 100
	defaultReportTTL = 5 * time.Minute
)

// ReportCache stores rendered forecast reports keyed by tenant, asOf and
// engine configuration. Reports are deterministic for identical inputs, so
// a short TTL only has to cover data freshness, not correctness.
type ReportCache interface {
	GetReport(ctx context.Context, tenantID string, asOf time.Time, cfg forecast.Config) (*domain.ForecastReport, bool, error)
	SetReport(ctx context.Context, tenantID string, asOf time.Time, cfg forecast.Config, report *domain.ForecastReport) error
	InvalidateTenant(ctx context.Context, tenantID string) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

// NewReportCache connects to Redis when caching is enabled, otherwise
// returns a noop implementation so callers never branch.
func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.ReportTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultReportTTL
	}

	return &redisReportCache{client: client, ttl: ttl}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context, tenantID string, asOf time.Time, cfg forecast.Config) (*domain.ForecastReport, bool, error) {
	payload, err := c.client.Get(ctx, buildReportKey(tenantID, asOf, cfg)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.ForecastReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode forecast report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, tenantID string, asOf time.Time, cfg forecast.Config, report *domain.ForecastReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode forecast report cache: %w", err)
	}

	if err := c.client.Set(ctx, buildReportKey(tenantID, asOf, cfg), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisReportCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	pattern := fmt.Sprintf("%s:%s:*", reportKeyPrefix, tenantID)

	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopReportCache) GetReport(ctx context.Context, tenantID string, asOf time.Time, cfg forecast.Config) (*domain.ForecastReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, tenantID string, asOf time.Time, cfg forecast.Config, report *domain.ForecastReport) error {
	return nil
}

func (n *noopReportCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	return nil
}

func buildReportKey(tenantID string, asOf time.Time, cfg forecast.Config) string {
	// Config holds only ints, floats and an int slice; Marshal cannot fail.
	raw, _ := json.Marshal(cfg)
	digest := sha1.Sum(append(raw, []byte(asOf.UTC().Format(time.RFC3339))...))

	return fmt.Sprintf("%s:%s:%s", reportKeyPrefix, tenantID, hex.EncodeToString(digest[:]))
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
