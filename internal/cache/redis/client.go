package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/learnify/backend/internal/metrics"
	"github.com/learnify/backend/pkg/logger"
)

type Client struct {
	client *redis.Client
}

func NewClient(host string, port int, password string, db int) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis client initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// SetRecommendation caches a ranked response under the query hash.
func (c *Client) SetRecommendation(ctx context.Context, queryHash string, response interface{}, ttl time.Duration) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err := c.client.Set(ctx, fmt.Sprintf("recommend:%s", queryHash), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recommendation cache: %w", err)
	}

	logger.Debug("Recommendation cached", zap.String("query_hash", queryHash), zap.Duration("ttl", ttl))
	return nil
}

// GetRecommendation loads a cached response into response. Returns false on
// a miss.
func (c *Client) GetRecommendation(ctx context.Context, queryHash string, response interface{}) (bool, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf("recommend:%s", queryHash)).Bytes()
	if err == redis.Nil {
		metrics.CacheMisses.WithLabelValues("recommend").Inc()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get recommendation cache: %w", err)
	}

	if err := json.Unmarshal(data, response); err != nil {
		return false, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	metrics.CacheHits.WithLabelValues("recommend").Inc()
	logger.Debug("Recommendation cache hit", zap.String("query_hash", queryHash))
	return true, nil
}

// SetSession stores a session token for a username.
func (c *Client) SetSession(ctx context.Context, token, username string, ttl time.Duration) error {
	if err := c.client.Set(ctx, fmt.Sprintf("session:%s", token), username, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// GetSession resolves a session token to its username. Empty string when
// the token is unknown or expired.
func (c *Client) GetSession(ctx context.Context, token string) (string, error) {
	username, err := c.client.Get(ctx, fmt.Sprintf("session:%s", token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return username, nil
}

func (c *Client) DeleteSession(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, fmt.Sprintf("session:%s", token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
