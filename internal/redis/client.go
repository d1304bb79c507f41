package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

const (
	holidaysKey = "checklist:holidays"
	flashPrefix = "checklist:flash:"
	tempPrefix  = "checklist:temp:"
)

type Client struct {
	rdb *redis.Client
}

// FlashMessage is the one-shot feedback shown after a generation run.
type FlashMessage struct {
	Level        string    `json:"level"` // success, warning
	Message      string    `json:"message"`
	Created      int       `json:"created"`
	SkippedDates []string  `json:"skipped_dates,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Holiday cache, stored as YYYY-MM-DD strings
func (c *Client) SetHolidays(ctx context.Context, dates []string, ttl time.Duration) error {
	return c.SetTempData(ctx, holidaysKey, dates, ttl)
}

func (c *Client) GetHolidays(ctx context.Context) ([]string, error) {
	var dates []string
	if err := c.GetTempData(ctx, holidaysKey, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

func (c *Client) InvalidateHolidays(ctx context.Context) error {
	return c.DeleteTempData(ctx, holidaysKey)
}

// Flash messages
func (c *Client) PushFlash(ctx context.Context, owner string, msg *FlashMessage, ttl time.Duration) error {
	return c.SetTempData(ctx, flashPrefix+owner, msg, ttl)
}

// PopFlash reads and removes the owner's flash message.
func (c *Client) PopFlash(ctx context.Context, owner string) (*FlashMessage, error) {
	key := tempPrefix + flashPrefix + owner
	var get *redis.StringCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.Get(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to pop flash message: %w", err)
	}
	val, err := get.Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to pop flash message: %w", err)
	}

	var msg FlashMessage
	if err := json.Unmarshal([]byte(val), &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flash message: %w", err)
	}
	return &msg, nil
}

// Temporary data management
func (c *Client) SetTempData(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal temp data: %w", err)
	}

	return c.rdb.Set(ctx, tempPrefix+key, jsonData, ttl).Err()
}

func (c *Client) GetTempData(ctx context.Context, key string, dest interface{}) error {
	val, err := c.rdb.Get(ctx, tempPrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get temp data: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) DeleteTempData(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, tempPrefix+key).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
