package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client caches query results for the order and dashboard families.
// Invalidation is eager and broad: any mutation drops the whole key
// family rather than tracking individual entries.
type Client struct {
	rdb *redis.Client
}

const (
	orderListPrefix = "orders:"
	dashboardPrefix = "dashboard:"
	overduePrefix   = "overdue_notified:"
)

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Order list cache, keyed by branch (0 = all branches).

func (c *Client) SetOrderList(branchID uint, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal order list: %w", err)
	}
	key := fmt.Sprintf("%s%d", orderListPrefix, branchID)
	return c.rdb.Set(ctx, key, jsonData, ttl).Err()
}

func (c *Client) GetOrderList(branchID uint, dest interface{}) (bool, error) {
	ctx := context.Background()
	key := fmt.Sprintf("%s%d", orderListPrefix, branchID)
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get order list: %w", err)
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// InvalidateOrders drops every cached order list and dashboard entry.
// Called after every order mutation.
func (c *Client) InvalidateOrders() error {
	if err := c.deleteByPrefix(orderListPrefix); err != nil {
		return err
	}
	return c.InvalidateDashboard()
}

// InvalidateDashboard drops the cached dashboard entries. Customer
// mutations call this directly since they only move the dashboard
// counts, not the order lists.
func (c *Client) InvalidateDashboard() error {
	return c.deleteByPrefix(dashboardPrefix)
}

// Dashboard cache.

func (c *Client) SetDashboard(key string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard data: %w", err)
	}
	return c.rdb.Set(ctx, dashboardPrefix+key, jsonData, ttl).Err()
}

func (c *Client) GetDashboard(key string, dest interface{}) (bool, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, dashboardPrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get dashboard data: %w", err)
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// Overdue notification markers keep the sweep from re-notifying the
// same order within the marker TTL.

func (c *Client) MarkOverdueNotified(orderID uint, ttl time.Duration) error {
	ctx := context.Background()
	key := fmt.Sprintf("%s%d", overduePrefix, orderID)
	return c.rdb.Set(ctx, key, 1, ttl).Err()
}

func (c *Client) WasOverdueNotified(orderID uint) (bool, error) {
	ctx := context.Background()
	key := fmt.Sprintf("%s%d", overduePrefix, orderID)
	_, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *Client) deleteByPrefix(prefix string) error {
	ctx := context.Background()
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
