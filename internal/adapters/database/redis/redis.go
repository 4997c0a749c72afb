package redis

import (
	"context"
	"fmt"

	"github.com/Badsnus/cu-clubs-web/internal/adapters/database/redis/reports"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/database/redis/sessions"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Reports  *reports.Storage
	Sessions *sessions.Storage

	clients []*redis.Client
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	reportStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := reportStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping reports storage: %w", err)
	}

	sessionStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       1,
	})
	if err := sessionStorage.Ping(context.Background()).Err(); err != nil {
		_ = reportStorage.Close()
		return nil, fmt.Errorf("failed to ping sessions storage: %w", err)
	}

	return &Client{
		Reports:  reports.NewStorage(reportStorage),
		Sessions: sessions.NewStorage(sessionStorage),
		clients:  []*redis.Client{reportStorage, sessionStorage},
	}, nil
}

func (c *Client) Close() error {
	var firstErr error
	for _, client := range c.clients {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
