// Package fetch retrieves the source documents. Local paths are read
// directly; http(s) URLs go through a retrying client backed by an
// optional on-disk cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultAttempts = 3
	defaultDelay    = time.Second
)

// Config configures a Client. Zero values fall back to defaults; a nil
// Cache disables caching.
type Config struct {
	Timeout  time.Duration
	Attempts uint
	Cache    *Cache
	Logger   *slog.Logger
}

// Client retrieves documents by local path or URL.
type Client struct {
	http     *http.Client
	cache    *Cache
	attempts uint
	logger   *slog.Logger
}

// New creates a fetch client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = defaultAttempts
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		cache:    cfg.Cache,
		attempts: attempts,
		logger:   logger,
	}
}

// Get retrieves one document.
func (c *Client) Get(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return c.getURL(ctx, ref)
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}
	return data, nil
}

// GetAll retrieves every document concurrently, returning results in
// input order. All fetches are independent; the caller needs all of
// them before the join can begin, so the first failure cancels the
// rest.
func (c *Client) GetAll(ctx context.Context, refs []string) ([][]byte, error) {
	results := make([][]byte, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			data, err := c.Get(ctx, ref)
			if err != nil {
				return err
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) getURL(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if data, ok, err := c.cache.Get(ctx, url); err != nil {
			c.logger.Warn("cache read failed", "url", url, "error", err)
		} else if ok {
			c.logger.Debug("cache hit", "url", url)
			return data, nil
		}
	}

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}
			req.Header.Set("Accept", "application/json")
			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status %s", resp.Status)
			}
			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(defaultDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, url, body); err != nil {
			c.logger.Warn("cache write failed", "url", url, "error", err)
		}
	}
	return body, nil
}
