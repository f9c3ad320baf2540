// Package seed loads the initial user dataset from an external source at
// process startup.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/noah-isme/userbase/internal/users"
)

// DefaultSourceURL is the external dataset queried when none is configured.
const DefaultSourceURL = "https://jsonplaceholder.typicode.com/users"

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultBackoffBase = 2 * time.Second
)

var (
	errTransient = errors.New("seed: transient fetch failure")
	errMalformed = errors.New("seed: malformed payload")
)

// externalUser mirrors the source payload shape.
type externalUser struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
}

// FetcherConfig holds the tunables of the seed fetch.
type FetcherConfig struct {
	URL         string
	Timeout     time.Duration
	MaxAttempts int
	BackoffBase time.Duration
}

// Fetcher retrieves the initial dataset with bounded retries.
type Fetcher struct {
	logger      *slog.Logger
	client      *http.Client
	url         string
	maxAttempts int
	backoffBase time.Duration
	now         func() time.Time
}

// NewFetcher constructs a fetcher, filling unset config fields with
// defaults (10s per-attempt timeout, 3 attempts, 2s backoff base).
func NewFetcher(logger *slog.Logger, cfg FetcherConfig) *Fetcher {
	if cfg.URL == "" {
		cfg.URL = DefaultSourceURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = defaultBackoffBase
	}
	return &Fetcher{
		logger:      logger,
		client:      &http.Client{Timeout: cfg.Timeout},
		url:         cfg.URL,
		maxAttempts: cfg.MaxAttempts,
		backoffBase: cfg.BackoffBase,
		now:         time.Now,
	}
}

// FetchInitialUsers retrieves and converts the external dataset. It never
// returns an error: transport failures are retried with exponential backoff
// (2s, 4s, ...) up to the attempt cap, parse failures abort immediately,
// and every failure path resolves to an empty slice so the host can start
// with zero seeded users.
func (f *Fetcher) FetchInitialUsers(ctx context.Context) []users.User {
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		list, err := f.fetchOnce(ctx)
		if err == nil {
			f.logger.Info("seed dataset fetched", slog.Int("records", len(list)))
			return list
		}
		if errors.Is(err, errMalformed) {
			f.logger.Warn("seed payload unparseable, starting empty", slog.Any("error", err))
			return nil
		}
		if !errors.Is(err, errTransient) {
			f.logger.Warn("seed fetch failed, starting empty", slog.Any("error", err))
			return nil
		}
		f.logger.Warn("seed fetch attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", f.maxAttempts),
			slog.Any("error", err))
		if attempt == f.maxAttempts {
			break
		}
		// Wait 2^attempt seconds before the next try.
		delay := f.backoffBase << (attempt - 1)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil
		}
	}
	f.logger.Warn("seed source unavailable, starting empty")
	return nil
}

func (f *Fetcher) fetchOnce(ctx context.Context) ([]users.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", errTransient, err)
	}

	var raw []externalUser
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}

	now := f.now()
	list := make([]users.User, len(raw))
	for i, ext := range raw {
		list[i] = users.User{
			ID:        ext.ID,
			Name:      ext.Name,
			Email:     ext.Email,
			Phone:     ext.Phone,
			Website:   ext.Website,
			Company:   ext.Company.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return list, nil
}
