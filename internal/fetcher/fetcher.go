package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// ErrFetchExhausted is returned after every retry attempt has failed.
// The wrapped message carries the last underlying failure.
var ErrFetchExhausted = errors.New("all fetch attempts failed")

const (
	// DefaultRateLimit is the minimum gap between two requests from the
	// same fetcher instance, measured from the end of the previous request.
	DefaultRateLimit  = 2 * time.Second
	DefaultMaxRetries = 3
	DefaultTimeout    = 30 * time.Second
)

// userAgents is rotated per request to reduce trivial fingerprinting.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Config configures a Fetcher. Zero values fall back to the defaults above.
type Config struct {
	// Name labels log lines, usually the source site name.
	Name       string
	RateLimit  time.Duration
	MaxRetries int
	Timeout    time.Duration
}

// Fetcher issues rate-limited, retried HTTP GET requests. Each source site
// owns its own instance, so rate-limit clocks never interfere across sites.
type Fetcher struct {
	name       string
	rateLimit  time.Duration
	maxRetries int
	client     *http.Client

	// backoffBase is the unit of exponential backoff between attempts.
	// Tests shrink it to keep retry paths fast.
	backoffBase time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

// New creates a Fetcher from cfg, applying defaults for unset fields.
func New(cfg Config) *Fetcher {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Name == "" {
		cfg.Name = "fetcher"
	}
	return &Fetcher{
		name:        cfg.Name,
		rateLimit:   cfg.RateLimit,
		maxRetries:  cfg.MaxRetries,
		client:      &http.Client{Timeout: cfg.Timeout},
		backoffBase: time.Second,
	}
}

// Fetch retrieves url as text. Transient failures (timeouts, connection
// errors, non-2xx responses) are retried with exponential backoff; once
// retries are exhausted the returned error wraps ErrFetchExhausted so the
// caller can skip the unit of work instead of aborting the whole scrape.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.respectRateLimit(ctx); err != nil {
		return "", err
	}
	defer func() {
		f.lastRequest = time.Now()
	}()

	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		body, err := f.doRequest(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		log.Printf("[%s] attempt %d/%d failed for %s: %v", f.name, attempt, f.maxRetries, url, err)

		if attempt == f.maxRetries {
			break
		}
		backoff := f.backoffBase * time.Duration(1<<attempt)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}
	return "", fmt.Errorf("fetch %s: %w after %d attempts: %v", url, ErrFetchExhausted, f.maxRetries, lastErr)
}

// respectRateLimit sleeps until the configured gap since the end of the
// previous request has elapsed. Must hold mu.
func (f *Fetcher) respectRateLimit(ctx context.Context) error {
	if f.lastRequest.IsZero() {
		return nil
	}
	elapsed := time.Since(f.lastRequest)
	if elapsed >= f.rateLimit {
		return nil
	}
	wait := f.rateLimit - elapsed
	log.Printf("[%s] rate limiting: waiting %v", f.name, wait.Round(time.Millisecond))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

func (f *Fetcher) doRequest(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("http status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}
