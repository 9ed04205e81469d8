package webclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/igorxl1/leaguepull/internal/platform/logging"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultMaxRetries    = 3
	defaultBackoffBase   = 600 * time.Millisecond
	defaultRotationDelay = 600 * time.Millisecond
	maxBodyBytes         = 6 << 20
)

// ErrTransport marks every failure produced by this client once all
// retries and header profiles are exhausted.
var ErrTransport = crerr.New("transport failure")

// ErrNoHeaderProfiles is returned when the client was built with an
// empty profile list. Should be unreachable with default profiles.
var ErrNoHeaderProfiles = crerr.New("no header profiles configured")

// StatusError is a terminal non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d for %s", e.StatusCode, e.URL)
}

// HeaderProfile is one header signature tried against the upstream.
// The upstream blocks some signatures more aggressively than others,
// so the client rotates through profiles when a request keeps
// returning 403.
type HeaderProfile struct {
	Name    string
	Headers map[string]string
}

// DefaultProfiles returns a full browser signature followed by a
// minimal one.
func DefaultProfiles() []HeaderProfile {
	return []HeaderProfile{
		{
			Name: "browser",
			Headers: map[string]string{
				"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
					"AppleWebKit/537.36 (KHTML, like Gecko) " +
					"Chrome/119.0.0.0 Safari/537.36",
				"Accept":          "application/json, text/plain, */*",
				"Referer":         "https://www.sofascore.com/",
				"Origin":          "https://www.sofascore.com",
				"Accept-Language": "pt-BR,pt;q=0.9,en;q=0.8",
			},
		},
		{
			Name: "minimal",
			Headers: map[string]string{
				"User-Agent": "Mozilla/5.0",
				"Accept":     "application/json, text/plain, */*",
			},
		},
	}
}

type Config struct {
	HTTPClient *http.Client
	Profiles   []HeaderProfile
	// MaxRetries is the number of transport-level retries per header
	// profile, applied on retryable statuses and network errors.
	MaxRetries    int
	BackoffBase   time.Duration
	RotationDelay time.Duration
	Logger        *logging.Logger
}

// Client issues GET requests with two retry layers: transport retries
// with exponential backoff inside one header profile, and profile
// rotation on 403 across profiles.
type Client struct {
	httpClient    *http.Client
	profiles      []HeaderProfile
	maxRetries    int
	backoffBase   time.Duration
	rotationDelay time.Duration
	logger        *logging.Logger
	sleep         func(ctx context.Context, d time.Duration) error
}

func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	} else if httpClient.Timeout <= 0 {
		// Copy before defaulting the timeout so a shared client is
		// not altered behind the caller's back.
		clone := *httpClient
		clone.Timeout = defaultTimeout
		httpClient = &clone
	}

	profiles := cfg.Profiles
	if profiles == nil {
		profiles = DefaultProfiles()
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	backoffBase := cfg.BackoffBase
	if backoffBase <= 0 {
		backoffBase = defaultBackoffBase
	}
	rotationDelay := cfg.RotationDelay
	if rotationDelay <= 0 {
		rotationDelay = defaultRotationDelay
	}

	return &Client{
		httpClient:    httpClient,
		profiles:      profiles,
		maxRetries:    maxRetries,
		backoffBase:   backoffBase,
		rotationDelay: rotationDelay,
		logger:        logger,
		sleep:         sleepContext,
	}
}

// GetJSON fetches url and decodes the payload into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	raw, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode payload from %s: %w", url, err)
	}
	return nil
}

// Get fetches url, rotating header profiles while the upstream keeps
// answering 403. The first non-403 outcome, success or failure, ends
// the rotation.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if len(c.profiles) == 0 {
		return nil, ErrNoHeaderProfiles
	}

	var lastErr error
	for i, profile := range c.profiles {
		raw, status, err := c.getWithProfile(ctx, url, profile)
		if err != nil {
			// Network-level exhaustion: no response to classify, so
			// rotating signatures cannot help.
			return nil, err
		}
		if status >= 200 && status < 300 {
			return raw, nil
		}
		statusErr := crerr.Mark(&StatusError{StatusCode: status, URL: url}, ErrTransport)
		if status != http.StatusForbidden {
			return nil, statusErr
		}

		lastErr = statusErr
		c.logger.WarnContext(ctx, "upstream rejected header profile",
			"profile", profile.Name,
			"url", url,
		)
		if i < len(c.profiles)-1 {
			if err := c.sleep(ctx, c.rotationDelay); err != nil {
				return nil, err
			}
		}
	}
	return nil, lastErr
}

// getWithProfile runs one transport retry cycle under a single header
// profile. It returns the final status when a response was obtained,
// or an error when the network failed on every attempt.
func (c *Client) getWithProfile(ctx context.Context, url string, profile HeaderProfile) ([]byte, int, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("build request: %w", err)
		}
		for key, value := range profile.Headers {
			req.Header.Set(key, value)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", ErrTransport, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", ErrTransport, readErr)
			} else if !isRetryableStatus(resp.StatusCode) || attempt == c.maxRetries {
				return raw, resp.StatusCode, nil
			} else {
				lastErr = crerr.Mark(&StatusError{StatusCode: resp.StatusCode, URL: url}, ErrTransport)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		if err := c.sleep(ctx, c.backoff(attempt)); err != nil {
			return nil, 0, err
		}
	}
	return nil, 0, lastErr
}

func (c *Client) backoff(attempt int) time.Duration {
	return c.backoffBase << uint(attempt)
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusForbidden,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
