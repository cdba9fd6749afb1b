package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TokenSource supplies and refreshes the bearer token used for requests.
type TokenSource interface {
	AccessToken() string
	ExpiresBy() time.Time
	RefreshTokens(ctx context.Context) error
}

// Client performs authenticated GET requests against the fantasy API.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	requestDelay  time.Duration
	refreshMargin time.Duration
	userAgent     string
	logger        zerolog.Logger

	// mu serialises the token check, the delay and the request.
	mu  sync.Mutex
	now func() time.Time
}

// NewClient creates a new client that authenticates with tokens.
func NewClient(tokens TokenSource, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, ErrNoTokenSource
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:       o.baseURL,
		httpClient:    httpClient,
		tokens:        tokens,
		requestDelay:  o.requestDelay,
		refreshMargin: o.refreshMargin,
		userAgent:     o.userAgent,
		logger:        logger,
		now:           time.Now,
	}, nil
}

// Get fetches a resource path and returns the fantasy_content payload.
// Any status other than 200 is returned as an *APIError.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureFreshTokens(ctx); err != nil {
		return nil, err
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Content json.RawMessage `json:"fantasy_content"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response for %s: %w", path, err)
	}
	if len(envelope.Content) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoContent)
	}
	return envelope.Content, nil
}

// ensureFreshTokens refreshes the tokens once now is past expiry minus the margin.
func (c *Client) ensureFreshTokens(ctx context.Context) error {
	expiresBy := c.tokens.ExpiresBy()
	if !c.now().After(expiresBy.Add(-c.refreshMargin)) {
		return nil
	}

	c.logger.Debug().Time("expires_by", expiresBy).Msg("Refreshing access token")
	if err := c.tokens.RefreshTokens(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrTokenRefresh, err)
	}
	return nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.requestDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.requestDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// doRequest performs the HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s?format=json", c.baseURL, strings.TrimLeft(path, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.tokens.AccessToken())
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().Str("path", path).Msg("Making fantasy API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Fantasy API response")

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body), Path: path}
	}
	return body, nil
}
