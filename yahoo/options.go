package yahoo

import (
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the fantasy sports API v2 endpoint.
	DefaultBaseURL = "https://fantasysports.yahooapis.com/fantasy/v2"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
	// DefaultRequestDelay is waited before every request.
	DefaultRequestDelay = time.Second
	// DefaultRefreshMargin refreshes tokens this long before they expire.
	DefaultRefreshMargin = 5 * time.Minute
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL       string
	timeout       time.Duration
	httpClient    *http.Client
	requestDelay  time.Duration
	refreshMargin time.Duration
	userAgent     string
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:       DefaultBaseURL,
		timeout:       DefaultTimeout,
		requestDelay:  DefaultRequestDelay,
		refreshMargin: DefaultRefreshMargin,
		userAgent:     "yfantasy",
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client. WithTimeout is ignored when set.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithRequestDelay sets the pause before each request. Zero disables it.
func WithRequestDelay(delay time.Duration) Option {
	return func(o *clientOptions) {
		if delay >= 0 {
			o.requestDelay = delay
		}
	}
}

// WithRefreshMargin sets how long before expiry tokens are refreshed.
func WithRefreshMargin(margin time.Duration) Option {
	return func(o *clientOptions) {
		if margin >= 0 {
			o.refreshMargin = margin
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}
