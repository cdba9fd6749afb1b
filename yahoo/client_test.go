package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	token      string
	expiresBy  time.Time
	refreshes  int
	refreshErr error
}

func (f *fakeTokens) AccessToken() string  { return f.token }
func (f *fakeTokens) ExpiresBy() time.Time { return f.expiresBy }

func (f *fakeTokens) RefreshTokens(ctx context.Context) error {
	f.refreshes++
	if f.refreshErr != nil {
		return f.refreshErr
	}
	f.token = "refreshed"
	f.expiresBy = time.Now().Add(time.Hour)
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens *fakeTokens, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL + "/"), WithRequestDelay(0)}, opts...)
	client, err := NewClient(tokens, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("requires tokens", func(t *testing.T) {
		_, err := NewClient(nil, zerolog.Nop())
		assert.ErrorIs(t, err, ErrNoTokenSource)
	})

	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient(&fakeTokens{}, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.baseURL)
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
		assert.Equal(t, DefaultRequestDelay, client.requestDelay)
		assert.Equal(t, DefaultRefreshMargin, client.refreshMargin)
	})

	t.Run("options", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(&fakeTokens{}, zerolog.Nop(),
			WithBaseURL("http://localhost:8080/v2/"),
			WithHTTPClient(custom),
			WithRequestDelay(250*time.Millisecond),
			WithRefreshMargin(time.Minute),
			WithUserAgent("test-agent"),
		)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/v2", client.baseURL)
		assert.Same(t, custom, client.httpClient)
		assert.Equal(t, 250*time.Millisecond, client.requestDelay)
		assert.Equal(t, time.Minute, client.refreshMargin)
		assert.Equal(t, "test-agent", client.userAgent)
	})

	t.Run("negative delay ignored", func(t *testing.T) {
		client, err := NewClient(&fakeTokens{}, zerolog.Nop(), WithRequestDelay(-time.Second))
		require.NoError(t, err)
		assert.Equal(t, DefaultRequestDelay, client.requestDelay)
	})
}

func TestGet(t *testing.T) {
	tokens := &fakeTokens{token: "access", expiresBy: time.Now().Add(time.Hour)}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/league/nhl.l.1/standings", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		w.Write([]byte(`{"fantasy_content": {"league": [{"league_key": "nhl.l.1"}]}}`))
	}, tokens, WithUserAgent("test-agent"))

	content, err := client.Get(context.Background(), "league/nhl.l.1/standings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"league": [{"league_key": "nhl.l.1"}]}`, string(content))
	assert.Zero(t, tokens.refreshes)
}

func TestGetErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantErr    error
		check      func(t *testing.T, e *APIError)
	}{
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error": {"description": "token_expired"}}`,
			wantStatus: http.StatusUnauthorized,
			check: func(t *testing.T, e *APIError) {
				assert.True(t, e.IsUnauthorized())
				assert.Contains(t, e.Body, "token_expired")
			},
		},
		{
			name:       "not found",
			status:     http.StatusNotFound,
			body:       `not here`,
			wantStatus: http.StatusNotFound,
			check: func(t *testing.T, e *APIError) {
				assert.True(t, e.IsNotFound())
				assert.False(t, e.IsUnauthorized())
			},
		},
		{
			name:       "rate limited",
			status:     999,
			wantStatus: 999,
			check: func(t *testing.T, e *APIError) {
				assert.True(t, e.IsRateLimited())
			},
		},
		{
			name:    "missing fantasy_content",
			status:  http.StatusOK,
			body:    `{"error": "none"}`,
			wantErr: ErrNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &fakeTokens{token: "access", expiresBy: time.Now().Add(time.Hour)}
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, tokens)

			_, err := client.Get(context.Background(), "game/nhl")
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, "game/nhl", apiErr.Path)
			tt.check(t, apiErr)
		})
	}
}

func TestGetRefreshesTokens(t *testing.T) {
	tests := []struct {
		name        string
		expiresIn   time.Duration
		margin      time.Duration
		wantRefresh bool
		wantToken   string
	}{
		{name: "fresh", expiresIn: time.Hour, margin: 5 * time.Minute, wantToken: "access"},
		{name: "inside margin", expiresIn: 2 * time.Minute, margin: 5 * time.Minute, wantRefresh: true, wantToken: "refreshed"},
		{name: "expired", expiresIn: -time.Minute, margin: 0, wantRefresh: true, wantToken: "refreshed"},
		{name: "custom margin", expiresIn: 2 * time.Minute, margin: time.Minute, wantToken: "access"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &fakeTokens{token: "access", expiresBy: time.Now().Add(tt.expiresIn)}
			var gotAuth string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				w.Write([]byte(`{"fantasy_content": {}}`))
			}, tokens, WithRefreshMargin(tt.margin))

			_, err := client.Get(context.Background(), "game/nhl")
			require.NoError(t, err)

			if tt.wantRefresh {
				assert.Equal(t, 1, tokens.refreshes)
			} else {
				assert.Zero(t, tokens.refreshes)
			}
			assert.Equal(t, "Bearer "+tt.wantToken, gotAuth)
		})
	}
}

func TestGetRefreshFailure(t *testing.T) {
	calls := 0
	tokens := &fakeTokens{expiresBy: time.Now().Add(-time.Hour), refreshErr: errors.New("invalid_grant")}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	}, tokens)

	_, err := client.Get(context.Background(), "game/nhl")
	assert.ErrorIs(t, err, ErrTokenRefresh)
	assert.ErrorContains(t, err, "invalid_grant")
	assert.Zero(t, calls)
}

func TestGetRequestDelayHonoursContext(t *testing.T) {
	calls := 0
	tokens := &fakeTokens{token: "access", expiresBy: time.Now().Add(time.Hour)}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	}, tokens, WithRequestDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "game/nhl")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestGetSerializesConcurrentCalls(t *testing.T) {
	var inFlight, peak atomic.Int32
	tokens := &fakeTokens{token: "access", expiresBy: time.Now().Add(time.Hour)}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		w.Write([]byte(`{"fantasy_content": {"game": []}}`))
	}, tokens)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Get(context.Background(), "game/nhl")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), peak.Load())
}
