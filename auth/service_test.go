package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenServer answers token requests and records the submitted forms.
func tokenServer(t *testing.T, response string) (*httptest.Server, *[]map[string]string) {
	t.Helper()

	var forms []map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		form := map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		forms = append(forms, form)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, &forms
}

func testConfig(t *testing.T, tokenURL string) Config {
	return Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenFile:    filepath.Join(t.TempDir(), "tokens.json"),
		TokenURL:     tokenURL,
		In:           strings.NewReader(""),
		Out:          &bytes.Buffer{},
	}
}

func readCache(t *testing.T, path string) tokenCache {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var cache tokenCache
	require.NoError(t, json.Unmarshal(data, &cache))
	return cache
}

func TestNewService(t *testing.T) {
	t.Run("requires credentials", func(t *testing.T) {
		_, err := NewService(Config{ClientID: "id"}, zerolog.Nop())
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("without cache", func(t *testing.T) {
		svc, err := NewService(testConfig(t, ""), zerolog.Nop())
		require.NoError(t, err)
		assert.False(t, svc.Authorized())
		assert.Empty(t, svc.AccessToken())
		assert.Equal(t, DefaultRedirectURL, svc.oauth.RedirectURL)
		assert.Equal(t, DefaultTokenURL, svc.oauth.Endpoint.TokenURL)
	})

	t.Run("loads cache", func(t *testing.T) {
		cfg := testConfig(t, "")
		require.NoError(t, os.WriteFile(cfg.TokenFile,
			[]byte(`{"access_token": "a", "refresh_token": "r", "expires_by": 1634567890.5}`), 0o600))

		svc, err := NewService(cfg, zerolog.Nop())
		require.NoError(t, err)
		assert.True(t, svc.Authorized())
		assert.Equal(t, "a", svc.AccessToken())
		assert.Equal(t, "r", svc.RefreshToken())
		assert.Equal(t, time.Unix(1634567890, int64(500*time.Millisecond)), svc.ExpiresBy())
	})

	t.Run("corrupt cache", func(t *testing.T) {
		cfg := testConfig(t, "")
		require.NoError(t, os.WriteFile(cfg.TokenFile, []byte(`not json`), 0o600))

		_, err := NewService(cfg, zerolog.Nop())
		assert.ErrorContains(t, err, "failed to parse token file")
	})
}

func TestAuthorize(t *testing.T) {
	server, forms := tokenServer(t, `{"access_token": "new-access", "refresh_token": "new-refresh", "token_type": "bearer", "expires_in": 3600}`)

	cfg := testConfig(t, server.URL)
	cfg.In = strings.NewReader("abc123\n")
	out := &bytes.Buffer{}
	cfg.Out = out

	svc, err := NewService(cfg, zerolog.Nop())
	require.NoError(t, err)

	before := time.Now()
	require.NoError(t, svc.EnsureAuthorized(context.Background()))

	assert.Contains(t, out.String(), DefaultAuthURL)
	assert.Contains(t, out.String(), "client_id=client-id")
	assert.Contains(t, out.String(), "redirect_uri=oob")

	require.Len(t, *forms, 1)
	form := (*forms)[0]
	assert.Equal(t, "authorization_code", form["grant_type"])
	assert.Equal(t, "abc123", form["code"])
	assert.Equal(t, "client-id", form["client_id"])
	assert.Equal(t, "client-secret", form["client_secret"])

	assert.Equal(t, "new-access", svc.AccessToken())
	assert.Equal(t, "new-refresh", svc.RefreshToken())
	assert.WithinDuration(t, before.Add(time.Hour), svc.ExpiresBy(), time.Minute)

	cache := readCache(t, cfg.TokenFile)
	assert.Equal(t, "new-access", cache.AccessToken)
	assert.Equal(t, "new-refresh", cache.RefreshToken)
	assert.InDelta(t, float64(svc.ExpiresBy().Unix()), cache.ExpiresBy, 1)
}

func TestAuthorizeNoCode(t *testing.T) {
	svc, err := NewService(testConfig(t, ""), zerolog.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Authorize(context.Background()), ErrNoCode)
}

func TestRefreshTokens(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantRefresh string
	}{
		{
			name:        "rotated refresh token",
			response:    `{"access_token": "a2", "refresh_token": "r2", "token_type": "bearer", "expires_in": 3600}`,
			wantRefresh: "r2",
		},
		{
			name:        "refresh token kept",
			response:    `{"access_token": "a2", "token_type": "bearer", "expires_in": 3600}`,
			wantRefresh: "r1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, forms := tokenServer(t, tt.response)
			cfg := testConfig(t, server.URL)
			require.NoError(t, os.WriteFile(cfg.TokenFile,
				[]byte(`{"access_token": "a1", "refresh_token": "r1", "expires_by": 1}`), 0o600))

			svc, err := NewService(cfg, zerolog.Nop())
			require.NoError(t, err)
			require.NoError(t, svc.RefreshTokens(context.Background()))

			require.Len(t, *forms, 1)
			assert.Equal(t, "refresh_token", (*forms)[0]["grant_type"])
			assert.Equal(t, "r1", (*forms)[0]["refresh_token"])

			assert.Equal(t, "a2", svc.AccessToken())
			assert.Equal(t, tt.wantRefresh, svc.RefreshToken())
			assert.True(t, svc.ExpiresBy().After(time.Now()))

			cache := readCache(t, cfg.TokenFile)
			assert.Equal(t, "a2", cache.AccessToken)
			assert.Equal(t, tt.wantRefresh, cache.RefreshToken)
		})
	}
}

func TestRefreshTokensWithoutAuthorization(t *testing.T) {
	svc, err := NewService(testConfig(t, ""), zerolog.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RefreshTokens(context.Background()), ErrNotAuthorized)
}
