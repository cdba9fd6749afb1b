// Package auth manages the OAuth2 tokens used to call the fantasy API.
package auth

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Yahoo OAuth2 endpoints and defaults.
const (
	DefaultAuthURL     = "https://api.login.yahoo.com/oauth2/request_auth"
	DefaultTokenURL    = "https://api.login.yahoo.com/oauth2/get_token"
	DefaultRedirectURL = "oob"
	DefaultTokenFile   = ".tokens.json"
)

// Common errors
var (
	// ErrMissingCredentials indicates the client id or secret is not configured
	ErrMissingCredentials = errors.New("auth: client id and client secret are required")
	// ErrNotAuthorized indicates there are no cached tokens and no authorization has run
	ErrNotAuthorized = errors.New("auth: no tokens, run the authorization flow first")
	// ErrNoCode indicates the authorization code prompt received no input
	ErrNoCode = errors.New("auth: no authorization code entered")
)

// Config holds the OAuth client settings and the token cache location.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
	RedirectURL  string
	AuthURL      string
	TokenURL     string

	// In and Out are used by Authorize to prompt for the verifier code.
	In  io.Reader
	Out io.Writer
}

// tokenCache is the on-disk token format.
type tokenCache struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresBy    float64 `json:"expires_by"`
}

// Service obtains, caches and refreshes OAuth2 tokens.
type Service struct {
	oauth     *oauth2.Config
	tokenFile string
	in        io.Reader
	out       io.Writer
	logger    zerolog.Logger

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresBy    time.Time
}

// NewService creates a Service and loads cached tokens from cfg.TokenFile
// when the file exists.
func NewService(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = DefaultTokenFile
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = DefaultRedirectURL
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	s := &Service{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			RedirectURL: cfg.RedirectURL,
		},
		tokenFile: cfg.TokenFile,
		in:        cfg.In,
		out:       cfg.Out,
		logger:    logger,
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// AccessToken returns the current access token.
func (s *Service) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Service) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// ExpiresBy returns when the access token expires.
func (s *Service) ExpiresBy() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresBy
}

// Authorized reports whether tokens are available.
func (s *Service) Authorized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken != ""
}

// EnsureAuthorized runs Authorize when no tokens are cached.
func (s *Service) EnsureAuthorized(ctx context.Context) error {
	if s.Authorized() {
		return nil
	}
	return s.Authorize(ctx)
}

// Authorize runs the out-of-band authorization code flow: it prints the
// consent URL, reads the verifier code and exchanges it for tokens.
func (s *Service) Authorize(ctx context.Context) error {
	url := s.oauth.AuthCodeURL("", oauth2.SetAuthURLParam("language", "en-us"))
	fmt.Fprintf(s.out, "Open the following URL, approve access and paste the code shown:\n\n  %s\n\nCode: ", url)

	code, err := bufio.NewReader(s.in).ReadString('\n')
	code = strings.TrimSpace(code)
	if code == "" {
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read authorization code: %w", err)
		}
		return ErrNoCode
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("error exchanging code: %w", err)
	}

	s.logger.Info().Time("expires_by", token.Expiry).Msg("Authorization complete")
	return s.store(token)
}

// RefreshTokens exchanges the refresh token for a new access token and
// persists the result.
func (s *Service) RefreshTokens(ctx context.Context) error {
	s.mu.RLock()
	current := &oauth2.Token{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
		Expiry:       time.Unix(1, 0),
	}
	s.mu.RUnlock()

	if current.RefreshToken == "" {
		return ErrNotAuthorized
	}

	token, err := s.oauth.TokenSource(ctx, current).Token()
	if err != nil {
		return fmt.Errorf("error refreshing token: %w", err)
	}

	s.logger.Debug().Time("expires_by", token.Expiry).Msg("Refreshed access token")
	return s.store(token)
}

func (s *Service) store(token *oauth2.Token) error {
	s.mu.Lock()
	s.accessToken = token.AccessToken
	if token.RefreshToken != "" {
		s.refreshToken = token.RefreshToken
	}
	s.expiresBy = token.Expiry
	cache := tokenCache{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
		ExpiresBy:    float64(s.expiresBy.UnixNano()) / float64(time.Second),
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}
	if err := os.WriteFile(s.tokenFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s *Service) load() error {
	data, err := os.ReadFile(s.tokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug().Str("file", s.tokenFile).Msg("No cached tokens")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read token file: %w", err)
	}

	var cache tokenCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return fmt.Errorf("failed to parse token file %s: %w", s.tokenFile, err)
	}

	sec, frac := math.Modf(cache.ExpiresBy)
	s.mu.Lock()
	s.accessToken = cache.AccessToken
	s.refreshToken = cache.RefreshToken
	s.expiresBy = time.Unix(int64(sec), int64(frac*float64(time.Second)))
	s.mu.Unlock()

	s.logger.Debug().Str("file", s.tokenFile).Time("expires_by", s.expiresBy).Msg("Loaded cached tokens")
	return nil
}
