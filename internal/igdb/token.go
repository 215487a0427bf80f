package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ryanm101/gameroom/internal/logging"
	"github.com/ryanm101/gameroom/internal/metrics"
	"github.com/ryanm101/gameroom/internal/tracing"
	"github.com/ryanm101/gameroom/internal/upstream"
)

// DefaultTokenURL is the Twitch identity endpoint that issues IGDB app tokens.
const DefaultTokenURL = "https://id.twitch.tv/oauth2/token"

// refreshMargin is how long before the real expiry a token stops being handed out.
const refreshMargin = 60 * time.Second

// TokenSource yields a bearer token valid for the catalog API.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenProvider caches an OAuth client-credentials token and refreshes it
// shortly before it expires. Concurrent refreshes are coalesced into one
// exchange.
type TokenProvider struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client
	now          func() time.Time
	logger       *slog.Logger

	mu        sync.Mutex
	token     string
	refreshAt time.Time

	group singleflight.Group
}

// TokenOption configures a TokenProvider.
type TokenOption func(*TokenProvider)

// WithTokenURL overrides the identity endpoint.
func WithTokenURL(u string) TokenOption {
	return func(p *TokenProvider) {
		if u != "" {
			p.tokenURL = u
		}
	}
}

// WithTokenHTTPClient sets the HTTP client used for exchanges.
func WithTokenHTTPClient(c *http.Client) TokenOption {
	return func(p *TokenProvider) { p.httpClient = c }
}

// WithTokenClock replaces the provider's time source.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(p *TokenProvider) { p.now = now }
}

// NewTokenProvider creates a provider for the given client credentials.
func NewTokenProvider(clientID, clientSecret string, opts ...TokenOption) *TokenProvider {
	p := &TokenProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     DefaultTokenURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second, Transport: tracing.Transport(nil)},
		now:          time.Now,
		logger:       logging.For("igdb-token"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Token returns the cached token, or performs a client-credentials exchange
// when none is cached or the cached one is within a minute of expiring.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	if tok, ok := p.cached(); ok {
		return tok, nil
	}

	// Waiters share one exchange; it outlives any single caller's cancellation.
	detached := context.WithoutCancel(ctx)
	v, err, _ := p.group.Do("token", func() (any, error) {
		if tok, ok := p.cached(); ok {
			return tok, nil
		}
		return p.refresh(detached)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (p *TokenProvider) cached() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Before(p.refreshAt) {
		return p.token, true
	}
	return "", false
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func (p *TokenProvider) refresh(ctx context.Context) (_ string, err error) {
	ctx, span := tracing.StartSpan(ctx, "igdb.token.refresh")
	defer func() {
		metrics.TokenRefreshes.WithLabelValues(metrics.Outcome(err)).Inc()
		tracing.End(span, err)
	}()

	if p.clientID == "" || p.clientSecret == "" {
		return "", upstream.Wrap(upstream.ErrAuth, source, "token exchange",
			errors.New("client id and secret are required"))
	}

	form := url.Values{}
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", upstream.Wrap(upstream.ErrAuth, source, "token exchange", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", upstream.Wrap(upstream.ErrAuth, source, "token exchange", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", upstream.Wrap(upstream.ErrAuth, source, "token exchange",
			fmt.Errorf("unexpected status: %s", resp.Status))
	}

	var result tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", upstream.Wrap(upstream.ErrAuth, source, "token exchange", err)
	}
	if result.AccessToken == "" {
		return "", upstream.Wrap(upstream.ErrAuth, source, "token exchange",
			errors.New("response carried no access_token"))
	}

	issued := p.now()
	refreshAt := issued.Add(time.Duration(result.ExpiresIn)*time.Second - refreshMargin)

	p.mu.Lock()
	p.token = result.AccessToken
	p.refreshAt = refreshAt
	p.mu.Unlock()

	p.logger.Info("token obtained", "expires_in", result.ExpiresIn, "refresh_at", refreshAt)
	return result.AccessToken, nil
}
