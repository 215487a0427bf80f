// Package igdb talks to the IGDB video-game catalog: it owns the OAuth token
// lifecycle, issues batched lookups in the catalog's query language and
// normalizes the JSON records into game.Game values.
package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ryanm101/gameroom/internal/cache"
	"github.com/ryanm101/gameroom/internal/game"
	"github.com/ryanm101/gameroom/internal/logging"
	"github.com/ryanm101/gameroom/internal/metrics"
	"github.com/ryanm101/gameroom/internal/tracing"
	"github.com/ryanm101/gameroom/internal/upstream"
)

const (
	source = "igdb"

	// DefaultBaseURL is the catalog API root.
	DefaultBaseURL = "https://api.igdb.com/v4"

	searchLimit = 20
)

// PlatformIDs maps platform bucket keys to catalog platform ids for search filtering.
var PlatformIDs = map[string]int{
	game.PS5:    167,
	game.Xbox:   169,
	game.Switch: 130,
}

// Client issues catalog queries and caches normalized results.
type Client struct {
	clientID   string
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	cache      *cache.Cache
	ttl        time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the catalog API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for catalog queries.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCacheTTL sets how long normalized results are cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewClient creates a catalog client. The cache is shared process-wide.
func NewClient(clientID string, tokens TokenSource, rc *cache.Cache, opts ...Option) *Client {
	c := &Client{
		clientID:   clientID,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second, Transport: tracing.Transport(nil)},
		tokens:     tokens,
		cache:      rc,
		ttl:        cache.DefaultTTL,
		logger:     logging.For(source),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchByIDs looks up all ids for one platform in a single batched request.
func (c *Client) FetchByIDs(ctx context.Context, platform string, ids []int) (_ []game.Game, err error) {
	if len(ids) == 0 {
		return []game.Game{}, nil
	}

	key := "igdb:games:" + platform + ":" + joinIDs(sortedIDs(ids))
	var games []game.Game
	if c.cache.Get(ctx, key, &games) {
		return games, nil
	}

	ctx, span := tracing.StartSpan(ctx, "igdb.FetchByIDs", trace.WithAttributes(
		attribute.String("platform", platform),
		attribute.Int("ids", len(ids)),
	))
	defer func() { tracing.End(span, err) }()

	raws, err := c.query(ctx, "fetch games", ByIDsQuery(ids))
	if err != nil {
		return nil, err
	}

	games = NormalizeAll(raws)
	c.cache.Set(ctx, key, games, c.ttl)
	return games, nil
}

// Search runs a free-text search, optionally limited to one platform bucket.
// Unknown platforms search across all platforms.
func (c *Client) Search(ctx context.Context, term, platform string) (_ []game.Game, err error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []game.Game{}, nil
	}

	key := "igdb:search:" + term + ":" + platform
	var games []game.Game
	if c.cache.Get(ctx, key, &games) {
		return games, nil
	}

	ctx, span := tracing.StartSpan(ctx, "igdb.Search", trace.WithAttributes(
		attribute.String("query", term),
		attribute.String("platform", platform),
	))
	defer func() { tracing.End(span, err) }()

	raws, err := c.query(ctx, "search games", SearchQuery(term, PlatformIDs[platform]))
	if err != nil {
		return nil, err
	}

	games = NormalizeAll(raws)
	c.cache.Set(ctx, key, games, c.ttl)
	return games, nil
}

// query posts q to the games endpoint and decodes the JSON array response.
func (c *Client) query(ctx context.Context, op string, q Query) (_ []RawGame, err error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, upstream.Wrap(upstream.ErrAuth, source, op, err)
	}

	start := time.Now()
	defer func() { metrics.RecordUpstream(source, start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/games", strings.NewReader(q.String()))
	if err != nil {
		return nil, upstream.Wrap(upstream.ErrUpstream, source, op, err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, upstream.Wrap(upstream.ErrUpstream, source, op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, upstream.StatusError(source, op, resp.Status)
	}

	var raws []RawGame
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, upstream.Wrap(upstream.ErrParse, source, op, fmt.Errorf("decode games: %w", err))
	}

	c.logger.Debug("catalog query served", "op", op, "results", len(raws))
	return raws, nil
}
