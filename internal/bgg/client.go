// Package bgg fetches the curated board-game shelf from the BoardGameGeek XML
// API. Fetches never fail visibly: any upstream or parse problem yields a
// static fallback list instead.
package bgg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
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
	source = "bgg"

	// DefaultBaseURL is the XML API v2 root.
	DefaultBaseURL = "https://boardgamegeek.com/xmlapi2"

	// DefaultUserAgent identifies the lounge to the API.
	DefaultUserAgent = "PawsPlayGameroom/1.0"

	cacheKey = "boardgames"
)

// DefaultIDs is the lounge's board-game shelf.
var DefaultIDs = []int{
	13,     // Catan
	9209,   // Ticket to Ride
	1406,   // Monopoly
	161936, // Pandemic
	320,    // Scrabble
	181,    // Risk
	1294,   // Clue
	124361, // Codenames
	171,    // Chess
	2083,   // Checkers
	2223,   // UNO
	54200,  // Jenga
	68448,  // 7 Wonders
	167355, // Azul
	173346, // Wingspan
}

// Client fetches and caches the board-game shelf.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	ids        []int
	httpClient *http.Client
	cache      *cache.Cache
	ttl        time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithIDs replaces the shelf.
func WithIDs(ids []int) Option {
	return func(c *Client) { c.ids = append([]int(nil), ids...) }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCacheTTL sets how long a successful fetch is cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewClient creates a board-game client sharing the process response cache.
func NewClient(rc *cache.Cache, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		ids:        DefaultIDs,
		httpClient: &http.Client{Timeout: 10 * time.Second, Transport: tracing.Transport(nil)},
		cache:      rc,
		ttl:        cache.DefaultTTL,
		logger:     logging.For(source),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBoardGames returns the shelf, from cache when fresh. On any failure it
// logs and returns the fallback list, which is never cached.
func (c *Client) FetchBoardGames(ctx context.Context) []game.Game {
	var games []game.Game
	if c.cache.Get(ctx, cacheKey, &games) {
		return games
	}

	games, err := c.fetch(ctx)
	if err != nil {
		metrics.Fallbacks.WithLabelValues(source).Inc()
		c.logger.Warn("board games unavailable, serving fallback", "error", err)
		return Fallback()
	}

	c.cache.Set(ctx, cacheKey, games, c.ttl)
	return games
}

func (c *Client) fetch(ctx context.Context) (_ []game.Game, err error) {
	const op = "fetch board games"

	ctx, span := tracing.StartSpan(ctx, "bgg.FetchBoardGames", trace.WithAttributes(
		attribute.Int("ids", len(c.ids)),
	))
	defer func() { tracing.End(span, err) }()

	start := time.Now()
	defer func() { metrics.RecordUpstream(source, start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.thingURL(), nil)
	if err != nil {
		return nil, upstream.Wrap(upstream.ErrUpstream, source, op, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/xml")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, upstream.Wrap(upstream.ErrUpstream, source, op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, upstream.StatusError(source, op, resp.Status)
	}

	doc, err := Parse(resp.Body)
	if err != nil {
		return nil, upstream.Wrap(upstream.ErrParse, source, op, err)
	}
	// A queued request answers 202 with a message document and no items.
	if len(doc.Items) == 0 {
		return nil, upstream.Wrap(upstream.ErrParse, source, op, errors.New("response carried no items"))
	}

	c.logger.Debug("board games fetched", "count", len(doc.Items))
	return NormalizeAll(doc.Items), nil
}

func (c *Client) thingURL() string {
	ids := make([]string, len(c.ids))
	for i, id := range c.ids {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%s/thing?id=%s&type=boardgame&stats=1", c.baseURL, strings.Join(ids, ","))
}
