package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ryanm101/gameroom/internal/bgg"
	"github.com/ryanm101/gameroom/internal/cache"
	"github.com/ryanm101/gameroom/internal/catalog"
	"github.com/ryanm101/gameroom/internal/config"
	"github.com/ryanm101/gameroom/internal/igdb"
	"github.com/ryanm101/gameroom/internal/logging"
	"github.com/ryanm101/gameroom/internal/tracing"
)

// app holds the process-wide service graph.
type app struct {
	cache   *cache.Cache
	service *catalog.Service
}

func newApp(ctx context.Context, c *config.Config) (*app, error) {
	store, err := cache.OpenStore(ctx, c.GetCacheBackend(), c.Cache.Path, c.Cache.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	rc := cache.New(store)

	if !c.HasIGDBCredentials() {
		logging.Warn("IGDB credentials not set; console catalogs will be empty")
	}

	ttl := c.GetCacheTTL()
	httpClient := &http.Client{
		Timeout:   c.GetUpstreamTimeout(),
		Transport: tracing.Transport(nil),
	}

	tokens := igdb.NewTokenProvider(c.IGDB.ClientID, c.IGDB.ClientSecret,
		igdb.WithTokenURL(c.IGDB.TokenURL),
		igdb.WithTokenHTTPClient(httpClient),
	)
	games := igdb.NewClient(c.IGDB.ClientID, tokens, rc,
		igdb.WithBaseURL(c.IGDB.BaseURL),
		igdb.WithHTTPClient(httpClient),
		igdb.WithCacheTTL(ttl),
	)
	boards := bgg.NewClient(rc,
		bgg.WithBaseURL(c.BGG.BaseURL),
		bgg.WithToken(c.BGG.Token),
		bgg.WithUserAgent(c.BGG.UserAgent),
		bgg.WithHTTPClient(httpClient),
		bgg.WithCacheTTL(ttl),
	)

	logging.Info("cache ready", "backend", c.GetCacheBackend(), "ttl", ttl)
	return &app{
		cache:   rc,
		service: catalog.NewService(games, boards),
	}, nil
}

func (a *app) Close() error {
	return a.cache.Close()
}
