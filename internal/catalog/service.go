// Package catalog aggregates the per-console catalogs and the board-game shelf
// into the single response the lounge front end renders.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ryanm101/gameroom/internal/game"
	"github.com/ryanm101/gameroom/internal/logging"
	"github.com/ryanm101/gameroom/internal/metrics"
	"github.com/ryanm101/gameroom/internal/tracing"
)

// GameFetcher looks up video games.
type GameFetcher interface {
	FetchByIDs(ctx context.Context, platform string, ids []int) ([]game.Game, error)
	Search(ctx context.Context, query, platform string) ([]game.Game, error)
}

// BoardGameFetcher returns the board-game shelf. It never fails.
type BoardGameFetcher interface {
	FetchBoardGames(ctx context.Context) []game.Game
}

// Service builds catalogs. It is safe for concurrent use.
type Service struct {
	games     GameFetcher
	boards    BoardGameFetcher
	inventory map[string][]int
	platforms []string
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithInventory replaces the curated ids. Platforms are served in the order given.
func WithInventory(platforms []string, inventory map[string][]int) Option {
	return func(s *Service) {
		s.platforms = append([]string(nil), platforms...)
		s.inventory = inventory
	}
}

// NewService creates an aggregation service over the two upstream clients.
func NewService(games GameFetcher, boards BoardGameFetcher, opts ...Option) *Service {
	s := &Service{
		games:     games,
		boards:    boards,
		inventory: DefaultInventory,
		platforms: VideoPlatforms,
		logger:    logging.For("catalog"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Platforms returns every bucket key, board games last.
func (s *Service) Platforms() []string {
	out := append([]string(nil), s.platforms...)
	return append(out, game.BoardGames)
}

// Catalog fetches every bucket concurrently. A failing console yields an
// empty list; the board-game shelf falls back on its own. The result always
// carries every bucket key.
func (s *Service) Catalog(ctx context.Context) game.Catalog {
	ctx, span := tracing.StartSpan(ctx, "catalog.Catalog")
	defer span.End()

	result := make(game.Catalog, len(s.platforms)+1)
	var mu sync.Mutex
	store := func(key string, games []game.Game) {
		mu.Lock()
		result[key] = games
		mu.Unlock()
	}

	var g errgroup.Group
	for _, platform := range s.platforms {
		g.Go(func() error {
			store(platform, s.platformGames(ctx, platform))
			return nil
		})
	}
	g.Go(func() error {
		store(game.BoardGames, s.boardGames(ctx))
		return nil
	})
	_ = g.Wait()

	return result
}

// Platform returns one bucket, or false for an unknown key.
func (s *Service) Platform(ctx context.Context, platform string) ([]game.Game, bool) {
	if platform == game.BoardGames {
		return s.boardGames(ctx), true
	}
	if _, ok := s.inventory[platform]; !ok {
		return nil, false
	}
	return s.platformGames(ctx, platform), true
}

// Search runs a free-text catalog search. Unlike the catalog, search
// failures are returned to the caller.
func (s *Service) Search(ctx context.Context, query, platform string) ([]game.Game, error) {
	games, err := s.games.Search(ctx, query, platform)
	if err != nil {
		s.logger.Error("search failed", "query", query, "platform", platform, "error", err)
		return nil, err
	}
	if games == nil {
		games = []game.Game{}
	}
	return games, nil
}

func (s *Service) platformGames(ctx context.Context, platform string) []game.Game {
	games, err := s.games.FetchByIDs(ctx, platform, s.inventory[platform])
	if err != nil {
		metrics.Fallbacks.WithLabelValues("igdb").Inc()
		s.logger.Warn("platform fetch failed, serving empty list", "platform", platform, "error", err)
		return []game.Game{}
	}
	if games == nil {
		return []game.Game{}
	}
	return games
}

func (s *Service) boardGames(ctx context.Context) []game.Game {
	games := s.boards.FetchBoardGames(ctx)
	if games == nil {
		return []game.Game{}
	}
	return games
}
