package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ryanm101/gameroom/internal/bgg"
	"github.com/ryanm101/gameroom/internal/game"
	"github.com/ryanm101/gameroom/internal/upstream"
)

type MockGames struct {
	mock.Mock
}

func (m *MockGames) FetchByIDs(ctx context.Context, platform string, ids []int) ([]game.Game, error) {
	args := m.Called(platform, ids)
	games, _ := args.Get(0).([]game.Game)
	return games, args.Error(1)
}

func (m *MockGames) Search(ctx context.Context, query, platform string) ([]game.Game, error) {
	args := m.Called(query, platform)
	games, _ := args.Get(0).([]game.Game)
	return games, args.Error(1)
}

type MockBoards struct {
	mock.Mock
}

func (m *MockBoards) FetchBoardGames(ctx context.Context) []game.Game {
	args := m.Called()
	games, _ := args.Get(0).([]game.Game)
	return games
}

var errDown = upstream.StatusError("igdb", "fetch games", "503 Service Unavailable")

func TestCatalog_OnePlatformFailing(t *testing.T) {
	games := new(MockGames)
	games.On("FetchByIDs", game.PS5, DefaultInventory[game.PS5]).Return([]game.Game{{ID: "1", Title: "Astro Bot"}}, nil)
	games.On("FetchByIDs", game.Xbox, DefaultInventory[game.Xbox]).Return(nil, errDown)
	games.On("FetchByIDs", game.Switch, DefaultInventory[game.Switch]).Return([]game.Game{{ID: "2", Title: "Mario Kart"}}, nil)

	boards := new(MockBoards)
	boards.On("FetchBoardGames").Return([]game.Game{{ID: "board-13", Title: "CATAN"}})

	svc := NewService(games, boards)
	result := svc.Catalog(context.Background())

	require.Len(t, result, 4)
	assert.Equal(t, "Astro Bot", result[game.PS5][0].Title)
	assert.NotNil(t, result[game.Xbox])
	assert.Empty(t, result[game.Xbox])
	assert.Equal(t, "Mario Kart", result[game.Switch][0].Title)
	assert.Equal(t, "CATAN", result[game.BoardGames][0].Title)

	games.AssertExpectations(t)
	boards.AssertExpectations(t)
	games.AssertNumberOfCalls(t, "FetchByIDs", 3)
}

func TestCatalog_EverythingDown(t *testing.T) {
	games := new(MockGames)
	games.On("FetchByIDs", mock.Anything, mock.Anything).Return(nil, errDown)

	boards := new(MockBoards)
	boards.On("FetchBoardGames").Return(bgg.Fallback())

	result := NewService(games, boards).Catalog(context.Background())

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 4)
	for _, p := range VideoPlatforms {
		require.Contains(t, decoded, p)
		assert.Empty(t, decoded[p])
	}
	assert.Equal(t, "Settlers of Catan", decoded[game.BoardGames][0]["title"])
	assert.Contains(t, string(data), `"ps5":[]`)
}

func TestCatalog_NilResultsBecomeEmptyLists(t *testing.T) {
	games := new(MockGames)
	games.On("FetchByIDs", mock.Anything, mock.Anything).Return(nil, nil)
	boards := new(MockBoards)
	boards.On("FetchBoardGames").Return(nil)

	result := NewService(games, boards).Catalog(context.Background())
	for _, key := range []string{game.PS5, game.Xbox, game.Switch, game.BoardGames} {
		assert.NotNil(t, result[key], key)
	}
}

func TestCatalog_CustomInventory(t *testing.T) {
	games := new(MockGames)
	games.On("FetchByIDs", "pc", []int{1, 2}).Return([]game.Game{{ID: "1"}, {ID: "2"}}, nil)
	boards := new(MockBoards)
	boards.On("FetchBoardGames").Return([]game.Game{})

	svc := NewService(games, boards, WithInventory([]string{"pc"}, map[string][]int{"pc": {1, 2}}))
	assert.Equal(t, []string{"pc", game.BoardGames}, svc.Platforms())

	result := svc.Catalog(context.Background())
	assert.Len(t, result, 2)
	assert.Len(t, result["pc"], 2)
}

func TestPlatform(t *testing.T) {
	games := new(MockGames)
	games.On("FetchByIDs", game.Switch, DefaultInventory[game.Switch]).Return([]game.Game{{ID: "7346"}}, nil)
	games.On("FetchByIDs", game.PS5, DefaultInventory[game.PS5]).Return(nil, errDown)
	boards := new(MockBoards)
	boards.On("FetchBoardGames").Return(bgg.Fallback())

	svc := NewService(games, boards)

	list, ok := svc.Platform(context.Background(), game.Switch)
	require.True(t, ok)
	assert.Len(t, list, 1)

	list, ok = svc.Platform(context.Background(), game.PS5)
	require.True(t, ok)
	assert.Empty(t, list)

	list, ok = svc.Platform(context.Background(), game.BoardGames)
	require.True(t, ok)
	assert.Len(t, list, 3)

	_, ok = svc.Platform(context.Background(), "dreamcast")
	assert.False(t, ok)
	games.AssertNotCalled(t, "FetchByIDs", "dreamcast", mock.Anything)
}

func TestSearch(t *testing.T) {
	games := new(MockGames)
	games.On("Search", "halo", game.Xbox).Return([]game.Game{{ID: "1", Title: "Halo"}}, nil)
	games.On("Search", "zelda", "").Return(nil, nil)
	games.On("Search", "doom", "").Return(nil, errors.New("boom"))

	svc := NewService(games, new(MockBoards))

	list, err := svc.Search(context.Background(), "halo", game.Xbox)
	require.NoError(t, err)
	assert.Equal(t, "Halo", list[0].Title)

	list, err = svc.Search(context.Background(), "zelda", "")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = svc.Search(context.Background(), "doom", "")
	assert.Error(t, err)
}
