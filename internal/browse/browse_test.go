package browse

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanm101/gameroom/internal/game"
)

var testCatalog = game.Catalog{
	game.PS5: {
		{ID: "1", Title: "Astro Bot", Genre: "Platform", Rating: "E"},
		{ID: "2", Title: "Fortnite", Genre: "Shooter", Rating: "T"},
	},
	game.Switch: {
		{ID: "3", Title: "Mario Kart 8", Genre: "Racing", Rating: "E"},
	},
	game.BoardGames: {
		{ID: "board-13", Title: "CATAN", Genre: "Economic", Rating: "10+", Players: "3-4 Players"},
	},
}

func loaded() Model {
	m := New([]string{game.PS5, game.Switch, game.BoardGames}, func(context.Context) game.Catalog {
		return testCatalog
	})
	next, _ := m.Update(catalogMsg{catalog: testCatalog})
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		m = next.(Model)
	}
	return m
}

func TestNew(t *testing.T) {
	m := New([]string{game.PS5}, nil)
	assert.True(t, m.loading)
	assert.Equal(t, panelPlatforms, m.panel)
	assert.Equal(t, "Loading...", m.View())
}

func TestFetchUsesLoader(t *testing.T) {
	calls := 0
	m := New([]string{game.PS5}, func(context.Context) game.Catalog {
		calls++
		return testCatalog
	})

	msg := m.fetch()
	require.IsType(t, catalogMsg{}, msg)
	assert.Equal(t, 1, calls)

	next, _ := m.Update(msg)
	assert.False(t, next.(Model).loading)
}

func TestPlatformNavigation(t *testing.T) {
	m := loaded()
	assert.Equal(t, game.PS5, m.SelectedPlatform())

	m = press(t, m, "j")
	assert.Equal(t, game.Switch, m.SelectedPlatform())

	m = press(t, m, "j", "j")
	assert.Equal(t, game.BoardGames, m.SelectedPlatform(), "cursor should stop at end")

	m = press(t, m, "k")
	assert.Equal(t, game.Switch, m.SelectedPlatform())
}

func TestGameNavigation(t *testing.T) {
	m := press(t, loaded(), "tab")
	assert.Equal(t, panelGames, m.panel)

	g, ok := m.SelectedGame()
	require.True(t, ok)
	assert.Equal(t, "Astro Bot", g.Title)

	m = press(t, m, "j")
	g, _ = m.SelectedGame()
	assert.Equal(t, "Fortnite", g.Title)

	m = press(t, m, "j")
	g, _ = m.SelectedGame()
	assert.Equal(t, "Fortnite", g.Title, "cursor should stop at end")
}

func TestFilter(t *testing.T) {
	m := press(t, loaded(), "/", "f", "o", "r", "t")
	assert.True(t, m.filtering)
	assert.Equal(t, "fort", m.filter)
	require.Len(t, m.visibleGames(), 1)
	assert.Equal(t, "Fortnite", m.visibleGames()[0].Title)

	// Genre matches too.
	m.filter = "plat"
	assert.Len(t, m.visibleGames(), 1)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.False(t, m.filtering)
	assert.Equal(t, "plat", m.filter)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Empty(t, m.filter)
	assert.Len(t, m.visibleGames(), 2)
}

func TestHelpToggle(t *testing.T) {
	m := press(t, loaded(), "?")
	assert.True(t, m.showHelp)

	m = press(t, m, "x")
	assert.False(t, m.showHelp, "any key closes help")
}

func TestQuit(t *testing.T) {
	_, cmd := loaded().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRefresh(t *testing.T) {
	m := loaded()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.True(t, next.(Model).loading)
	assert.NotNil(t, cmd)
}

func TestView(t *testing.T) {
	m := loaded()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Gameroom Catalog")
	assert.Contains(t, view, "Astro Bot")
	assert.Contains(t, view, "boardgames")

	m = press(t, m, "j", "j")
	assert.Contains(t, m.View(), "3-4 Players")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abc…", truncate("abcdef", 4))
}
