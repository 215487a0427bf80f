// Package game holds the unified game record served by the catalog.
package game

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Platform bucket keys of the aggregated catalog.
const (
	PS5        = "ps5"
	Xbox       = "xbox"
	Switch     = "switch"
	BoardGames = "boardgames"
)

// UnknownTitle is used when an upstream record carries no usable name.
const UnknownTitle = "Unknown Game"

// Game is the display-ready record shared by video and board games.
type Game struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Genre       string       `json:"genre"`
	Platforms   string       `json:"platforms,omitempty"`
	Players     string       `json:"players,omitempty"`
	Rating      string       `json:"rating"`
	Playtime    string       `json:"playtime,omitempty"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Score       *int         `json:"score"`
	ReleaseDate *ReleaseYear `json:"releaseDate,omitempty"`
	Rules       string       `json:"rules,omitempty"`
}

// Catalog maps a platform key to its games in upstream response order.
type Catalog map[string][]Game

// ReleaseYear is a release year that encodes as "Unknown" when zero.
type ReleaseYear int

// MarshalJSON encodes the year as a number, or "Unknown" when not set.
func (y ReleaseYear) MarshalJSON() ([]byte, error) {
	if y == 0 {
		return []byte(`"Unknown"`), nil
	}
	return []byte(strconv.Itoa(int(y))), nil
}

// UnmarshalJSON accepts either a number or a string; strings decode to zero.
func (y *ReleaseYear) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		*y = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = ReleaseYear(n)
	return nil
}

// Year returns a pointer suitable for Game.ReleaseDate.
func Year(y int) *ReleaseYear {
	ry := ReleaseYear(y)
	return &ry
}

// PlaceholderImage appends title to prefix as an escaped query value.
func PlaceholderImage(prefix, title string) string {
	return prefix + strings.ReplaceAll(url.QueryEscape(title), "+", "%20")
}
