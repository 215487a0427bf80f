package bgg

import (
	"strings"

	"github.com/ryanm101/gameroom/internal/game"
)

const (
	defaultMinPlayers  = "2"
	defaultMaxPlayers  = "4"
	defaultPlayingTime = "60"
	defaultMinAge      = "8"
	defaultGenre       = "Strategy"
	defaultDescription = "A classic board game for friends and family."

	placeholderImage = "https://via.placeholder.com/300x400/667eea/ffffff?text="
	rulesURLPrefix   = "https://boardgamegeek.com/boardgame/"

	descriptionLimit = 200
	ellipsis         = "..."
)

// genreRules are checked in order; the first category containing Match wins.
var genreRules = []struct {
	Match string
	Genre string
}{
	{"Party", "Party"},
	{"Word", "Word Game"},
	{"Deduction", "Deduction"},
	{"Economic", "Economic"},
	{"Cooperative", "Cooperative"},
	{"Dexterity", "Dexterity"},
}

var entityReplacer = strings.NewReplacer(
	"&#10;", " ",
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// Normalize maps one item into a display-ready board game.
func Normalize(item Item) game.Game {
	title := PrimaryName(item.Names)

	return game.Game{
		ID:          "board-" + item.ID,
		Title:       title,
		Genre:       ClassifyGenre(item.CategoryNames()),
		Players:     valueOr(item.MinPlayers, defaultMinPlayers) + "-" + valueOr(item.MaxPlayers, defaultMaxPlayers) + " Players",
		Rating:      valueOr(item.MinAge, defaultMinAge) + "+",
		Playtime:    valueOr(item.PlayingTime, defaultPlayingTime) + " minutes",
		Description: CleanDescription(item.Description),
		Image:       imageFor(item, title),
		Rules:       rulesURLPrefix + item.ID,
	}
}

// NormalizeAll maps items in document order.
func NormalizeAll(items []Item) []game.Game {
	games := make([]game.Game, 0, len(items))
	for _, item := range items {
		games = append(games, Normalize(item))
	}
	return games
}

// PrimaryName returns the primary name, else the first name, else "Unknown Game".
func PrimaryName(names []Name) string {
	for _, n := range names {
		if n.Type == "primary" && n.Value != "" {
			return n.Value
		}
	}
	if len(names) > 0 && names[0].Value != "" {
		return names[0].Value
	}
	return game.UnknownTitle
}

// CategoryNames collects category labels from both link and legacy elements.
func (item Item) CategoryNames() []string {
	var names []string
	for _, l := range item.Links {
		if l.Type == "boardgamecategory" && l.Value != "" {
			names = append(names, l.Value)
		}
	}
	for _, c := range item.Categories {
		if s := strings.TrimSpace(c.String()); s != "" {
			names = append(names, s)
		}
	}
	return names
}

// ClassifyGenre picks the first matching genre rule across all categories.
func ClassifyGenre(categories []string) string {
	for _, rule := range genreRules {
		for _, c := range categories {
			if strings.Contains(c, rule.Match) {
				return rule.Genre
			}
		}
	}
	return defaultGenre
}

// CleanDescription resolves the escaped entities left in item descriptions,
// cuts the text to 200 characters and always appends an ellipsis. The cut is
// not word aware.
func CleanDescription(raw string) string {
	if raw == "" {
		raw = defaultDescription
	}
	clean := entityReplacer.Replace(raw)
	if runes := []rune(clean); len(runes) > descriptionLimit {
		clean = string(runes[:descriptionLimit])
	}
	return clean + ellipsis
}

func imageFor(item Item, title string) string {
	if img := strings.TrimSpace(item.Image); img != "" {
		return img
	}
	if thumb := strings.TrimSpace(item.Thumbnail); thumb != "" {
		return thumb
	}
	return game.PlaceholderImage(placeholderImage, title)
}

func valueOr(v Value, def string) string {
	if s := strings.TrimSpace(v.String()); s != "" {
		return s
	}
	return def
}
