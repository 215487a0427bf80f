package igdb

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ryanm101/gameroom/internal/game"
)

const (
	coverURLFormat   = "https://images.igdb.com/igdb/image/upload/t_cover_big/"
	placeholderImage = "https://via.placeholder.com/300x400?text="
	noDescription    = "No description available"
	unknownField     = "Unknown"
	notRated         = "Not Rated"
)

// ESRB codes occupy 6..12 in the catalog's age rating enumeration.
const (
	esrbMin = 6
	esrbMax = 12
)

var esrbLabels = map[int]string{
	6:  "RP",
	7:  "EC",
	8:  "E",
	9:  "E10+",
	10: "T",
	11: "M",
	12: "AO",
}

// Normalize maps a raw catalog record into a display-ready game.
func Normalize(raw RawGame) game.Game {
	title := strings.TrimSpace(raw.Name)
	if title == "" {
		title = game.UnknownTitle
	}

	g := game.Game{
		ID:          strconv.FormatInt(raw.ID, 10),
		Title:       title,
		Genre:       joinNames(raw.Genres),
		Platforms:   joinNames(raw.Platforms),
		Rating:      AgeRatingLabel(raw.AgeRatings),
		Description: raw.Summary,
		Image:       coverImage(raw.Cover, title),
		ReleaseDate: game.Year(releaseYear(raw.FirstReleaseDate)),
	}
	if g.Description == "" {
		g.Description = noDescription
	}
	if raw.Rating != nil {
		score := int(math.Round(*raw.Rating))
		g.Score = &score
	}
	return g
}

// NormalizeAll maps records in order.
func NormalizeAll(raws []RawGame) []game.Game {
	games := make([]game.Game, 0, len(raws))
	for _, raw := range raws {
		games = append(games, Normalize(raw))
	}
	return games
}

// AgeRatingLabel returns the label of the first ESRB entry, or "Not Rated".
func AgeRatingLabel(ratings []RawRating) string {
	for _, r := range ratings {
		if r.Rating >= esrbMin && r.Rating <= esrbMax {
			return RatingLabel(r.Rating)
		}
	}
	return notRated
}

// RatingLabel maps a single rating-system code to its short label.
func RatingLabel(code int) string {
	if label, ok := esrbLabels[code]; ok {
		return label
	}
	return notRated
}

func coverImage(cover *RawCover, title string) string {
	if cover != nil && cover.ImageID != "" {
		return coverURLFormat + cover.ImageID + ".jpg"
	}
	return game.PlaceholderImage(placeholderImage, title)
}

func joinNames(named []RawNamed) string {
	names := make([]string, 0, len(named))
	for _, n := range named {
		if n.Name != "" {
			names = append(names, n.Name)
		}
	}
	if len(names) == 0 {
		return unknownField
	}
	return strings.Join(names, ", ")
}

func releaseYear(ts *int64) int {
	if ts == nil || *ts == 0 {
		return 0
	}
	return time.Unix(*ts, 0).UTC().Year()
}
