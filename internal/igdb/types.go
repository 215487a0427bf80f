package igdb

// RawGame is one game object as returned by the catalog API with the
// expanded fields selected in gameFields. Every field may be absent.
type RawGame struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	Summary          string      `json:"summary"`
	Cover            *RawCover   `json:"cover"`
	Genres           []RawNamed  `json:"genres"`
	Platforms        []RawNamed  `json:"platforms"`
	Rating           *float64    `json:"rating"`
	FirstReleaseDate *int64      `json:"first_release_date"`
	AgeRatings       []RawRating `json:"age_ratings"`
}

// RawCover is the expanded cover reference.
type RawCover struct {
	ID      int64  `json:"id"`
	ImageID string `json:"image_id"`
}

// RawNamed is an expanded reference carrying only a name (genres, platforms).
type RawNamed struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RawRating is an expanded age rating entry; Rating is the rating-system code.
type RawRating struct {
	ID     int64 `json:"id"`
	Rating int   `json:"rating"`
}
