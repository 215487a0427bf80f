package bgg

import "github.com/ryanm101/gameroom/internal/game"

var fallbackGames = []game.Game{
	{
		ID:          "board-1",
		Title:       "Settlers of Catan",
		Genre:       "Strategy",
		Players:     "3-4 Players",
		Rating:      "10+",
		Playtime:    "60-90 minutes",
		Description: "Build settlements, cities, and roads on the island of Catan as you trade resources and compete for victory.",
		Image:       "https://m.media-amazon.com/images/I/81+okm4IpfL._AC_SL1500_.jpg",
		Rules:       "https://boardgamegeek.com/boardgame/13/catan",
	},
	{
		ID:          "board-2",
		Title:       "Ticket to Ride",
		Genre:       "Strategy",
		Players:     "2-5 Players",
		Rating:      "8+",
		Playtime:    "30-60 minutes",
		Description: "Collect cards of various types of train cars and claim railway routes connecting cities throughout North America.",
		Image:       "https://m.media-amazon.com/images/I/91YNJM4oyhL._AC_SL1500_.jpg",
		Rules:       "https://boardgamegeek.com/boardgame/9209/ticket-ride",
	},
	{
		ID:          "board-3",
		Title:       "Pandemic",
		Genre:       "Cooperative",
		Players:     "2-4 Players",
		Rating:      "8+",
		Playtime:    "45 minutes",
		Description: "Work together as a team to treat infections around the world while gathering resources for cures.",
		Image:       "https://m.media-amazon.com/images/I/71CVlZKm9BL._AC_SL1024_.jpg",
		Rules:       "https://boardgamegeek.com/boardgame/161936/pandemic",
	},
}

// Fallback returns the static list served when the board-game API is unavailable.
// The slice is a fresh copy.
func Fallback() []game.Game {
	return append([]game.Game(nil), fallbackGames...)
}
