package catalog

import "github.com/ryanm101/gameroom/internal/game"

// VideoPlatforms lists the video-game buckets in display order.
var VideoPlatforms = []string{game.PS5, game.Xbox, game.Switch}

// DefaultInventory is the lounge's curated catalog ids per console.
var DefaultInventory = map[string][]int{
	game.PS5: {
		11198, 119171, 119277, 1905, 256092, 138669, 214397,
	},
	game.Xbox: {
		1905, 135400, 11198, 125174, 204623, 1942, 3225, 125165, 308034,
		256092, 1879, 111469, 120, 194682, 120619, 214397, 325608, 125624,
	},
	game.Switch: {
		7346, 18229, 76073, 116530, 26758, 146493,
	},
}
