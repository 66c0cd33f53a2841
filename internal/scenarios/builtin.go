package scenarios

import "github.com/vovakirdan/cellmachine/internal/registry"

var builtins = []builtin{
	{
		id:    "push-train",
		title: "Push Train",
		desc:  "Movers shoving a mixed chain across the board",
		rows: []string{
			"....................",
			"....................",
			">#>#................",
			"....................",
			"v...................",
			"#...................",
			"....................",
			"....................",
		},
	},
	{
		id:    "head-on",
		title: "Head On",
		desc:  "Opposing movers contesting the same slots",
		rows: []string{
			"....................",
			"..>..............<..",
			"....................",
			"...>............<...",
			"....................",
			"....>#........#<....",
			"....................",
		},
	},
	{
		id:    "generator-feed",
		title: "Generator Feed",
		desc:  "A column of movers relayed through generators",
		rows: []string{
			"........................",
			">>>>.R..................",
			"........................",
			"...........v............",
			"...........v............",
			"...........D............",
			"........................",
			"........................",
			"........................",
			"........................",
		},
	},
	{
		id:    "blocked-chain",
		title: "Blocked Chain",
		desc:  "Chains stopped by generators and the grid edge",
		rows: []string{
			"..........",
			">##U......",
			"..........",
			".......>##",
			"..........",
			"<.........",
			"..........",
		},
	},
}

func init() {
	registry.Register(EmptyID, func() registry.Scenario { return empty{} })
	for _, b := range builtins {
		registry.Register(b.id, func() registry.Scenario { return b })
	}
}
