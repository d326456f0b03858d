package entity

const (
	KindHuman = "human"
	KindBot   = "bot"
)

// Player describes who holds a mark in a match.
type Player struct {
	Mark       Mark   `json:"mark"`
	Kind       string `json:"kind"`
	Difficulty string `json:"difficulty,omitempty"`
}

func (that *Player) IsBot() bool {
	return that.Kind == KindBot
}
