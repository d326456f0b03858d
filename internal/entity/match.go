package entity

import "time"

const (
	ModeHumanVsHuman = "human_vs_human"
	ModeHumanVsAI    = "human_vs_ai"
	ModeAIVsHuman    = "ai_vs_human"
	ModeAIVsAI       = "ai_vs_ai"

	EasyDifficulty   = "easy"
	MediumDifficulty = "medium"
	HardDifficulty   = "hard"
)

// Match is a live game as kept by the match store.
type Match struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Difficulty string    `json:"difficulty"`
	State      GameState `json:"state"`
	Players    []*Player `json:"players,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (that *Match) IsFinished() bool {
	return that.State.IsFinished()
}

// PlayerByMark returns the seat holding mark, or nil.
func (that *Match) PlayerByMark(mark Mark) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}
	return nil
}
