package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries the request fields of every action; each handler reads the
// ones it needs.
type Payload struct {
	GameID string `json:"game_id,omitempty"`

	Board  *entity.Board `json:"board,omitempty"`
	Player entity.Cell   `json:"player,omitempty"`
	Level  *int          `json:"level,omitempty"`

	Size     int         `json:"size,omitempty"`
	Mode     entity.Mode `json:"mode,omitempty"`
	AIPlayer entity.Cell `json:"ai_player,omitempty"`
	AILevel  *int        `json:"ai_level,omitempty"`

	Row *int `json:"row,omitempty"`
	Col *int `json:"col,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.Game `json:"game,omitempty"`
	Move  *entity.Move `json:"move,omitempty"`
	Score string       `json:"score,omitempty"`
	Error string       `json:"error,omitempty"`
}
