package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/ohhell-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is the request/response body of every action. Responses carry the
// game as a per-player view, never the raw state: a client only ever sees
// its own hand.
type Payload struct {
	Player   *entity.Player   `json:"player,omitempty"`
	Game     *entity.GameView `json:"game,omitempty"`
	GameID   string           `json:"game_id,omitempty"`
	GameType string           `json:"game_type,omitempty"`
	Bid      *int             `json:"bid,omitempty"`
	Card     *entity.Card     `json:"card,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool
	opCode  byte
	length  uint64
	payload []byte
}
