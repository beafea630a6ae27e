package models

import (
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Player is one seat in the session roster. The roster owns these; order is
// join order and doubles as turn order.
type Player struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Score    int       `json:"score"`
	JoinedAt time.Time `json:"joinedAt"`
	LastSeen time.Time `json:"lastSeen"`

	Connected bool            `json:"connected"`
	Conn      *websocket.Conn `json:"-"`

	// BroadcastingVideo is true while this player's webcam stream is up.
	BroadcastingVideo bool `json:"broadcastingVideo"`
}

// BonusState tracks one player's progress toward the ultimate task.
type BonusState struct {
	RareCount int `json:"rareCount"`
}
