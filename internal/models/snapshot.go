package models

import "time"

// PlayerSnapshot is the persisted form of a roster entry. Connection state is
// deliberately absent; a restarted process has no live sockets.
type PlayerSnapshot struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Score    int       `json:"score"`
	JoinedAt time.Time `json:"joinedAt"`
	LastSeen time.Time `json:"lastSeen"`
}

// SessionSnapshot is the single flat document written to the store after
// every mutation. It is overwritten wholesale, never diffed.
type SessionSnapshot struct {
	Players            []PlayerSnapshot      `json:"players"`
	PlayerTasks        map[string][]Task     `json:"playerTasks"`
	PlayerBonuses      map[string]BonusState `json:"playerBonuses"`
	CurrentPlayerIndex int                   `json:"currentPlayerIndex"`
	SkipNextTurn       bool                  `json:"skipNextTurn"`
	PlayerToSkip       string                `json:"playerToSkip,omitempty"`
	GameStartTime      time.Time             `json:"gameStartTime"`
	ActiveWebcam       string                `json:"activeWebcam,omitempty"`
}
