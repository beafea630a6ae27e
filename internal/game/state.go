package game

import (
	"time"

	"github.com/google/uuid"
)

// PublicPlayer is the externally visible slice of a roster entry.
type PublicPlayer struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Score             int       `json:"score"`
	Connected         bool      `json:"connected"`
	BroadcastingVideo bool      `json:"broadcastingVideo"`
	IsCurrentTurn     bool      `json:"isCurrentTurn"`
}

// PublicState is the roster-plus-turn snapshot broadcast after every
// roster or turn mutation.
type PublicState struct {
	Players         []PublicPlayer `json:"players"`
	CurrentPlayerID uuid.UUID      `json:"currentPlayerId,omitempty"`
	ActiveWebcam    uuid.UUID      `json:"activeWebcam,omitempty"`
	SkipPending     bool           `json:"skipPending"`
	GameStartTime   time.Time      `json:"gameStartTime"`
}

// publicState builds the shared view of the session.
// Assumes lock is held.
func (s *Session) publicState() *PublicState {
	st := &PublicState{
		Players:       make([]PublicPlayer, 0, len(s.players)),
		SkipPending:   s.skipNextTurn,
		ActiveWebcam:  s.activeWebcam,
		GameStartTime: s.gameStartTime,
	}
	for i, p := range s.players {
		st.Players = append(st.Players, PublicPlayer{
			ID:                p.ID,
			Name:              p.Name,
			Score:             p.Score,
			Connected:         p.Connected,
			BroadcastingVideo: p.BroadcastingVideo,
			IsCurrentTurn:     i == s.currentPlayerIndex,
		})
	}
	if len(s.players) > 0 {
		st.CurrentPlayerID = s.players[s.currentPlayerIndex].ID
	}
	return st
}

// broadcastState pushes the current public state to everyone.
// Assumes lock is held.
func (s *Session) broadcastState() {
	s.fireEvent(Event{Type: EventPlayers, State: s.publicState()})
}
