package game

import "github.com/google/uuid"

// advanceTurn moves the pointer to the next player. If a miss-a-turn penalty
// is pending and the pointer lands on the flagged player, it moves one more
// position and the flag clears, so the penalty skips exactly one turn once.
// Assumes lock is held.
func (s *Session) advanceTurn() {
	if len(s.players) == 0 {
		return
	}
	s.currentPlayerIndex = (s.currentPlayerIndex + 1) % len(s.players)

	if s.skipNextTurn && s.players[s.currentPlayerIndex].ID == s.playerToSkip {
		skipped := s.players[s.currentPlayerIndex]
		s.currentPlayerIndex = (s.currentPlayerIndex + 1) % len(s.players)
		s.skipNextTurn = false
		s.playerToSkip = uuid.Nil
		s.fireEvent(Event{
			Type:   EventSkipTurn,
			Player: &EventPlayer{ID: skipped.ID, Name: skipped.Name},
		})
		s.systemMessage(skipped.Name + " misses this turn")
	}
}

// clampTurnPointer repairs the pointer after the roster shrank. Not an error
// path: an out-of-range pointer is expected after removals and is self-healed
// here.
// Assumes lock is held.
func (s *Session) clampTurnPointer() {
	if len(s.players) == 0 {
		s.currentPlayerIndex = 0
		return
	}
	if s.currentPlayerIndex >= len(s.players) {
		s.currentPlayerIndex = len(s.players) - 1
	}
	if s.currentPlayerIndex < 0 {
		s.currentPlayerIndex = 0
	}
}

// CurrentPlayerID returns the identity holding the turn, or uuid.Nil when the
// roster is empty.
func (s *Session) CurrentPlayerID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.players) == 0 {
		return uuid.Nil
	}
	return s.players[s.currentPlayerIndex].ID
}
