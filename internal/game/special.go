package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timerDuration is the fixed length of the party timer. Once scheduled the
// alarm cannot be aborted.
const timerDuration = 60 * time.Second

// CompleteSwap finishes a pending score-swap special task. Only the player
// who drew it may answer, and the choice ends their turn.
func (s *Session) CompleteSwap(id, target uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingSwap == uuid.Nil || s.pendingSwap != id {
		return ErrNoPendingChoice
	}
	_, chooser := s.findLocked(id)
	_, other := s.findLocked(target)
	if chooser == nil || other == nil {
		return ErrUnknownPlayer
	}

	chooser.Score, other.Score = other.Score, chooser.Score
	s.pendingSwap = uuid.Nil

	s.systemMessage(fmt.Sprintf("%s swapped scores with %s", chooser.Name, other.Name))
	s.advanceTurn()
	s.broadcastState()
	s.persist()
	return nil
}

// StartTimer broadcasts the timer start and schedules the alarm cue.
func (s *Session) StartTimer(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, p := s.findLocked(id)
	if p == nil {
		return ErrUnknownPlayer
	}

	s.fireEvent(Event{
		Type:   EventTimerStarted,
		Player: &EventPlayer{ID: p.ID, Name: p.Name},
		Payload: map[string]interface{}{
			"seconds": int(timerDuration.Seconds()),
		},
	})

	time.AfterFunc(timerDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.fireEvent(Event{Type: EventAlarm})
	})
	return nil
}
