package game

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// sweepInterval is how often the presence monitor runs.
	sweepInterval = 60 * time.Second
	// staleAfter is how long a player may sit disconnected before eviction.
	staleAfter = 30 * time.Second
)

// RunPresence periodically evicts stale players and retires sessions older
// than the configured reset timeout. Runs until ctx is cancelled.
func (s *Session) RunPresence(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(time.Now())
		}
	}
}

// Sweep performs one presence pass: players with no live connection whose
// lastSeen is older than the staleness threshold are evicted, the turn
// pointer is re-clamped, and the result persisted. It also applies the
// session auto-reset when the game has outlived its configured lifetime.
func (s *Session) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.players) == 0 {
		// Nothing to evict and nothing to retire. An empty session doesn't
		// age; Join restarts the lifetime clock with the first seat.
		s.gameStartTime = now
		return
	}
	if s.resetTimeout > 0 && now.Sub(s.gameStartTime) >= s.resetTimeout {
		log.Infof("session exceeded %s lifetime, auto-resetting", s.resetTimeout)
		s.resetLocked()
		return
	}

	evicted := 0
	for i := 0; i < len(s.players); {
		p := s.players[i]
		if !p.Connected && now.Sub(p.LastSeen) >= staleAfter {
			log.Infof("evicting stale player %s (%q), last seen %s ago", p.ID, p.Name, now.Sub(p.LastSeen).Round(time.Second))
			name := p.Name
			s.fireEvent(Event{Type: EventPlayerLeft, Player: &EventPlayer{ID: p.ID, Name: name}})
			s.systemMessage(name + " left the game")
			s.removeLocked(p.ID, false)
			evicted++
			continue // slice shifted, same index again
		}
		i++
	}

	if evicted > 0 {
		s.clampTurnPointer()
		s.broadcastState()
		s.persist()
	}
}
