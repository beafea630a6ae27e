package game

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/dareloop/dareloop/internal/models"
)

// Admin runs a privileged command against the session. The caller has already
// checked the shared secret. The returned string is the acknowledgment for
// the issuing connection.
func (s *Session) Admin(command string, args []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch command {
	case "reset":
		s.resetLocked()
		return "session reset", nil

	case "kick":
		if len(args) < 1 {
			return "", fmt.Errorf("kick requires a player id")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid player id %q", args[0])
		}
		_, p := s.findLocked(id)
		if p == nil {
			return "", ErrUnknownPlayer
		}
		name := p.Name
		s.fireEventToPlayer(id, Event{Type: EventKicked})
		// Kick resets the pointer to 0 instead of clamping like natural
		// eviction does. Kept as-is; see DESIGN.md.
		s.removeLocked(id, true)
		s.systemMessage(name + " was kicked from the game")
		s.broadcastState()
		s.persist()
		return "kicked " + name, nil

	case "addPoints":
		if len(args) < 2 {
			return "", fmt.Errorf("addPoints requires a player id and an amount")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid player id %q", args[0])
		}
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("invalid point amount %q", args[1])
		}
		_, p := s.findLocked(id)
		if p == nil {
			return "", ErrUnknownPlayer
		}
		p.Score += amount
		s.broadcastState()
		s.persist()
		return fmt.Sprintf("%s now has %d point(s)", p.Name, p.Score), nil

	default:
		return "", fmt.Errorf("unknown command %q", command)
	}
}

// resetLocked discards the entire session and starts a fresh one. Every
// session token is revoked; connected clients have to join again.
// Assumes lock is held.
func (s *Session) resetLocked() {
	log.Info("resetting session")
	for _, p := range s.players {
		s.registry.Revoke(p.ID)
	}
	s.players = s.players[:0]
	s.playerTasks = make(map[uuid.UUID][]models.Task)
	s.playerBonuses = make(map[uuid.UUID]*models.BonusState)
	s.currentPlayerIndex = 0
	s.skipNextTurn = false
	s.playerToSkip = uuid.Nil
	s.activeWebcam = uuid.Nil
	s.pendingSwap = uuid.Nil
	s.gameStartTime = time.Now()

	s.fireEvent(Event{Type: EventReset})
	s.broadcastState()
	s.persist()
}
