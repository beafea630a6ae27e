package game

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/dareloop/dareloop/internal/catalog"
	"github.com/dareloop/dareloop/internal/models"
)

const (
	// rareBonusChance is the probability of the rare bonus task.
	rareBonusChance = 0.03
	// baseBonusChance is the cumulative probability of any bonus-pool task.
	baseBonusChance = 0.10
	// ultimateThreshold is the rare-draw count that forces the ultimate task.
	ultimateThreshold = 3
)

// DrawTask runs the tiered draw for the player holding the turn and applies
// the task's side effects. The random roll is the only non-deterministic
// input; with a fixed source the outcome is fully reproducible.
func (s *Session) DrawTask(id uuid.UUID) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, p := s.findLocked(id)
	if p == nil {
		return models.Task{}, ErrUnknownPlayer
	}
	if len(s.players) == 0 || s.players[s.currentPlayerIndex].ID != id {
		return models.Task{}, ErrNotYourTurn
	}
	if s.pendingSwap == id {
		// The turn is parked on the special-task choice; a second draw here
		// would leave the choice dangling and fire later, out of turn.
		return models.Task{}, ErrChoicePending
	}

	bonus := s.playerBonuses[id]
	if bonus == nil {
		bonus = &models.BonusState{}
		s.playerBonuses[id] = bonus
	}

	var task models.Task
	switch {
	case bonus.RareCount >= ultimateThreshold:
		task = catalog.Ultimate()
		bonus.RareCount = 0
		s.fireEvent(Event{Type: EventUltimate, Player: &EventPlayer{ID: p.ID, Name: p.Name}})
		s.broadcastBonusCount(p, 0)
	default:
		r := s.rng.Float64()
		switch {
		case r < rareBonusChance:
			task = catalog.Rare()
			bonus.RareCount++
			s.broadcastBonusCount(p, bonus.RareCount)
		case r < baseBonusChance:
			pool := catalog.BonusRegular()
			task = pool[s.rng.Intn(len(pool))]
		default:
			pool := s.drawPool()
			task = pool[s.rng.Intn(len(pool))]
		}
	}

	log.Debugf("player %s (%q) drew %q [%s, %+d]", p.ID, p.Name, task.Text, task.Category, task.Points)
	s.fireEvent(Event{
		Type:   EventTaskDrawn,
		Player: &EventPlayer{ID: p.ID, Name: p.Name},
		Task:   &task,
	})
	s.recordHistory(p, task)

	s.applyDraw(p, task)
	s.broadcastState()
	s.persist()
	return task, nil
}

// drawPool is the standard-tier pool: the static catalog plus every player's
// custom tasks. Pooling is global; any player's task can land on anyone.
// Assumes lock is held.
func (s *Session) drawPool() []models.Task {
	base := catalog.Base()
	pool := make([]models.Task, 0, len(base))
	pool = append(pool, base...)
	for _, tasks := range s.playerTasks {
		pool = append(pool, tasks...)
	}
	return pool
}

// applyDraw applies a drawn task's side effects: skip flags, webcam feature,
// special dispatch, score and turn advance.
// Assumes lock is held.
func (s *Session) applyDraw(p *models.Player, task models.Task) {
	if task.IsPenalty {
		s.skipNextTurn = true
		s.playerToSkip = p.ID
		s.systemMessage(p.Name + " will miss their next turn")
	}
	if task.IsWebcamTask {
		s.activeWebcam = p.ID
		s.fireEvent(Event{Type: EventWebcamShow, Player: &EventPlayer{ID: p.ID, Name: p.Name}})
	}
	if task.IsSpecial {
		// Deferred completion: the special handler owns the rest of this
		// turn via the player's follow-up choice.
		s.pendingSwap = p.ID
		s.fireEventToPlayer(p.ID, Event{
			Type:    EventSpecialPrompt,
			Message: "Choose a player to swap scores with",
		})
		return
	}

	p.Score += task.Points
	s.advanceTurn()
}

// broadcastBonusCount announces a player's rare-counter value.
// Assumes lock is held.
func (s *Session) broadcastBonusCount(p *models.Player, count int) {
	s.fireEvent(Event{
		Type:   EventBonusCount,
		Player: &EventPlayer{ID: p.ID, Name: p.Name},
		Payload: map[string]interface{}{
			"rareCount": count,
		},
	})
}
