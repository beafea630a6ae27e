// Package game implements the shared session: the player roster, the turn
// scheduler, the tiered task draw, admin control, and presence cleanup. All
// mutations run under one mutex so every handler is an atomic step against
// the aggregate.
package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/dareloop/dareloop/internal/cache"
	"github.com/dareloop/dareloop/internal/models"
	"github.com/dareloop/dareloop/internal/sanitize"
)

// randSource is the slice of math/rand the draw engine needs. Tests inject a
// deterministic implementation.
type randSource interface {
	Float64() float64
	Intn(n int) int
}

// TokenRegistry issues and checks per-player session tokens.
type TokenRegistry interface {
	Issue(id uuid.UUID) (string, error)
	Verify(id uuid.UUID, token string) bool
	Revoke(id uuid.UUID)
}

// Session is the root aggregate: one global game shared by every connected
// client for the lifetime of the process.
type Session struct {
	mu sync.Mutex

	players       []*models.Player
	playerTasks   map[uuid.UUID][]models.Task
	playerBonuses map[uuid.UUID]*models.BonusState

	currentPlayerIndex int
	skipNextTurn       bool
	playerToSkip       uuid.UUID // uuid.Nil when no skip is pending
	gameStartTime      time.Time
	activeWebcam       uuid.UUID // uuid.Nil when nobody is featured

	// pendingSwap holds the identity whose score-swap choice is outstanding.
	pendingSwap uuid.UUID

	maxPlayers   int
	resetTimeout time.Duration
	historyQueue string

	registry TokenRegistry
	rng      randSource

	// BroadcastFn sends an event to all connected players. If nil, no
	// broadcast is done.
	BroadcastFn func(ev Event)

	// BroadcastToPlayerFn sends an event to a single specific player.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev Event)

	// OnMutate receives a snapshot after every mutating action. It is called
	// with the session lock held and must not block; the store queues the
	// write behind gameplay.
	OnMutate func(snap models.SessionSnapshot)
}

// NewSession builds a fresh session starting now.
func NewSession(maxPlayers int, resetTimeout time.Duration, registry TokenRegistry) *Session {
	return &Session{
		players:       []*models.Player{},
		playerTasks:   make(map[uuid.UUID][]models.Task),
		playerBonuses: make(map[uuid.UUID]*models.BonusState),
		gameStartTime: time.Now(),
		maxPlayers:    maxPlayers,
		resetTimeout:  resetTimeout,
		registry:      registry,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the random source. Intended for tests.
func (s *Session) SetRand(r randSource) {
	s.mu.Lock()
	s.rng = r
	s.mu.Unlock()
}

// SetHistoryQueue sets the Redis list name for task-history records.
func (s *Session) SetHistoryQueue(queue string) {
	s.mu.Lock()
	s.historyQueue = queue
	s.mu.Unlock()
}

// Restore replaces the session contents from a persisted snapshot. Restored
// players start disconnected; they flip back on rejoin.
func (s *Session) Restore(snap *models.SessionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = make([]*models.Player, 0, len(snap.Players))
	s.playerTasks = make(map[uuid.UUID][]models.Task)
	s.playerBonuses = make(map[uuid.UUID]*models.BonusState)

	for _, ps := range snap.Players {
		id, err := uuid.Parse(ps.ID)
		if err != nil {
			log.Warnf("skipping snapshot player with bad id %q: %v", ps.ID, err)
			continue
		}
		s.players = append(s.players, &models.Player{
			ID:       id,
			Name:     ps.Name,
			Score:    ps.Score,
			JoinedAt: ps.JoinedAt,
			LastSeen: ps.LastSeen,
		})
	}
	for idStr, tasks := range snap.PlayerTasks {
		if id, err := uuid.Parse(idStr); err == nil {
			s.playerTasks[id] = tasks
		}
	}
	for idStr, bonus := range snap.PlayerBonuses {
		if id, err := uuid.Parse(idStr); err == nil {
			b := bonus
			s.playerBonuses[id] = &b
		}
	}

	s.currentPlayerIndex = snap.CurrentPlayerIndex
	if s.currentPlayerIndex >= len(s.players) {
		s.currentPlayerIndex = 0
	}
	s.skipNextTurn = snap.SkipNextTurn
	s.playerToSkip = uuid.Nil
	if snap.PlayerToSkip != "" {
		if id, err := uuid.Parse(snap.PlayerToSkip); err == nil {
			s.playerToSkip = id
		}
	}
	s.gameStartTime = snap.GameStartTime
	if s.gameStartTime.IsZero() {
		s.gameStartTime = time.Now()
	}
	// activeWebcam is deliberately not restored: nobody is streaming after
	// a restart.
	s.activeWebcam = uuid.Nil

	log.Infof("restored session with %d player(s)", len(s.players))
}

// Snapshot returns the full persisted form of the session.
func (s *Session) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// snapshotLocked builds the flat snapshot document.
// Assumes lock is held.
func (s *Session) snapshotLocked() models.SessionSnapshot {
	snap := models.SessionSnapshot{
		Players:            make([]models.PlayerSnapshot, 0, len(s.players)),
		PlayerTasks:        make(map[string][]models.Task, len(s.playerTasks)),
		PlayerBonuses:      make(map[string]models.BonusState, len(s.playerBonuses)),
		CurrentPlayerIndex: s.currentPlayerIndex,
		SkipNextTurn:       s.skipNextTurn,
		GameStartTime:      s.gameStartTime,
	}
	for _, p := range s.players {
		snap.Players = append(snap.Players, models.PlayerSnapshot{
			ID:       p.ID.String(),
			Name:     p.Name,
			Score:    p.Score,
			JoinedAt: p.JoinedAt,
			LastSeen: p.LastSeen,
		})
	}
	for id, tasks := range s.playerTasks {
		snap.PlayerTasks[id.String()] = tasks
	}
	for id, b := range s.playerBonuses {
		snap.PlayerBonuses[id.String()] = *b
	}
	if s.playerToSkip != uuid.Nil {
		snap.PlayerToSkip = s.playerToSkip.String()
	}
	if s.activeWebcam != uuid.Nil {
		snap.ActiveWebcam = s.activeWebcam.String()
	}
	return snap
}

// persist hands the current snapshot to the store. Handing it over in-line
// keeps writes in mutation order; the store's writer does the slow part.
// Assumes lock is held.
func (s *Session) persist() {
	if s.OnMutate == nil {
		return
	}
	s.OnMutate(s.snapshotLocked())
}

// findLocked returns the roster index and player for an identity, or (-1, nil).
// Assumes lock is held.
func (s *Session) findLocked(id uuid.UUID) (int, *models.Player) {
	for i, p := range s.players {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

// Find returns the player for an identity, or nil.
func (s *Session) Find(id uuid.UUID) *models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.findLocked(id)
	return p
}

// Join adds a new player or refreshes an existing one (rejoin semantics) and
// issues a fresh session token either way.
func (s *Session) Join(id uuid.UUID, rawName string, conn *websocket.Conn) (*models.Player, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := sanitize.Name(rawName)
	if name == "" {
		return nil, "", ErrInvalidName
	}

	_, existing := s.findLocked(id)
	if existing == nil && len(s.players) >= s.maxPlayers {
		return nil, "", ErrRosterFull
	}

	// Mint before touching the roster so a failed mint leaves no trace.
	token, err := s.registry.Issue(id)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	var player *models.Player
	if existing != nil {
		existing.Name = name
		existing.LastSeen = now
		existing.Connected = true
		existing.Conn = conn
		player = existing
		log.Infof("player %s rejoined as %q", id, name)
	} else {
		if len(s.players) == 0 {
			// The auto-reset clock starts with the first seat taken, not
			// with however long the session sat empty before it.
			s.gameStartTime = now
		}
		player = &models.Player{
			ID:        id,
			Name:      name,
			JoinedAt:  now,
			LastSeen:  now,
			Connected: true,
			Conn:      conn,
		}
		s.players = append(s.players, player)
		s.playerTasks[id] = []models.Task{}
		s.playerBonuses[id] = &models.BonusState{}
		log.Infof("player %s joined as %q (%d/%d seats)", id, name, len(s.players), s.maxPlayers)
	}

	s.systemMessage(name + " joined the game")
	s.broadcastState()
	s.persist()
	return player, token, nil
}

// Touch refreshes a player's liveness timestamp. No-op for unknown identities.
func (s *Session) Touch(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, p := s.findLocked(id); p != nil {
		p.LastSeen = time.Now()
	}
}

// Verify reports whether token currently authorizes identity.
func (s *Session) Verify(id uuid.UUID, token string) bool {
	return s.registry.Verify(id, token)
}

// removeLocked deletes a player and every piece of state keyed by it in one
// atomic step. resetPointer selects the admin-kick quirk (pointer to 0)
// instead of the natural clamp.
// Assumes lock is held.
func (s *Session) removeLocked(id uuid.UUID, resetPointer bool) bool {
	idx, p := s.findLocked(id)
	if p == nil {
		return false
	}
	s.players = append(s.players[:idx], s.players[idx+1:]...)
	delete(s.playerTasks, id)
	delete(s.playerBonuses, id)
	s.registry.Revoke(id)

	if s.activeWebcam == id {
		s.activeWebcam = uuid.Nil
		s.fireEvent(Event{Type: EventWebcamHide})
	}
	if s.playerToSkip == id {
		s.skipNextTurn = false
		s.playerToSkip = uuid.Nil
	}
	if s.pendingSwap == id {
		s.pendingSwap = uuid.Nil
	}

	if resetPointer {
		s.currentPlayerIndex = 0
	} else {
		s.clampTurnPointer()
	}
	return true
}

// Remove evicts a player with natural clamp semantics.
func (s *Session) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.removeLocked(id, false)
	if removed {
		s.broadcastState()
		s.persist()
	}
	return removed
}

// HandleDisconnect marks a player's connection as gone. If it was their turn
// the turn moves on immediately; the presence monitor handles eventual
// eviction.
func (s *Session) HandleDisconnect(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, p := s.findLocked(id)
	if p == nil {
		return
	}
	p.Connected = false
	p.Conn = nil
	if p.BroadcastingVideo {
		p.BroadcastingVideo = false
		if s.activeWebcam == id {
			s.activeWebcam = uuid.Nil
			s.fireEvent(Event{Type: EventWebcamHide})
		}
	}
	log.Infof("player %s (%q) disconnected", id, p.Name)
	s.systemMessage(p.Name + " disconnected")

	if s.pendingSwap == id {
		// Their choice window dies with the connection; the prompt cannot
		// be answered anymore.
		s.pendingSwap = uuid.Nil
	}
	if len(s.players) > 0 && idx == s.currentPlayerIndex {
		s.advanceTurn()
	}
	s.broadcastState()
	s.persist()
}

// Chat broadcasts a sanitized chat line from a player.
func (s *Session) Chat(id uuid.UUID, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, p := s.findLocked(id)
	if p == nil {
		return ErrUnknownPlayer
	}
	text := sanitize.Text(raw)
	if text == "" {
		return nil
	}
	p.LastSeen = time.Now()
	s.fireEvent(Event{
		Type:    EventMessage,
		Player:  &EventPlayer{ID: p.ID, Name: p.Name},
		Message: text,
	})
	return nil
}

// CreateCustomTask validates and appends a player-authored task to that
// player's list. Custom tasks join the global draw pool.
func (s *Session) CreateCustomTask(id uuid.UUID, payload *models.CustomTaskPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, p := s.findLocked(id)
	if p == nil {
		return ErrUnknownPlayer
	}
	if payload == nil {
		return ErrInvalidTask
	}
	text := sanitize.Text(payload.Text)
	if text == "" {
		return ErrInvalidTask
	}

	task := models.Task{
		Text:     text,
		ImageURL: sanitize.Text(payload.ImageURL),
		Category: models.CategoryMild,
		Points:   1,
	}
	switch payload.Category {
	case models.CategoryMild, models.CategoryRisky, models.CategoryIntimate:
		task.Category = payload.Category
	}
	if payload.Points != nil {
		task.Points = *payload.Points
	}

	s.playerTasks[id] = append(s.playerTasks[id], task)
	p.LastSeen = time.Now()
	s.systemMessage(p.Name + " added a new task to the pool")
	s.persist()
	return nil
}

// WebcamStarted marks a player as streaming and features them.
func (s *Session) WebcamStarted(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, p := s.findLocked(id)
	if p == nil {
		return ErrUnknownPlayer
	}
	p.BroadcastingVideo = true
	s.activeWebcam = id
	s.fireEvent(Event{Type: EventWebcamShow, Player: &EventPlayer{ID: p.ID, Name: p.Name}})
	s.fireEvent(Event{Type: EventWebcamStatus, State: s.publicState()})
	s.persist()
	return nil
}

// WebcamStopped clears a player's streaming flag. If they were featured the
// feature slot empties.
func (s *Session) WebcamStopped(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, p := s.findLocked(id)
	if p == nil {
		return ErrUnknownPlayer
	}
	p.BroadcastingVideo = false
	if s.activeWebcam == id {
		s.activeWebcam = uuid.Nil
		s.fireEvent(Event{Type: EventWebcamHide})
	}
	s.fireEvent(Event{Type: EventWebcamStatus, State: s.publicState()})
	s.persist()
	return nil
}

// recordHistory queues a completed draw for the historian and appends it to
// every client's history pane.
// Assumes lock is held.
func (s *Session) recordHistory(p *models.Player, task models.Task) {
	s.fireEvent(Event{
		Type:   EventTaskHistory,
		Player: &EventPlayer{ID: p.ID, Name: p.Name},
		Task:   &task,
	})
	if cache.Rdb == nil || s.historyQueue == "" {
		return
	}
	record := cache.TaskHistoryRecord{
		PlayerID:  p.ID,
		Name:      p.Name,
		TaskText:  task.Text,
		Category:  task.Category,
		Points:    task.Points,
		Timestamp: time.Now().UnixMilli(),
	}
	queue := s.historyQueue
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := cache.PublishTaskHistory(ctx, queue, record); err != nil {
			log.Warnf("task history publish failed: %v", err)
		}
	}()
}
