package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dareloop/dareloop/internal/auth"
	"github.com/dareloop/dareloop/internal/catalog"
	"github.com/dareloop/dareloop/internal/models"
)

func TestMain(m *testing.M) {
	if err := auth.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

// mockBroadcaster collects events instead of sending them over WS.
type mockBroadcaster struct {
	mu           sync.Mutex
	allEvents    []Event
	playerEvents map[uuid.UUID][]Event
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{playerEvents: make(map[uuid.UUID][]Event)}
}

func (mb *mockBroadcaster) broadcastFn(ev Event) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = append(mb.allEvents, ev)
}

func (mb *mockBroadcaster) broadcastToPlayerFn(id uuid.UUID, ev Event) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.playerEvents[id] = append(mb.playerEvents[id], ev)
}

func (mb *mockBroadcaster) lastOfType(t EventType) *Event {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for i := len(mb.allEvents) - 1; i >= 0; i-- {
		if mb.allEvents[i].Type == t {
			return &mb.allEvents[i]
		}
	}
	return nil
}

func (mb *mockBroadcaster) lastPlayerEvent(id uuid.UUID) *Event {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	events := mb.playerEvents[id]
	if len(events) == 0 {
		return nil
	}
	return &events[len(events)-1]
}

// stubRand replays canned values so draws are fully reproducible.
type stubRand struct {
	floats []float64
	ints   []int
}

func (r *stubRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *stubRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

// setupSession builds a session with a mock broadcaster and n joined players.
func setupSession(t *testing.T, maxPlayers, joined int) (*Session, []*models.Player, *mockBroadcaster) {
	t.Helper()
	s := NewSession(maxPlayers, 0, auth.NewRegistry())
	mb := newMockBroadcaster()
	s.BroadcastFn = mb.broadcastFn
	s.BroadcastToPlayerFn = mb.broadcastToPlayerFn

	players := make([]*models.Player, joined)
	for i := 0; i < joined; i++ {
		p, token, err := s.Join(uuid.New(), string(rune('A'+i)), nil)
		require.NoError(t, err)
		require.NotEmpty(t, token)
		players[i] = p
	}
	return s, players, mb
}

// baseIndex finds a base-catalog task matching pred, for deterministic picks.
func baseIndex(t *testing.T, pred func(models.Task) bool) int {
	t.Helper()
	for i, task := range catalog.Base() {
		if pred(task) {
			return i
		}
	}
	t.Fatal("no base task matches predicate")
	return -1
}

func TestJoinRosterFull(t *testing.T) {
	s, _, _ := setupSession(t, 2, 2)

	before := s.Snapshot()
	_, _, err := s.Join(uuid.New(), "late", nil)
	require.ErrorIs(t, err, ErrRosterFull)
	assert.Equal(t, before, s.Snapshot(), "a rejected join must not mutate state")
}

func TestJoinInvalidName(t *testing.T) {
	s, _, _ := setupSession(t, 4, 0)
	_, _, err := s.Join(uuid.New(), "   ", nil)
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestRejoinUpdatesInsteadOfDuplicating(t *testing.T) {
	s, players, _ := setupSession(t, 4, 2)

	p, token, err := s.Join(players[0].ID, "renamed", nil)
	require.NoError(t, err)
	assert.Equal(t, players[0].ID, p.ID)
	assert.Equal(t, "renamed", p.Name)
	assert.Len(t, s.Snapshot().Players, 2)
	assert.True(t, s.Verify(players[0].ID, token))
}

func TestAdvanceWrapsAround(t *testing.T) {
	s, players, _ := setupSession(t, 8, 3)
	require.Equal(t, players[0].ID, s.CurrentPlayerID())

	for i := 0; i < len(players); i++ {
		s.mu.Lock()
		s.advanceTurn()
		require.GreaterOrEqual(t, s.currentPlayerIndex, 0)
		require.Less(t, s.currentPlayerIndex, len(players))
		s.mu.Unlock()
	}
	assert.Equal(t, players[0].ID, s.CurrentPlayerID(), "N advances should return to the original pointer")
}

func TestAdvanceEmptyRoster(t *testing.T) {
	s, _, _ := setupSession(t, 8, 0)
	s.mu.Lock()
	s.advanceTurn() // must not divide by zero
	s.mu.Unlock()
	assert.Equal(t, uuid.Nil, s.CurrentPlayerID())
}

func TestSkipSemantics(t *testing.T) {
	s, players, mb := setupSession(t, 8, 3)

	// Pending skip for A; pointer parked on C so the next advance lands on A.
	s.mu.Lock()
	s.currentPlayerIndex = 2
	s.skipNextTurn = true
	s.playerToSkip = players[0].ID
	s.advanceTurn()
	s.mu.Unlock()

	assert.Equal(t, players[1].ID, s.CurrentPlayerID(), "skip should land one position past A")
	s.mu.Lock()
	assert.False(t, s.skipNextTurn)
	assert.Equal(t, uuid.Nil, s.playerToSkip)
	s.mu.Unlock()

	ev := mb.lastOfType(EventSkipTurn)
	require.NotNil(t, ev)
	assert.Equal(t, players[0].ID, ev.Player.ID)

	// A second advance must not skip again.
	s.mu.Lock()
	s.advanceTurn()
	s.mu.Unlock()
	assert.Equal(t, players[2].ID, s.CurrentPlayerID())
}

func TestDrawNotYourTurn(t *testing.T) {
	s, players, _ := setupSession(t, 8, 2)
	_, err := s.DrawTask(players[1].ID)
	require.ErrorIs(t, err, ErrNotYourTurn)
}

func TestDrawStandardTaskScoresAndAdvances(t *testing.T) {
	s, players, mb := setupSession(t, 8, 2)

	idx := baseIndex(t, func(task models.Task) bool {
		return task.Points == 1 && !task.IsWebcamTask && !task.IsPenalty && !task.IsSpecial
	})
	s.SetRand(&stubRand{floats: []float64{0.5}, ints: []int{idx}})

	task, err := s.DrawTask(players[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, task.Points)
	assert.Equal(t, 1, players[0].Score)
	assert.Equal(t, players[1].ID, s.CurrentPlayerID())

	ev := mb.lastOfType(EventTaskDrawn)
	require.NotNil(t, ev)
	assert.Equal(t, players[0].ID, ev.Player.ID)
	assert.Equal(t, task.Text, ev.Task.Text)
}

func TestDrawPenaltySetsSkipFlags(t *testing.T) {
	s, players, _ := setupSession(t, 8, 2)

	idx := baseIndex(t, func(task models.Task) bool { return task.IsPenalty })
	s.SetRand(&stubRand{floats: []float64{0.5}, ints: []int{idx}})

	task, err := s.DrawTask(players[0].ID)
	require.NoError(t, err)
	assert.True(t, task.IsPenalty)

	s.mu.Lock()
	assert.True(t, s.skipNextTurn)
	assert.Equal(t, players[0].ID, s.playerToSkip)
	s.mu.Unlock()
	assert.Equal(t, players[1].ID, s.CurrentPlayerID())

	// B takes a normal turn; the advance that would land on A skips back to B.
	idx = baseIndex(t, func(task models.Task) bool {
		return task.Points == 1 && !task.IsWebcamTask && !task.IsPenalty && !task.IsSpecial
	})
	s.SetRand(&stubRand{floats: []float64{0.5}, ints: []int{idx}})
	_, err = s.DrawTask(players[1].ID)
	require.NoError(t, err)
	assert.Equal(t, players[1].ID, s.CurrentPlayerID(), "A's turn should be skipped exactly once")
}

func TestDrawWebcamTaskFeaturesPlayer(t *testing.T) {
	s, players, mb := setupSession(t, 8, 2)

	idx := baseIndex(t, func(task models.Task) bool { return task.IsWebcamTask })
	s.SetRand(&stubRand{floats: []float64{0.5}, ints: []int{idx}})

	_, err := s.DrawTask(players[0].ID)
	require.NoError(t, err)

	s.mu.Lock()
	assert.Equal(t, players[0].ID, s.activeWebcam)
	s.mu.Unlock()
	require.NotNil(t, mb.lastOfType(EventWebcamShow))
}

func TestDrawRareIncrementsCounter(t *testing.T) {
	s, players, mb := setupSession(t, 8, 1)

	s.SetRand(&stubRand{floats: []float64{0.01}})
	task, err := s.DrawTask(players[0].ID)
	require.NoError(t, err)
	assert.True(t, task.IsRare)

	s.mu.Lock()
	assert.Equal(t, 1, s.playerBonuses[players[0].ID].RareCount)
	s.mu.Unlock()

	ev := mb.lastOfType(EventBonusCount)
	require.NotNil(t, ev)
	assert.Equal(t, 1, ev.Payload["rareCount"])
}

func TestDrawBonusPoolExcludesRareAndSpecial(t *testing.T) {
	s, players, _ := setupSession(t, 8, 1)

	// Walk every index of the bonus pick; none may be rare or special.
	for i := range catalog.BonusRegular() {
		s.SetRand(&stubRand{floats: []float64{0.05}, ints: []int{i}})
		task, err := s.DrawTask(players[0].ID)
		require.NoError(t, err)
		assert.False(t, task.IsRare)
		assert.False(t, task.IsSpecial)
		assert.False(t, task.IsUltimate)
	}
}

func TestUltimateEscalation(t *testing.T) {
	s, players, mb := setupSession(t, 8, 1)
	p := players[0]

	// Three rare draws, then a fourth with a roll that would otherwise be a
	// plain catalog pick.
	s.SetRand(&stubRand{floats: []float64{0.01, 0.01, 0.01, 0.99}})
	for i := 0; i < 3; i++ {
		task, err := s.DrawTask(p.ID)
		require.NoError(t, err)
		require.True(t, task.IsRare)
	}
	s.mu.Lock()
	require.Equal(t, 3, s.playerBonuses[p.ID].RareCount)
	s.mu.Unlock()

	task, err := s.DrawTask(p.ID)
	require.NoError(t, err)
	assert.True(t, task.IsUltimate, "4th draw must be the ultimate task regardless of the roll")

	s.mu.Lock()
	assert.Equal(t, 0, s.playerBonuses[p.ID].RareCount, "rare counter resets when the ultimate fires")
	s.mu.Unlock()
	require.NotNil(t, mb.lastOfType(EventUltimate))
}

func TestCustomTasksArePooledGlobally(t *testing.T) {
	s, players, _ := setupSession(t, 8, 2)

	require.NoError(t, s.CreateCustomTask(players[1].ID, &models.CustomTaskPayload{Text: "custom dare from B"}))

	// A's standard draw with the index pointing just past the base catalog
	// must land on B's task.
	s.SetRand(&stubRand{floats: []float64{0.5}, ints: []int{len(catalog.Base())}})
	task, err := s.DrawTask(players[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "custom dare from B", task.Text)
}

func TestSpecialTaskDefersTurnCompletion(t *testing.T) {
	s, players, mb := setupSession(t, 8, 2)
	a, b := players[0], players[1]
	a.Score = 7
	b.Score = 2

	idx := baseIndex(t, func(task models.Task) bool { return task.IsSpecial })
	s.SetRand(&stubRand{floats: []float64{0.5}, ints: []int{idx}})

	task, err := s.DrawTask(a.ID)
	require.NoError(t, err)
	assert.True(t, task.IsSpecial)
	assert.Equal(t, a.ID, s.CurrentPlayerID(), "special draw must not advance the turn")
	assert.Equal(t, 7, a.Score, "special draw must not apply points")

	prompt := mb.lastPlayerEvent(a.ID)
	require.NotNil(t, prompt)
	assert.Equal(t, EventSpecialPrompt, prompt.Type)

	// Only the drawer may answer.
	require.ErrorIs(t, s.CompleteSwap(b.ID, a.ID), ErrNoPendingChoice)

	require.NoError(t, s.CompleteSwap(a.ID, b.ID))
	assert.Equal(t, 2, a.Score)
	assert.Equal(t, 7, b.Score)
	assert.Equal(t, b.ID, s.CurrentPlayerID(), "swap completion ends the turn")

	// The choice is one-shot.
	require.ErrorIs(t, s.CompleteSwap(a.ID, b.ID), ErrNoPendingChoice)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, players, _ := setupSession(t, 8, 3)
	require.NoError(t, s.CreateCustomTask(players[0].ID, &models.CustomTaskPayload{Text: "round trip dare"}))
	players[1].Score = -4
	s.mu.Lock()
	s.currentPlayerIndex = 1
	s.skipNextTurn = true
	s.playerToSkip = players[2].ID
	s.playerBonuses[players[2].ID].RareCount = 2
	s.mu.Unlock()

	snap := s.Snapshot()

	restored := NewSession(8, 0, auth.NewRegistry())
	restored.Restore(&snap)
	assert.Equal(t, snap, restored.Snapshot())
}

func TestRestoreClampsBadPointer(t *testing.T) {
	s, _, _ := setupSession(t, 8, 2)
	snap := s.Snapshot()
	snap.CurrentPlayerIndex = 9

	restored := NewSession(8, 0, auth.NewRegistry())
	restored.Restore(&snap)
	assert.Equal(t, 0, restored.Snapshot().CurrentPlayerIndex)
}

func TestKickRemovesEverything(t *testing.T) {
	s, players, mb := setupSession(t, 8, 3)
	target := players[1]
	require.NoError(t, s.CreateCustomTask(target.ID, &models.CustomTaskPayload{Text: "soon gone"}))

	token, err := s.registry.Issue(target.ID)
	require.NoError(t, err)
	require.True(t, s.Verify(target.ID, token))

	s.mu.Lock()
	s.currentPlayerIndex = 2
	s.mu.Unlock()

	result, err := s.Admin("kick", []string{target.ID.String()})
	require.NoError(t, err)
	assert.Contains(t, result, target.Name)

	snap := s.Snapshot()
	assert.Len(t, snap.Players, 2)
	assert.NotContains(t, snap.PlayerTasks, target.ID.String())
	assert.NotContains(t, snap.PlayerBonuses, target.ID.String())
	assert.False(t, s.Verify(target.ID, token), "kicked player's token must stop verifying")
	assert.Equal(t, 0, snap.CurrentPlayerIndex, "kick resets the pointer to 0")

	kicked := mb.lastPlayerEvent(target.ID)
	require.NotNil(t, kicked)
	assert.Equal(t, EventKicked, kicked.Type)
}

func TestAdminAddPoints(t *testing.T) {
	s, players, _ := setupSession(t, 8, 2)

	_, err := s.Admin("addPoints", []string{players[0].ID.String(), "-5"})
	require.NoError(t, err)
	assert.Equal(t, -5, players[0].Score)

	_, err = s.Admin("addPoints", []string{players[0].ID.String(), "twelve"})
	require.Error(t, err)
	assert.Equal(t, -5, players[0].Score, "a malformed amount must not mutate state")
}

func TestAdminReset(t *testing.T) {
	s, players, mb := setupSession(t, 8, 2)
	token, err := s.registry.Issue(players[0].ID)
	require.NoError(t, err)

	_, err = s.Admin("reset", nil)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Empty(t, snap.Players)
	assert.Empty(t, snap.PlayerTasks)
	assert.False(t, s.Verify(players[0].ID, token))
	require.NotNil(t, mb.lastOfType(EventReset))
}

func TestAdminUnknownCommand(t *testing.T) {
	s, _, _ := setupSession(t, 8, 1)
	_, err := s.Admin("explode", nil)
	require.Error(t, err)
}

func TestDisconnectOfCurrentPlayerAdvances(t *testing.T) {
	s, players, _ := setupSession(t, 8, 2)
	require.Equal(t, players[0].ID, s.CurrentPlayerID())

	s.HandleDisconnect(players[0].ID)
	assert.Equal(t, players[1].ID, s.CurrentPlayerID(), "turn must move to B without further client action")
	assert.False(t, players[0].Connected)
}

func TestPresenceSweepEvictsStalePlayers(t *testing.T) {
	s, players, mb := setupSession(t, 8, 2)

	s.mu.Lock()
	players[0].Connected = false
	players[0].LastSeen = time.Now().Add(-time.Minute)
	s.mu.Unlock()

	s.Sweep(time.Now())

	snap := s.Snapshot()
	require.Len(t, snap.Players, 1)
	assert.Equal(t, players[1].ID.String(), snap.Players[0].ID)

	left := mb.lastOfType(EventPlayerLeft)
	require.NotNil(t, left)
	assert.Equal(t, players[0].ID, left.Player.ID)
}

func TestPresenceSweepKeepsConnectedPlayers(t *testing.T) {
	s, players, _ := setupSession(t, 8, 2)

	s.mu.Lock()
	players[0].LastSeen = time.Now().Add(-time.Hour) // stale but still connected
	s.mu.Unlock()

	s.Sweep(time.Now())
	assert.Len(t, s.Snapshot().Players, 2)
}

func TestAutoResetAfterSessionTimeout(t *testing.T) {
	s, _, mb := setupSession(t, 8, 2)
	s.mu.Lock()
	s.resetTimeout = time.Hour
	s.gameStartTime = time.Now().Add(-2 * time.Hour)
	s.mu.Unlock()

	s.Sweep(time.Now())

	assert.Empty(t, s.Snapshot().Players)
	require.NotNil(t, mb.lastOfType(EventReset))
}

func TestChatBroadcastsSanitizedMessage(t *testing.T) {
	s, players, mb := setupSession(t, 8, 1)

	require.NoError(t, s.Chat(players[0].ID, "  <i>hello</i>  "))
	ev := mb.lastOfType(EventMessage)
	require.NotNil(t, ev)
	assert.NotContains(t, ev.Message, "<")
	assert.Contains(t, ev.Message, "hello")
	assert.Equal(t, players[0].ID, ev.Player.ID)
}

func TestCreateCustomTaskValidation(t *testing.T) {
	s, players, _ := setupSession(t, 8, 1)

	require.ErrorIs(t, s.CreateCustomTask(players[0].ID, nil), ErrInvalidTask)
	require.ErrorIs(t, s.CreateCustomTask(players[0].ID, &models.CustomTaskPayload{Text: "   "}), ErrInvalidTask)
	require.ErrorIs(t, s.CreateCustomTask(uuid.New(), &models.CustomTaskPayload{Text: "x"}), ErrUnknownPlayer)

	points := 4
	require.NoError(t, s.CreateCustomTask(players[0].ID, &models.CustomTaskPayload{
		Text:     "valid dare",
		Category: models.CategoryRisky,
		Points:   &points,
	}))
	snap := s.Snapshot()
	tasks := snap.PlayerTasks[players[0].ID.String()]
	require.Len(t, tasks, 1)
	assert.Equal(t, models.CategoryRisky, tasks[0].Category)
	assert.Equal(t, 4, tasks[0].Points)
}

func TestWebcamLifecycle(t *testing.T) {
	s, players, mb := setupSession(t, 8, 2)

	require.NoError(t, s.WebcamStarted(players[0].ID))
	s.mu.Lock()
	assert.Equal(t, players[0].ID, s.activeWebcam)
	assert.True(t, players[0].BroadcastingVideo)
	s.mu.Unlock()
	require.NotNil(t, mb.lastOfType(EventWebcamShow))

	require.NoError(t, s.WebcamStopped(players[0].ID))
	s.mu.Lock()
	assert.Equal(t, uuid.Nil, s.activeWebcam)
	assert.False(t, players[0].BroadcastingVideo)
	s.mu.Unlock()
	require.NotNil(t, mb.lastOfType(EventWebcamHide))
}

func TestRemovalClampsTurnPointer(t *testing.T) {
	s, players, _ := setupSession(t, 8, 3)
	s.mu.Lock()
	s.currentPlayerIndex = 2
	s.mu.Unlock()

	require.True(t, s.Remove(players[2].ID))
	snap := s.Snapshot()
	assert.Equal(t, 1, snap.CurrentPlayerIndex, "pointer clamps to size-1 on natural removal")
	require.True(t, s.Remove(players[1].ID))
	require.True(t, s.Remove(players[0].ID))
	assert.Equal(t, 0, s.Snapshot().CurrentPlayerIndex)
}

func TestDrawRejectedWhileSwapChoicePending(t *testing.T) {
	s, players, _ := setupSession(t, 8, 3)
	a := players[0]

	idx := baseIndex(t, func(task models.Task) bool { return task.IsSpecial })
	s.SetRand(&stubRand{floats: []float64{0.5, 0.5}, ints: []int{idx, idx}})

	task, err := s.DrawTask(a.ID)
	require.NoError(t, err)
	require.True(t, task.IsSpecial)

	// The turn is parked on the choice; drawing again must not sidestep it.
	_, err = s.DrawTask(a.ID)
	require.ErrorIs(t, err, ErrChoicePending)
	assert.Equal(t, a.ID, s.CurrentPlayerID())

	require.NoError(t, s.CompleteSwap(a.ID, players[1].ID))
	assert.Equal(t, players[1].ID, s.CurrentPlayerID())
}

func TestDisconnectCancelsSwapChoice(t *testing.T) {
	s, players, _ := setupSession(t, 8, 3)
	a, b, c := players[0], players[1], players[2]
	a.Score = 7
	b.Score = 2

	idx := baseIndex(t, func(task models.Task) bool { return task.IsSpecial })
	s.SetRand(&stubRand{floats: []float64{0.5}, ints: []int{idx}})

	_, err := s.DrawTask(a.ID)
	require.NoError(t, err)

	s.HandleDisconnect(a.ID)
	require.Equal(t, b.ID, s.CurrentPlayerID())

	// The orphaned choice must neither swap scores nor steal B's turn.
	require.ErrorIs(t, s.CompleteSwap(a.ID, b.ID), ErrNoPendingChoice)
	assert.Equal(t, 7, a.Score)
	assert.Equal(t, 2, b.Score)
	assert.Equal(t, b.ID, s.CurrentPlayerID())
	assert.NotEqual(t, c.ID, s.CurrentPlayerID())
}

func TestEmptySessionDoesNotAutoReset(t *testing.T) {
	s, _, mb := setupSession(t, 8, 0)
	s.mu.Lock()
	s.resetTimeout = time.Hour
	s.gameStartTime = time.Now().Add(-24 * time.Hour)
	s.mu.Unlock()

	s.Sweep(time.Now())
	assert.Nil(t, mb.lastOfType(EventReset), "an empty session has nothing to retire")

	// The first join restarts the lifetime clock even when no sweep ran while
	// the session sat empty.
	s.mu.Lock()
	s.gameStartTime = time.Now().Add(-24 * time.Hour)
	s.mu.Unlock()
	p, _, err := s.Join(uuid.New(), "fresh", nil)
	require.NoError(t, err)

	s.Sweep(time.Now())
	assert.Nil(t, mb.lastOfType(EventReset))
	snap := s.Snapshot()
	require.Len(t, snap.Players, 1)
	assert.Equal(t, p.ID.String(), snap.Players[0].ID)
}

// failingRegistry refuses every mint, for exercising the join error path.
type failingRegistry struct{}

func (failingRegistry) Issue(uuid.UUID) (string, error) { return "", errors.New("mint unavailable") }
func (failingRegistry) Verify(uuid.UUID, string) bool   { return false }
func (failingRegistry) Revoke(uuid.UUID)                {}

func TestJoinMintFailureLeavesStateUntouched(t *testing.T) {
	s := NewSession(4, 0, failingRegistry{})
	mb := newMockBroadcaster()
	s.BroadcastFn = mb.broadcastFn

	before := s.Snapshot()
	_, _, err := s.Join(uuid.New(), "ghost", nil)
	require.Error(t, err)
	assert.Equal(t, before, s.Snapshot(), "a failed mint must not seat the player")
	assert.Empty(t, mb.allEvents)
}

func TestMutationsPersistInOrder(t *testing.T) {
	s, _, _ := setupSession(t, 8, 0)
	var sizes []int
	s.OnMutate = func(snap models.SessionSnapshot) {
		sizes = append(sizes, len(snap.Players))
	}

	for i := 0; i < 3; i++ {
		_, _, err := s.Join(uuid.New(), string(rune('A'+i)), nil)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{1, 2, 3}, sizes, "snapshots arrive in mutation order")
}
