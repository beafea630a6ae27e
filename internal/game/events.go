package game

import (
	"github.com/google/uuid"

	"github.com/dareloop/dareloop/internal/models"
)

// EventType is an enum-like type for outbound notifications.
type EventType string

const (
	EventPlayers       EventType = "players"        // roster snapshot + current turn
	EventJoined        EventType = "joined"         // private join ack with session token
	EventMessage       EventType = "message"        // chat and system messages
	EventTaskDrawn     EventType = "task_drawn"     // a task was drawn
	EventTaskHistory   EventType = "task_history"   // append entry for the history pane
	EventSkipTurn      EventType = "skip_turn"      // miss-a-turn penalty announcement
	EventWebcamShow    EventType = "webcam_show"    // a player's webcam became active
	EventWebcamHide    EventType = "webcam_hide"    // the active webcam went away
	EventWebcamStatus  EventType = "webcam_status"  // broadcast/stop state change
	EventBonusCount    EventType = "bonus_count"    // rare-counter update for a player
	EventSpecialPrompt EventType = "special_prompt" // private choose-a-player prompt
	EventUltimate      EventType = "ultimate"       // ultimate task fired (sound cue)
	EventTimerStarted  EventType = "timer_started"
	EventAlarm         EventType = "alarm"
	EventReset         EventType = "reset"
	EventKicked        EventType = "kicked" // private notice before removal
	EventPlayerLeft    EventType = "player_left"
	EventError         EventType = "error"
	EventAdminResult   EventType = "admin_result"
)

// Error reason codes carried on EventError.
const (
	ReasonNotYourTurn = "notYourTurn"
	ReasonGameFull    = "gameFull"
	ReasonInvalidName = "invalidName"
	ReasonBadToken    = "badToken"
	ReasonBadRequest  = "badRequest"
)

// EventPlayer identifies a player within an event payload.
type EventPlayer struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// Event holds data about a single outbound notification in a consistent
// wire format. Unused fields are omitted.
type Event struct {
	Type    EventType    `json:"type"`
	Player  *EventPlayer `json:"player,omitempty"`
	Task    *models.Task `json:"task,omitempty"`
	Message string       `json:"message,omitempty"`
	Reason  string       `json:"reason,omitempty"`
	Token   string       `json:"token,omitempty"`
	State   *PublicState `json:"state,omitempty"`

	// Payload carries miscellaneous event-specific fields.
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// fireEvent broadcasts an event to all connected players.
// Assumes lock is held.
func (s *Session) fireEvent(ev Event) {
	if s.BroadcastFn != nil {
		s.BroadcastFn(ev)
	}
}

// fireEventToPlayer sends an event only to a specific player.
// Assumes lock is held.
func (s *Session) fireEventToPlayer(id uuid.UUID, ev Event) {
	if s.BroadcastToPlayerFn != nil {
		s.BroadcastToPlayerFn(id, ev)
	}
}

// systemMessage broadcasts a chat-style notice from the server.
// Assumes lock is held.
func (s *Session) systemMessage(text string) {
	s.fireEvent(Event{Type: EventMessage, Message: text})
}
