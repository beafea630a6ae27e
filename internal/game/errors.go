package game

import "errors"

var (
	// ErrRosterFull is returned when a join would exceed the player cap.
	ErrRosterFull = errors.New("game is full")

	// ErrInvalidName is returned when a display name is empty after sanitizing.
	ErrInvalidName = errors.New("invalid name")

	// ErrNotYourTurn is returned when a player acts outside their turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrUnknownPlayer is returned when an action references an identity that
	// is not in the roster.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrNoPendingChoice is returned when a specialChoice arrives without an
	// outstanding special task for that player.
	ErrNoPendingChoice = errors.New("no special task pending")

	// ErrChoicePending is returned when a player tries to act while their own
	// special-task choice is still outstanding.
	ErrChoicePending = errors.New("special task choice pending")

	// ErrInvalidTask is returned when a custom task payload fails validation.
	ErrInvalidTask = errors.New("invalid task")
)
