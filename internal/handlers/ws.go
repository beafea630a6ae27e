package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/dareloop/dareloop/internal/game"
	"github.com/dareloop/dareloop/internal/models"
)

// WSHandler upgrades the HTTP connection, assigns the connection identity,
// and runs the read loop until the client goes away. Disconnect cleanup is
// implicit: when the loop exits the player is marked gone and the turn moves
// on if it was theirs.
func (s *Server) WSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			s.Logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler exit")

		identity := uuid.New()
		s.register(identity, c)
		s.Logger.Infof("connection %s established from %s", identity, r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		s.readMessages(ctx, c, identity)

		s.unregister(identity)
		s.Session.HandleDisconnect(identity)
		s.Logger.Infof("connection %s closed", identity)
	}
}

// readMessages reads, validates, and dispatches inbound messages for one
// connection until error or cancellation.
func (s *Server) readMessages(ctx context.Context, c *websocket.Conn, identity uuid.UUID) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				s.Logger.Infof("websocket closed normally for %s", identity)
			} else if !strings.Contains(err.Error(), "context canceled") {
				s.Logger.Warnf("websocket read error for %s: %v", identity, err)
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		var msg models.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.Logger.Warnf("invalid JSON from %s: %v", identity, err)
			s.sendError(identity, game.ReasonBadRequest, "invalid JSON")
			continue
		}

		s.dispatch(identity, c, &msg)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// dispatch routes one inbound message. Authorization happens here; game
// semantics stay in the game package.
func (s *Server) dispatch(identity uuid.UUID, c *websocket.Conn, msg *models.ClientMessage) {
	switch msg.Type {
	case "join":
		_, token, err := s.Session.Join(identity, msg.Name, c)
		if err != nil {
			s.joinError(identity, err)
			return
		}
		s.sendToOne(identity, game.Event{
			Type:  game.EventJoined,
			Token: token,
			Player: &game.EventPlayer{
				ID: identity,
			},
		})

	case "heartbeat":
		s.Session.Touch(identity)

	case "adminCommand":
		s.adminCommand(identity, msg)

	case "drawTask", "createCustomTask", "sendChatMessage", "startTimer",
		"webcamStarted", "webcamStopped", "webcamClosed", "specialChoice":
		if !s.Session.Verify(identity, msg.Token) {
			s.sendError(identity, game.ReasonBadToken, "invalid session token")
			return
		}
		s.authorized(identity, msg)

	default:
		s.sendError(identity, game.ReasonBadRequest, "unknown message type: "+msg.Type)
	}
}

// authorized handles the token-gated gameplay actions.
func (s *Server) authorized(identity uuid.UUID, msg *models.ClientMessage) {
	var err error
	switch msg.Type {
	case "drawTask":
		_, err = s.Session.DrawTask(identity)
	case "createCustomTask":
		err = s.Session.CreateCustomTask(identity, msg.Task)
	case "sendChatMessage":
		err = s.Session.Chat(identity, msg.Message)
	case "startTimer":
		err = s.Session.StartTimer(identity)
	case "webcamStarted":
		err = s.Session.WebcamStarted(identity)
	case "webcamStopped", "webcamClosed":
		err = s.Session.WebcamStopped(identity)
	case "specialChoice":
		var target uuid.UUID
		target, err = uuid.Parse(msg.Target)
		if err == nil {
			err = s.Session.CompleteSwap(identity, target)
		}
	}
	if err != nil {
		s.gameError(identity, err)
	}
}

// adminCommand checks the shared secret and runs the command. A bad secret is
// the one authorization failure logged as security-relevant.
func (s *Server) adminCommand(identity uuid.UUID, msg *models.ClientMessage) {
	if !s.Gate.Check(msg.Secret) {
		s.Logger.Warnf("admin secret mismatch from connection %s", identity)
		s.sendToOne(identity, game.Event{
			Type:    game.EventAdminResult,
			Reason:  "denied",
			Message: "invalid admin secret",
		})
		return
	}
	result, err := s.Session.Admin(msg.Command, msg.Args)
	if err != nil {
		s.sendToOne(identity, game.Event{
			Type:    game.EventAdminResult,
			Reason:  "error",
			Message: err.Error(),
		})
		return
	}
	s.sendToOne(identity, game.Event{
		Type:    game.EventAdminResult,
		Reason:  "ok",
		Message: result,
	})
}

// joinError maps join failures to their wire reason codes.
func (s *Server) joinError(identity uuid.UUID, err error) {
	switch {
	case errors.Is(err, game.ErrRosterFull):
		s.sendError(identity, game.ReasonGameFull, "the game is full")
	case errors.Is(err, game.ErrInvalidName):
		s.sendError(identity, game.ReasonInvalidName, "that name cannot be used")
	default:
		s.sendError(identity, game.ReasonBadRequest, err.Error())
	}
}

// gameError maps gameplay failures to their wire reason codes.
func (s *Server) gameError(identity uuid.UUID, err error) {
	switch {
	case errors.Is(err, game.ErrNotYourTurn):
		s.sendError(identity, game.ReasonNotYourTurn, "it is not your turn")
	case errors.Is(err, game.ErrUnknownPlayer):
		s.sendError(identity, game.ReasonBadToken, "join the game first")
	default:
		s.sendError(identity, game.ReasonBadRequest, err.Error())
	}
}

func (s *Server) sendError(identity uuid.UUID, reason, message string) {
	s.sendToOne(identity, game.Event{
		Type:    game.EventError,
		Reason:  reason,
		Message: message,
	})
}
