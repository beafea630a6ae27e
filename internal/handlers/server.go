// Package handlers wires the websocket transport to the game session. The
// session never touches wire framing; it fires events through the broadcast
// closures registered here.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dareloop/dareloop/internal/auth"
	"github.com/dareloop/dareloop/internal/game"
)

// sendQueueDepth bounds the per-connection outbound queue. A client that
// falls this far behind starts losing frames instead of stalling the game.
const sendQueueDepth = 64

// client is one live connection plus its outbound queue. A single write loop
// drains the queue, so frames reach the socket in the order they were queued.
type client struct {
	out  chan []byte
	done chan struct{}
}

// enqueue offers a frame to the write loop without blocking. Full queue means
// the frame is dropped; the next full-state broadcast catches the client up.
func (cl *client) enqueue(data []byte) bool {
	select {
	case cl.out <- data:
		return true
	default:
		return false
	}
}

func (cl *client) writeLoop(c *websocket.Conn) {
	for {
		select {
		case <-cl.done:
			return
		case data := <-cl.out:
			writeConn(c, data)
		}
	}
}

// Server holds the shared session, the admin gate, and the live connection
// registry used for fan-out.
type Server struct {
	Session *game.Session
	Gate    *auth.AdminGate
	Logger  *logrus.Logger

	mu    sync.Mutex
	conns map[uuid.UUID]*client
}

// NewServer wires a Server and registers its broadcast closures on the
// session.
func NewServer(session *game.Session, gate *auth.AdminGate, logger *logrus.Logger) *Server {
	s := &Server{
		Session: session,
		Gate:    gate,
		Logger:  logger,
		conns:   make(map[uuid.UUID]*client),
	}
	session.BroadcastFn = s.broadcastAll
	session.BroadcastToPlayerFn = s.sendToOne
	return s
}

// register adds a live connection to the fan-out set and starts its write
// loop.
func (s *Server) register(id uuid.UUID, c *websocket.Conn) {
	cl := &client{
		out:  make(chan []byte, sendQueueDepth),
		done: make(chan struct{}),
	}
	s.mu.Lock()
	s.conns[id] = cl
	s.mu.Unlock()
	go cl.writeLoop(c)
}

// unregister drops a connection from the fan-out set and stops its write
// loop.
func (s *Server) unregister(id uuid.UUID) {
	s.mu.Lock()
	cl, ok := s.conns[id]
	delete(s.conns, id)
	s.mu.Unlock()
	if ok {
		close(cl.done)
	}
}

// broadcastAll queues an event on every live connection. Called while the
// session lock is held, so it must only take the connection-registry lock;
// queueing never blocks and the per-client write loops do the socket work.
func (s *Server) broadcastAll(ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		s.Logger.Errorf("failed to marshal broadcast event %s: %v", ev.Type, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, cl := range s.conns {
		if !cl.enqueue(data) {
			s.Logger.Warnf("dropping %s event for slow client %s", ev.Type, id)
		}
	}
}

// sendToOne queues an event for a single identity, if connected. Same locking
// contract as broadcastAll.
func (s *Server) sendToOne(id uuid.UUID, ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		s.Logger.Errorf("failed to marshal private event %s for %s: %v", ev.Type, id, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cl, ok := s.conns[id]; ok {
		if !cl.enqueue(data) {
			s.Logger.Warnf("dropping %s event for slow client %s", ev.Type, id)
		}
	}
}

// writeConn writes one text frame with a bounded timeout.
func writeConn(c *websocket.Conn, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = c.Write(ctx, websocket.MessageText, data)
}

// PingHandler is a trivial liveness endpoint.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
