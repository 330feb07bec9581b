package session

import (
	"sync"

	"github.com/google/uuid"
)

// Conn is the transport-level handle a session sends on. Satisfied by
// *websocket.Conn from gorilla/websocket.
type Conn interface {
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// textMessage is the RFC 6455 text opcode (websocket.TextMessage).
const textMessage = 1

// Session is one accepted connection registered under a client identity. All
// outbound writes go through SendJSON/SendText, which serialize on the
// session mutex so a command echo can never interleave with a result payload
// on the same socket.
type Session struct {
	ID       string
	ClientID string

	conn Conn
	mu   sync.Mutex
}

func New(clientID string, conn Conn) *Session {
	return &Session{
		ID:       uuid.New().String(),
		ClientID: clientID,
		conn:     conn,
	}
}

// SendJSON writes a JSON payload to the session.
func (s *Session) SendJSON(payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(payload)
}

// SendText writes a literal text frame to the session.
func (s *Session) SendText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(textMessage, []byte(text))
}

// Close releases the underlying transport.
func (s *Session) Close() error {
	return s.conn.Close()
}
