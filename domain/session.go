// Package domain contains core concepts of the chat service.
// This file defines Session entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conduit is the write side of one client's text channel. The read side stays
// with the session's own worker; everything else in the system only ever
// writes lines or forces the channel closed.
type Conduit interface {
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

// Session represents one connected participant: its identity plus the write
// handle of its channel. A session starts unnamed; Name is assigned exactly
// once by the registry under its lock and is unique among live sessions.
type Session struct {
	ID       uuid.UUID
	Name     string
	JoinedAt time.Time
	Conduit  Conduit
}

func NewSession(conduit Conduit, joinedAt time.Time) *Session {
	return &Session{
		ID:       uuid.New(),
		JoinedAt: joinedAt,
		Conduit:  conduit,
	}
}

// Named reports whether the session has completed the naming handshake.
func (s *Session) Named() bool {
	return s.Name != ""
}

// Sender returns the session's structured identity for outgoing messages.
func (s *Session) Sender() Sender {
	return Named(s.Name)
}

// ConnectedFor returns whole seconds since the channel was established,
// truncated toward zero.
func (s *Session) ConnectedFor(now time.Time) int64 {
	return int64(now.Sub(s.JoinedAt) / time.Second)
}
