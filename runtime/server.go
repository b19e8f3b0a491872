package runtime

import (
	"context"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/runtime/workers"
)

// Server composes the registry, relay and router with the supervised worker
// pool. The transport hands established channels to Attach; everything else
// (accepting, console input) lives with the collaborators.
type Server struct {
	log        *slog.Logger
	supervisor contract.ISupervisor
	registry   contract.IRegistry
	relay      contract.IRelay
	router     contract.IRouter
	console    contract.Console
	clock      contract.Clock

	ctx context.Context
}

func NewServer(log *slog.Logger, supervisor contract.ISupervisor,
	registry contract.IRegistry, relay contract.IRelay, router contract.IRouter,
	console contract.Console, clock contract.Clock) *Server {
	return &Server{
		log:        log,
		supervisor: supervisor,
		registry:   registry,
		relay:      relay,
		router:     router,
		console:    console,
		clock:      clock,
	}
}

// Start binds the server to its run context. Channels attached before Start
// are rejected.
func (s *Server) Start(ctx context.Context) {
	s.ctx = ctx
	s.log.Info("Session relay core started")
}

// Attach takes ownership of an established channel: it creates the session,
// registers it, and starts its dedicated read-loop worker. One independent
// unit of execution per connected session; they only share the registry.
func (s *Server) Attach(ch contract.Channel) {
	if s.ctx == nil || s.ctx.Err() != nil {
		s.log.Warn("Rejecting channel attached outside the run context")
		_ = ch.Close()
		return
	}

	session := domain.NewSession(ch, s.clock.Now())
	if err := s.registry.Register(session); err != nil {
		// Unreachable for unnamed sessions; log and drop rather than crash.
		s.log.Error("Failed to register a new session", "error", err)
		_ = ch.Close()
		return
	}

	worker := workers.NewSessionWorker(session, ch, s.registry, s.relay, s.router, s.console, s.log)
	s.supervisor.Start(s.ctx, worker)
	s.log.Debug("Session attached",
		"session", session.ID, "remote", ch.RemoteAddr(), "total", s.registry.Count())
}

// Stop force-closes every live channel. Each session's own read loop observes
// the closure and walks through its CLOSED transition, so the registry drains
// itself; Stop does not remove anything eagerly from two places.
func (s *Server) Stop() {
	s.log.Info("Closing all session channels", "total", s.registry.Count())
	s.registry.ForEach(func(session *domain.Session) {
		_ = session.Conduit.Close()
	})
}
