package workers

import (
	"context"
	"log/slog"
	"strings"

	"chat-relay/contract"
	"chat-relay/domain"
)

// SessionWorker is the independent unit of execution behind one session. It
// blocks on channel reads, drives the naming handshake, and dispatches every
// subsequent line through the router. A channel error or end of stream is
// terminal for this session only; Run always returns nil so the supervisor
// never re-runs a closed session.
type SessionWorker struct {
	session  *domain.Session
	channel  contract.Channel
	registry contract.IRegistry
	relay    contract.IRelay
	router   contract.IRouter
	console  contract.Console
	log      *slog.Logger
}

func NewSessionWorker(session *domain.Session, channel contract.Channel,
	registry contract.IRegistry, relay contract.IRelay, router contract.IRouter,
	console contract.Console, log *slog.Logger) *SessionWorker {
	return &SessionWorker{
		session:  session,
		channel:  channel,
		registry: registry,
		relay:    relay,
		router:   router,
		console:  console,
		log:      log,
	}
}

func (w *SessionWorker) Run(ctx context.Context) error {
	defer w.close()

	w.console.Print("A client has connected to the server.")
	if err := w.channel.WriteLine("You have connected to the server."); err != nil {
		return nil
	}

	if !w.awaitName() {
		return nil
	}

	for {
		line, err := w.channel.ReadLine()
		if err != nil {
			w.log.Debug("Session channel closed",
				"session", w.session.ID, "error", err)
			return nil
		}
		if quit := w.router.HandleClientLine(w.session, line); quit {
			return nil
		}
	}
}

// awaitName re-prompts until the client claims a valid, unused name or the
// channel dies. The session stays CONNECTED (unnamed, invisible to whisper
// resolution) for the whole loop.
func (w *SessionWorker) awaitName() bool {
	for {
		if err := w.channel.WriteLine("Please input a username:"); err != nil {
			return false
		}
		line, err := w.channel.ReadLine()
		if err != nil {
			w.log.Debug("Session channel closed before naming",
				"session", w.session.ID, "error", err)
			return false
		}
		if w.router.SubmitName(w.session, strings.TrimSpace(line)) {
			return true
		}
	}
}

// close performs the CLOSED transition: unregister first (idempotent, so a
// concurrent kick is harmless), then announce the departure. A session that
// never got named was invisible to the others, so only the console hears
// about it.
func (w *SessionWorker) close() {
	w.registry.Unregister(w.session)
	if w.session.Named() {
		w.relay.Broadcast(w.session.Name + " has left the server.")
	} else {
		w.console.Print("A client has disconnected from the server before entering their username.")
	}
	_ = w.channel.Close()
}
