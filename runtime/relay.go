package runtime

import (
	"fmt"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/moderation"
)

// Relay carries messages over the registry: broadcast to everyone, whisper to
// one, roster queries, kick. It is stateless; the registry is the only shared
// state underneath.
type Relay struct {
	registry  contract.IRegistry
	console   contract.Console
	moderator *moderation.Moderator // nil disables censoring
	log       *slog.Logger
}

func NewRelay(registry contract.IRegistry, console contract.Console,
	moderator *moderation.Moderator, log *slog.Logger) *Relay {
	return &Relay{
		registry:  registry,
		console:   console,
		moderator: moderator,
		log:       log,
	}
}

// Broadcast writes text to the operator console and to every registered
// session. A session that cannot be written to surfaces its own disconnect
// through its read loop, so individual write failures are swallowed here.
func (r *Relay) Broadcast(text string) {
	r.console.Print(text)
	r.registry.ForEach(func(s *domain.Session) {
		if err := s.Conduit.WriteLine(text); err != nil {
			r.log.Debug("Dropped broadcast line for one session",
				"session", s.ID, "error", err)
		}
	})
}

// BroadcastMessage formats and broadcasts a chat message, running the body
// through the moderator when one is configured.
func (r *Relay) BroadcastMessage(m domain.Message) {
	body := m.Body
	if r.moderator != nil {
		censored, found := r.moderator.Censor(body)
		if len(found) > 0 {
			r.log.Warn("Censored message content",
				"author", m.From.Label(), "words", len(found))
		}
		body = censored
	}
	r.Broadcast(m.From.Label() + ": " + body)
}

// Whisper resolves the recipient and delivers a private message. All three
// outcomes (operator recipient, session recipient, no match) run under one
// exclusive registry section so nobody joins or leaves mid-resolution.
func (r *Relay) Whisper(m domain.Message) {
	r.registry.Atomically(func(view contract.RegistryView) {
		notifySender := func(text string) {
			if m.From.IsAdmin() {
				r.console.Print(text)
				return
			}
			if s := view.Find(m.From.Name()); s != nil {
				if err := s.Conduit.WriteLine(text); err != nil {
					r.log.Debug("Dropped whisper notice", "error", err)
				}
			}
		}

		if m.To == domain.ReservedName {
			r.console.Print(m.From.Label() + " whispered to you: " + m.Body)
			notifySender("You whispered to " + m.To + ": " + m.Body)
			return
		}

		if target := view.Find(m.To); target != nil {
			if err := target.Conduit.WriteLine(m.From.Label() + " whispered to you: " + m.Body); err != nil {
				r.log.Debug("Dropped whisper delivery", "recipient", m.To, "error", err)
			}
			notifySender("You whispered to " + m.To + ": " + m.Body)
			return
		}

		notifySender(noSuchUserNotice(m.To))
	})
}

// Roster returns the human-readable count of active sessions.
func (r *Relay) Roster() string {
	return fmt.Sprintf("There are %d clients in the server.", r.registry.Count())
}

// Kick forces the named session's channel closed and reports whether a target
// was found. Removal from the registry is not done here: it happens when the
// kicked session's own read loop observes the closed channel, so a kicked
// session stays enumerable for a short window. That is expected.
func (r *Relay) Kick(name string) bool {
	target := r.registry.Find(name)
	if target == nil {
		return false
	}
	if err := target.Conduit.Close(); err != nil {
		r.log.Error("Failed to close the channel of a kicked client",
			"name", name, "error", err)
	}
	return true
}

func noSuchUserNotice(name string) string {
	return fmt.Sprintf("There is nobody in the server called %q.", name)
}
