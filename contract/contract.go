//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"chat-relay/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
	Wait()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// initialization or lifecycle events, avoiding the need for manual naming
// in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Channel is the transport collaborator: one established bidirectional text
// channel. ReadLine blocks until a full line arrives, the stream ends, or the
// channel fails; the core never touches sockets directly.
type Channel interface {
	domain.Conduit
	ReadLine() (string, error)
}

// Console is the operator-side collaborator: blocking line input plus plain
// line output for broadcast echo, whispers to the operator, and command
// results.
type Console interface {
	ReadLine() (string, error)
	Print(line string)
}

// Clock supplies the current time for join timestamps and elapsed queries.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// RegistryView is the read surface of the registry, usable on its own
// (each call takes the lock) or inside an Atomically section (the whole
// closure runs under one lock acquisition).
type RegistryView interface {
	Find(name string) *domain.Session
	ForEach(visit func(*domain.Session))
	Count() int
}

type IRegistry interface {
	RegistryView
	Register(s *domain.Session) error
	Claim(s *domain.Session, name string) error
	Unregister(s *domain.Session)
	Atomically(fn func(view RegistryView))
}

type IRelay interface {
	Broadcast(text string)
	BroadcastMessage(m domain.Message)
	Whisper(m domain.Message)
	Roster() string
	Kick(name string) bool
}

type IRouter interface {
	SubmitName(s *domain.Session, candidate string) bool
	HandleClientLine(s *domain.Session, line string) (quit bool)
	HandleOperatorLine(line string)
}
