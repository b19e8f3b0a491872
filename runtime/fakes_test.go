package runtime_test

import (
	"io"
	"sync"
	"time"

	"chat-relay/domain"
	"chat-relay/runtime"
)

// fakeConduit records everything written to one session's channel.
type fakeConduit struct {
	mu     sync.Mutex
	lines  []string
	closed bool
}

func (c *fakeConduit) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return io.ErrClosedPipe
	}
	c.lines = append(c.lines, line)
	return nil
}

func (c *fakeConduit) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConduit) RemoteAddr() string { return "127.0.0.1:54321" }

func (c *fakeConduit) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func (c *fakeConduit) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// fakeConsole records operator-side output. ReadLine reports end of input
// immediately; none of these tests drive the console loop.
type fakeConsole struct {
	mu     sync.Mutex
	prints []string
}

func (c *fakeConsole) ReadLine() (string, error) { return "", io.EOF }

func (c *fakeConsole) Print(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prints = append(c.prints, line)
}

func (c *fakeConsole) Prints() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prints...)
}

// namedSession registers a session under the given name, backed by a fresh
// fake conduit.
func namedSession(registry *runtime.Registry, name string, joinedAt time.Time) (*domain.Session, *fakeConduit) {
	conduit := &fakeConduit{}
	s := domain.NewSession(conduit, joinedAt)
	if err := registry.Claim(s, name); err != nil {
		panic(err)
	}
	return s, conduit
}
