package test

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"chat-relay/contract"
	"chat-relay/infrastructure/tcp"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
)

// silentConsole swallows operator output; the operator never types here.
type silentConsole struct {
	mu     sync.Mutex
	prints []string
}

func (c *silentConsole) ReadLine() (string, error) { return "", io.EOF }

func (c *silentConsole) Print(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prints = append(c.prints, line)
}

func (c *silentConsole) Contains(line string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.prints {
		if p == line {
			return true
		}
	}
	return false
}

type testClient struct {
	conn   net.Conn
	reader *bufio.Reader
	cfg    Config
}

func dialClient(t *testing.T, cfg Config, addr string) *testClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, cfg.DialTimeout)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &testClient{conn: conn, reader: bufio.NewReader(conn), cfg: cfg}
}

func (c *testClient) send(t *testing.T, line string) {
	t.Helper()
	_, err := c.conn.Write([]byte(line + "\n"))
	require.NoError(t, err)
}

func (c *testClient) expect(t *testing.T, want string) {
	t.Helper()
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout)))
	line, err := c.reader.ReadString('\n')
	require.NoError(t, err, "while waiting for %q", want)
	require.Equal(t, want, strings.TrimRight(line, "\r\n"))
}

func Test_Scenario(t *testing.T) {
	req := require.New(t)
	cfg, err := LoadConfig()
	req.NoError(err)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	console := &silentConsole{}
	clock := contract.ClockFunc(time.Now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Full stack over a loopback listener on a random port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	req.NoError(err)

	sup := workers.NewSupervisor(log, 200*time.Millisecond)
	registry := runtime.NewRegistry()
	relay := runtime.NewRelay(registry, console, nil, log)
	addr := func() (string, error) { return listener.Addr().String(), nil }
	router := runtime.NewRouter(relay, registry, console, clock, clock.Now(),
		addr, cancel, log)
	server := runtime.NewServer(log, sup, registry, relay, router, console, clock)
	server.Start(ctx)
	sup.Start(ctx, tcp.NewAcceptor(listener, server.Attach, log))

	t.Cleanup(func() {
		cancel()
		server.Stop()
		sup.Wait()
	})

	// 2. First client joins
	alice := dialClient(t, cfg, listener.Addr().String())
	alice.expect(t, "You have connected to the server.")
	alice.expect(t, "Please input a username:")
	alice.send(t, "alice")
	alice.expect(t, "alice has joined the server.")
	alice.expect(t, "Welcome to the server. You can type /help for a list of commands.")

	// 3. Whispering to an absent client bounces back
	alice.send(t, "/whisper bob hi")
	alice.expect(t, `There is nobody in the server called "bob".`)

	// 4. Second client joins and both sides hear it
	bob := dialClient(t, cfg, listener.Addr().String())
	bob.expect(t, "You have connected to the server.")
	bob.expect(t, "Please input a username:")
	bob.send(t, "bob")
	bob.expect(t, "bob has joined the server.")
	bob.expect(t, "Welcome to the server. You can type /help for a list of commands.")
	alice.expect(t, "bob has joined the server.")

	// 5. Broadcast and whisper now both deliver
	alice.send(t, "hello everyone")
	alice.expect(t, "[alice]: hello everyone")
	bob.expect(t, "[alice]: hello everyone")

	alice.send(t, "/whisper bob secret")
	bob.expect(t, "[alice] whispered to you: secret")
	alice.expect(t, "You whispered to bob: secret")

	// 6. Quitting announces the departure to the others only
	alice.send(t, "/quit")
	bob.expect(t, "alice has left the server.")

	req.Eventually(func() bool {
		return registry.Count() == 1
	}, cfg.ReadTimeout, 10*time.Millisecond)
	req.True(console.Contains("alice has left the server."))
}

func Test_Scenario_Kick(t *testing.T) {
	req := require.New(t)
	cfg, err := LoadConfig()
	req.NoError(err)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	console := &silentConsole{}
	clock := contract.ClockFunc(time.Now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	req.NoError(err)

	sup := workers.NewSupervisor(log, 200*time.Millisecond)
	registry := runtime.NewRegistry()
	relay := runtime.NewRelay(registry, console, nil, log)
	addr := func() (string, error) { return listener.Addr().String(), nil }
	router := runtime.NewRouter(relay, registry, console, clock, clock.Now(),
		addr, cancel, log)
	server := runtime.NewServer(log, sup, registry, relay, router, console, clock)
	server.Start(ctx)
	sup.Start(ctx, tcp.NewAcceptor(listener, server.Attach, log))

	t.Cleanup(func() {
		cancel()
		server.Stop()
		sup.Wait()
	})

	bob := dialClient(t, cfg, listener.Addr().String())
	bob.expect(t, "You have connected to the server.")
	bob.expect(t, "Please input a username:")
	bob.send(t, "bob")
	bob.expect(t, "bob has joined the server.")
	bob.expect(t, "Welcome to the server. You can type /help for a list of commands.")

	// The operator kicks bob: his channel closes and the registry drains
	router.HandleOperatorLine("/kick bob")

	req.NoError(bob.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout)))
	_, err = bob.reader.ReadString('\n')
	req.Error(err)

	req.Eventually(func() bool {
		return registry.Count() == 0
	}, cfg.ReadTimeout, 10*time.Millisecond)
	req.True(console.Contains("bob has left the server."))
}
