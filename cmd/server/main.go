package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-relay/contract"
	"chat-relay/infrastructure/tcp"
	"chat-relay/internal"
	"chat-relay/moderation"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting. Deferred cleanup runs before the process
// exits, which os.Exit in main would skip.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config validation failed: %w", err)
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Moderation (optional)
	var moderator *moderation.Moderator
	if config.ModerationEnabled {
		charReplacement, err := internal.CharacterRune(config.CharReplacement)
		if err != nil {
			return exitConfig, err
		}
		data, err := runtime.LoadCensoredWords()
		if err != nil {
			return exitRuntime, fmt.Errorf("failed to load censored words: %w", err)
		}
		mod, err := moderation.NewModerator(data.Words, charReplacement, logger)
		if err != nil {
			return exitRuntime, fmt.Errorf("failed to build the moderator: %w", err)
		}
		moderator = &mod
		logger.Info("Moderation enabled",
			"words", len(data.Words), "languages", data.Languages)
	}

	// 3. Context & Signals
	// NotifyContext captures OS signals; the inner cancel is handed to the
	// router so the operator /close command triggers the same shutdown path.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 4. Transport
	// A port that cannot be bound is fatal: the server cannot exist without it.
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	console := tcp.NewConsole(os.Stdin, os.Stdout)
	clock := contract.ClockFunc(time.Now)

	// 5. Core wiring
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	registry := runtime.NewRegistry()
	relay := runtime.NewRelay(registry, console, moderator, logger)
	router := runtime.NewRouter(relay, registry, console, clock, clock.Now(),
		serverAddress(listener), cancel, logger)
	server := runtime.NewServer(logger, sup, registry, relay, router, console, clock)
	server.Start(ctx)

	sup.Start(ctx, tcp.NewAcceptor(listener, server.Attach, logger))
	sup.Start(ctx, workers.NewHeartbeatWorker(logger, registry, config.HeartbeatInterval))

	// The console loop blocks on stdin, which cannot be interrupted by a
	// context. It runs outside the supervisor so shutdown never waits on it.
	go func() {
		_ = workers.NewConsoleWorker(console, router, logger).Run(ctx)
	}()

	console.Print(color.Green.Render(
		fmt.Sprintf("The message server at %s is now waiting for connections...", listener.Addr())))
	console.Print("You are the admin of this server. Type /help for a list of commands.")

	// 6. Wait for Stop
	// Blocks until a signal arrives or the operator types /close.
	<-ctx.Done()

	// 7. Final Cleanup (Graceful Shutdown)
	logger.Info("Shutting down gracefully...")
	server.Stop()
	sup.Stop()

	done := make(chan struct{})
	go func() {
		sup.Wait()
		close(done)
	}()
	select {
	case <-done:
		logger.Info("Program stopped cleanly")
	case <-time.After(config.ShutdownTimeout):
		logger.Warn("Shutdown timeout elapsed before all workers stopped")
	}

	console.Print("The server has shut down.")
	return exitOK, nil
}

// serverAddress resolves the advertised address lazily: the hostname's first
// resolved IP plus the bound port, falling back to the listener address.
func serverAddress(listener net.Listener) runtime.AddrProvider {
	return func() (string, error) {
		_, port, err := net.SplitHostPort(listener.Addr().String())
		if err != nil {
			return "", err
		}
		host, err := os.Hostname()
		if err != nil {
			return listener.Addr().String(), nil
		}
		addrs, err := net.LookupHost(host)
		if err != nil || len(addrs) == 0 {
			return listener.Addr().String(), nil
		}
		return net.JoinHostPort(addrs[0], port), nil
	}
}
