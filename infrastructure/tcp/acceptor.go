package tcp

import (
	"context"
	"log/slog"
	"net"

	"chat-relay/contract"
)

// Attach receives ownership of every established channel.
type Attach func(contract.Channel)

// Acceptor runs the accept loop over an already-bound listener. A transient
// accept failure skips that connection and keeps the loop alive; binding
// failures are the caller's problem and happen before the Acceptor exists.
type Acceptor struct {
	listener net.Listener
	attach   Attach
	log      *slog.Logger
}

func NewAcceptor(listener net.Listener, attach Attach, log *slog.Logger) *Acceptor {
	return &Acceptor{listener: listener, attach: attach, log: log}
}

func (a *Acceptor) Run(ctx context.Context) error {
	// Closing the listener is what unblocks Accept when the context ends.
	go func() {
		<-ctx.Done()
		_ = a.listener.Close()
	}()

	for {
		conn, err := a.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			a.log.Warn("Failed to accept a connection", "error", err)
			continue
		}
		a.attach(NewChannel(conn))
	}
}
