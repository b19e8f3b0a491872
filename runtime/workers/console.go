package workers

import (
	"context"
	"log/slog"

	"chat-relay/contract"
)

// ConsoleWorker is the operator's unit of execution: it blocks on console
// reads and hands every line to the router. The operator needs no state
// machine; it is always implicitly named ADMIN.
type ConsoleWorker struct {
	console contract.Console
	router  contract.IRouter
	log     *slog.Logger
}

func NewConsoleWorker(console contract.Console, router contract.IRouter, log *slog.Logger) *ConsoleWorker {
	return &ConsoleWorker{console: console, router: router, log: log}
}

func (w *ConsoleWorker) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := w.console.ReadLine()
		if err != nil {
			w.log.Debug("Operator console closed", "error", err)
			return nil
		}
		w.router.HandleOperatorLine(line)
	}
}
