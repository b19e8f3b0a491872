package domain

import (
	"strings"

	errs "chat-relay/errors"
)

// Command is the closed set of actions a line of input can translate to.
// The parser is pure text -> variant; scope rules (which commands a client
// may issue versus the operator) are enforced by the router, not here.
type Command interface {
	isCommand()
}

// Say is a plain chat line, broadcast to everyone.
type Say struct{ Body string }

// Whisper is a private message to a single recipient.
type Whisper struct {
	To   string
	Body string
}

// ClientTime asks how long the named client has been connected (operator).
type ClientTime struct{ Name string }

// Kick force-disconnects the named client (operator).
type Kick struct{ Name string }

type (
	Help          struct{}
	ServerTime    struct{}
	ConnectedTime struct{}
	ServerAddr    struct{}
	Clients       struct{}
	Who           struct{}
	Quit          struct{}
	Close         struct{}
)

func (Say) isCommand()           {}
func (Whisper) isCommand()       {}
func (ClientTime) isCommand()    {}
func (Kick) isCommand()          {}
func (Help) isCommand()          {}
func (ServerTime) isCommand()    {}
func (ConnectedTime) isCommand() {}
func (ServerAddr) isCommand()    {}
func (Clients) isCommand()       {}
func (Who) isCommand()           {}
func (Quit) isCommand()          {}
func (Close) isCommand()         {}

// Usage notices returned for malformed commands.
const (
	WhisperUsage    = "The format is incorrect. Please make sure your command is in the form /whisper (name) (message)"
	KickUsage       = "Please include the name of the client to kick after the kick command"
	ClientTimeUsage = "Please include the name of the client after the command"
)

// Parse turns one non-empty line of input into a Command. Lines not starting
// with a slash are chat. Splitting uses whitespace runs, so a whisper body is
// re-joined with single spaces regardless of the original spacing; slash
// characters inside the body are kept verbatim.
func Parse(line string) (Command, error) {
	if !strings.HasPrefix(line, "/") {
		return Say{Body: line}, nil
	}

	tokens := strings.Fields(line)
	switch tokens[0] {
	case "/whisper":
		if len(tokens) < 3 {
			return nil, &errs.MalformedCommandError{Usage: WhisperUsage}
		}
		return Whisper{To: tokens[1], Body: strings.Join(tokens[2:], " ")}, nil
	case "/kick":
		if len(tokens) < 2 {
			return nil, &errs.MalformedCommandError{Usage: KickUsage}
		}
		return Kick{Name: strings.Join(tokens[1:], " ")}, nil
	case "/clientTime":
		if len(tokens) < 2 {
			return nil, &errs.MalformedCommandError{Usage: ClientTimeUsage}
		}
		return ClientTime{Name: strings.Join(tokens[1:], " ")}, nil
	case "/help":
		return zeroArg(Help{}, tokens)
	case "/serverTime":
		return zeroArg(ServerTime{}, tokens)
	case "/connectedTime":
		return zeroArg(ConnectedTime{}, tokens)
	case "/IP":
		return zeroArg(ServerAddr{}, tokens)
	case "/clients":
		return zeroArg(Clients{}, tokens)
	case "/who":
		return zeroArg(Who{}, tokens)
	case "/quit":
		return zeroArg(Quit{}, tokens)
	case "/close":
		return zeroArg(Close{}, tokens)
	}
	return nil, errs.ErrUnknownCommand
}

// zeroArg rejects trailing tokens after a command that takes no arguments,
// mirroring the exact-match dispatch of the original protocol.
func zeroArg(cmd Command, tokens []string) (Command, error) {
	if len(tokens) > 1 {
		return nil, errs.ErrUnknownCommand
	}
	return cmd, nil
}
