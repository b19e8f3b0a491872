package runtime

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"chat-relay/contract"
	"chat-relay/domain"
	errs "chat-relay/errors"
)

const clientHelp = "/help - get list of commands you can use \n" +
	"/whisper (name) (message) - send a message to one person only \n" +
	"/serverTime - get how long the server has been running for \n" +
	"/connectedTime - get how long you have been connected for \n" +
	"/IP - get the servers IP address \n" +
	"/clients - get the number of clients in the server \n" +
	"/quit - leave the server"

const operatorHelp = "/help - get list of commands you can use \n" +
	"/whisper (name) (message) - send a message to one person only \n" +
	"/kick (name) - kicks a client out of the server \n" +
	"/serverTime - get how long the server has been running for \n" +
	"/clientTime (name) - get how long a client has been connected for \n" +
	"/IP - get the servers IP address \n" +
	"/clients - get the number of clients in the server \n" +
	"/who - list the clients in the server \n" +
	"/close - shutdown the server"

const unknownCommandNotice = "That is not a valid command, type /help for a list of commands."

// AddrProvider resolves the server's advertised address for the /IP command.
type AddrProvider func() (string, error)

// Router classifies lines of input and dispatches them: plain lines become
// broadcasts, slash lines become commands routed to the relay or to session
// lifecycle operations. It also drives the naming handshake. The operator
// shares the same command surface with a few extra commands and no state
// machine: it is always implicitly named ADMIN and never enters the registry.
type Router struct {
	relay     contract.IRelay
	registry  contract.IRegistry
	console   contract.Console
	clock     contract.Clock
	startedAt time.Time
	addr      AddrProvider
	shutdown  func()
	log       *slog.Logger
}

func NewRouter(relay contract.IRelay, registry contract.IRegistry,
	console contract.Console, clock contract.Clock, startedAt time.Time,
	addr AddrProvider, shutdown func(), log *slog.Logger) *Router {
	return &Router{
		relay:     relay,
		registry:  registry,
		console:   console,
		clock:     clock,
		startedAt: startedAt,
		addr:      addr,
		shutdown:  shutdown,
		log:       log,
	}
}

// SubmitName processes one naming attempt for a CONNECTED session. Invalid or
// taken names are reported back over the session's channel and leave the
// session unnamed; a valid claim broadcasts the join notice and welcomes the
// client. Returns whether the session is now named.
func (rt *Router) SubmitName(s *domain.Session, candidate string) bool {
	if err := domain.ValidateName(candidate); err != nil {
		rt.writeTo(s, nameRejectionNotice(err))
		return false
	}
	if err := rt.registry.Claim(s, candidate); err != nil {
		rt.writeTo(s, "Sorry that name is already taken.")
		return false
	}
	rt.relay.Broadcast(candidate + " has joined the server.")
	rt.writeTo(s, "Welcome to the server. You can type /help for a list of commands.")
	return true
}

// HandleClientLine dispatches one line from a NAMED session. The returned
// flag is true when the session asked to quit. Empty lines are ignored;
// operator-only commands fall through to the unknown-command notice.
func (rt *Router) HandleClientLine(s *domain.Session, line string) bool {
	if line == "" {
		return false
	}

	cmd, err := domain.Parse(line)
	if err != nil {
		rt.writeTo(s, noticeFor(err))
		return false
	}

	switch c := cmd.(type) {
	case domain.Say:
		rt.relay.BroadcastMessage(domain.Message{From: s.Sender(), Body: c.Body})
	case domain.Whisper:
		rt.relay.Whisper(domain.Message{From: s.Sender(), To: c.To, Body: c.Body})
	case domain.Help:
		rt.writeTo(s, clientHelp)
	case domain.ServerTime:
		rt.writeTo(s, rt.uptimeNotice())
	case domain.ConnectedTime:
		rt.writeTo(s, fmt.Sprintf("You have been connected for %d seconds.",
			s.ConnectedFor(rt.clock.Now())))
	case domain.ServerAddr:
		rt.writeTo(s, rt.serverAddressNotice())
	case domain.Clients:
		rt.writeTo(s, rt.relay.Roster())
	case domain.Quit:
		return true
	default:
		rt.writeTo(s, unknownCommandNotice)
	}
	return false
}

// HandleOperatorLine dispatches one line typed by the operator. Plain lines
// broadcast as ADMIN; client-only commands fall through to the
// unknown-command notice.
func (rt *Router) HandleOperatorLine(line string) {
	if line == "" {
		return
	}
	if !strings.HasPrefix(line, "/") {
		rt.relay.BroadcastMessage(domain.Message{From: domain.Admin(), Body: line})
		return
	}

	cmd, err := domain.Parse(line)
	if err != nil {
		rt.console.Print(noticeFor(err))
		return
	}

	switch c := cmd.(type) {
	case domain.Whisper:
		rt.relay.Whisper(domain.Message{From: domain.Admin(), To: c.To, Body: c.Body})
	case domain.Kick:
		if !rt.relay.Kick(c.Name) {
			rt.console.Print(noSuchUserNotice(c.Name))
		}
	case domain.ClientTime:
		rt.console.Print(rt.clientTimeNotice(c.Name))
	case domain.Help:
		rt.console.Print(operatorHelp)
	case domain.ServerTime:
		rt.console.Print(rt.uptimeNotice())
	case domain.ServerAddr:
		rt.console.Print(rt.serverAddressNotice())
	case domain.Clients:
		rt.console.Print(rt.relay.Roster())
	case domain.Who:
		rt.console.Print(rt.whoTable())
	case domain.Close:
		rt.shutdown()
	default:
		rt.console.Print(unknownCommandNotice)
	}
}

func (rt *Router) uptimeNotice() string {
	seconds := int64(rt.clock.Now().Sub(rt.startedAt) / time.Second)
	return fmt.Sprintf("The server has been up for %d seconds.", seconds)
}

func (rt *Router) clientTimeNotice(name string) string {
	target := rt.registry.Find(name)
	if target == nil {
		return noSuchUserNotice(name)
	}
	return fmt.Sprintf("The client has been connected for %d seconds.",
		target.ConnectedFor(rt.clock.Now()))
}

func (rt *Router) serverAddressNotice() string {
	addr, err := rt.addr()
	if err != nil {
		rt.log.Error("Failed to resolve the server address", "error", err)
		return "The server address could not be retrieved."
	}
	return "The server is at: " + addr
}

// whoTable renders the active sessions as a table for the operator console.
func (rt *Router) whoTable() string {
	now := rt.clock.Now()

	var sessions []*domain.Session
	rt.registry.ForEach(func(s *domain.Session) {
		sessions = append(sessions, s)
	})

	rows := lo.Map(sessions, func(s *domain.Session, _ int) []string {
		name := s.Name
		if name == "" {
			name = "(no name yet)"
		}
		return []string{name, s.Conduit.RemoteAddr(), strconv.FormatInt(s.ConnectedFor(now), 10)}
	})

	builder := &strings.Builder{}
	table := tablewriter.NewWriter(builder)
	table.SetHeader([]string{"Name", "Address", "Connected (s)"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
	return strings.TrimRight(builder.String(), "\n")
}

func (rt *Router) writeTo(s *domain.Session, text string) {
	if err := s.Conduit.WriteLine(text); err != nil {
		rt.log.Debug("Dropped notice for one session", "session", s.ID, "error", err)
	}
}

func nameRejectionNotice(err error) string {
	switch {
	case errors.Is(err, errs.ErrNameEmpty):
		return "You cannot have no name. Please input a valid name and press enter."
	case errors.Is(err, errs.ErrNameTooLong):
		return "Please keep your name less than 15 characters."
	case errors.Is(err, errs.ErrNameReserved):
		return "Trying to be smart, eh? No, you cannot use that name."
	}
	return "Please input a valid name and press enter."
}

func noticeFor(err error) string {
	var malformed *errs.MalformedCommandError
	if errors.As(err, &malformed) {
		return malformed.Usage
	}
	return unknownCommandNotice
}
