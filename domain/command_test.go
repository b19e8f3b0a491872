package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	errs "chat-relay/errors"
)

func TestParse_Chat(t *testing.T) {
	req := require.New(t)

	// Given a line without a leading slash
	cmd, err := Parse("hello everyone")
	req.NoError(err)

	// Then it is a plain chat line, kept verbatim
	req.Equal(Say{Body: "hello everyone"}, cmd)
}

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected Command
	}{
		{
			name:     "Whisper with single-word body",
			line:     "/whisper bob hi",
			expected: Whisper{To: "bob", Body: "hi"},
		},
		{
			name:     "Whisper body rejoined with single spaces",
			line:     "/whisper bob   hello    there",
			expected: Whisper{To: "bob", Body: "hello there"},
		},
		{
			name:     "Kick keeps spaces in the name",
			line:     "/kick mean client",
			expected: Kick{Name: "mean client"},
		},
		{
			name:     "ClientTime keeps spaces in the name",
			line:     "/clientTime some one",
			expected: ClientTime{Name: "some one"},
		},
		{name: "Help", line: "/help", expected: Help{}},
		{name: "ServerTime", line: "/serverTime", expected: ServerTime{}},
		{name: "ConnectedTime", line: "/connectedTime", expected: ConnectedTime{}},
		{name: "ServerAddr", line: "/IP", expected: ServerAddr{}},
		{name: "Clients", line: "/clients", expected: Clients{}},
		{name: "Who", line: "/who", expected: Who{}},
		{name: "Quit", line: "/quit", expected: Quit{}},
		{name: "Close", line: "/close", expected: Close{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			cmd, err := Parse(tc.line)
			req.NoError(err)
			req.Equal(tc.expected, cmd)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		usage string
	}{
		{
			name:  "Whisper without a body",
			line:  "/whisper bob",
			usage: WhisperUsage,
		},
		{
			name:  "Whisper alone",
			line:  "/whisper",
			usage: WhisperUsage,
		},
		{
			name:  "Kick without a name",
			line:  "/kick",
			usage: KickUsage,
		},
		{
			name:  "ClientTime without a name",
			line:  "/clientTime",
			usage: ClientTimeUsage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			_, err := Parse(tc.line)

			var malformed *errs.MalformedCommandError
			req.True(errors.As(err, &malformed))
			req.Equal(tc.usage, malformed.Usage)
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	req := require.New(t)

	tests := []string{
		"/nope",
		"/HELP",
		"/",
		"/quit now",
		"/serverTime please",
	}
	for _, line := range tests {
		_, err := Parse(line)
		req.ErrorIs(err, errs.ErrUnknownCommand, "line %q", line)
	}
}

func TestSender_Label(t *testing.T) {
	req := require.New(t)

	req.Equal("ADMIN", Admin().Label())
	req.Equal("[alice]", Named("alice").Label())
	req.True(Admin().IsAdmin())
	req.False(Named("alice").IsAdmin())
}
