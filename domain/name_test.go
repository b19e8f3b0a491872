package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	errs "chat-relay/errors"
)

func TestValidateName(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name      string
		candidate string
		expected  error
	}{
		{
			name:      "Empty name is rejected",
			candidate: "",
			expected:  errs.ErrNameEmpty,
		},
		{
			name:      "Sixteen characters is one too many",
			candidate: strings.Repeat("a", 16),
			expected:  errs.ErrNameTooLong,
		},
		{
			name:      "Reserved operator name is rejected",
			candidate: "ADMIN",
			expected:  errs.ErrNameReserved,
		},
		{
			name:      "Fifteen characters is accepted",
			candidate: strings.Repeat("a", 15),
			expected:  nil,
		},
		{
			name:      "Lowercase admin is a normal name",
			candidate: "admin",
			expected:  nil,
		},
		{
			name:      "Multibyte runes count as one character",
			candidate: strings.Repeat("é", 15),
			expected:  nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateName(tc.candidate)
			if tc.expected == nil {
				req.NoError(err)
				return
			}
			req.ErrorIs(err, tc.expected)
		})
	}
}

func TestValidateName_WrapsInvalidName(t *testing.T) {
	req := require.New(t)

	// Every rejection is recognizable as an invalid name, whatever the reason
	for _, candidate := range []string{"", strings.Repeat("x", 20), "ADMIN"} {
		err := ValidateName(candidate)
		req.True(errors.Is(err, errs.ErrInvalidName), "candidate %q", candidate)
	}
}
