package domain

import (
	"unicode/utf8"

	errs "chat-relay/errors"
)

const (
	// ReservedName denotes the server operator. It is never a valid display
	// name and never matches a registered session.
	ReservedName = "ADMIN"

	MaxNameLength = 15
)

// ValidateName checks a candidate display name against the naming rules:
// non-empty, at most MaxNameLength characters, never the reserved operator
// name. Uniqueness is the registry's concern, checked under its lock.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errs.ErrNameEmpty
	case utf8.RuneCountInString(name) > MaxNameLength:
		return errs.ErrNameTooLong
	case name == ReservedName:
		return errs.ErrNameReserved
	}
	return nil
}
