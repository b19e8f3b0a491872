package domain

// Sender is the structured identity of a message originator: either the
// operator or a named session. Keeping the identity structured (instead of
// re-parsing a formatted label) removes any ambiguity between the operator
// and a client whose name happens to render the same way.
type Sender struct {
	name  string
	admin bool
}

// Admin returns the operator identity.
func Admin() Sender {
	return Sender{admin: true}
}

// Named returns the identity of the session holding the given display name.
func Named(name string) Sender {
	return Sender{name: name}
}

func (s Sender) IsAdmin() bool {
	return s.admin
}

// Name returns the display name; empty for the operator.
func (s Sender) Name() string {
	return s.name
}

// Label renders the identity the way it appears in relayed lines:
// the reserved operator name, or the display name wrapped in brackets.
func (s Sender) Label() string {
	if s.admin {
		return ReservedName
	}
	return "[" + s.name + "]"
}
