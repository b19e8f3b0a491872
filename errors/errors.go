package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrEmptyWords  = fmt.Errorf("no words have been found")

	// ErrInvalidName is the common ancestor of every name rejection;
	// match it with errors.Is when the exact reason does not matter.
	ErrInvalidName  = fmt.Errorf("invalid name")
	ErrNameEmpty    = fmt.Errorf("%w: empty", ErrInvalidName)
	ErrNameTooLong  = fmt.Errorf("%w: longer than 15 characters", ErrInvalidName)
	ErrNameReserved = fmt.Errorf("%w: reserved", ErrInvalidName)

	ErrDuplicateName  = fmt.Errorf("name already taken")
	ErrUnknownCommand = fmt.Errorf("unknown command")
)

// MalformedCommandError reports a command whose arguments do not match its
// shape. Usage carries the exact notice to send back to the issuer.
type MalformedCommandError struct {
	Usage string
}

func (e *MalformedCommandError) Error() string {
	return fmt.Sprintf("malformed command: %s", e.Usage)
}
