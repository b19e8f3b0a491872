package domain

// Message is an ephemeral relay payload. It only exists for the duration of
// a broadcast or whisper and is never persisted.
type Message struct {
	From Sender
	To   string // recipient name for whispers, empty for broadcasts
	Body string
}
