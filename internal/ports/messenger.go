package ports

// Messenger prints one-line, human-readable command output.
// It is user-facing and separate from diagnostic logging.
type Messenger interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}
