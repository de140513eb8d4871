package tui

// commandResultMsg carries the outcome of a command run through the session.
type commandResultMsg struct {
	err     error
	message string
	input   string
}
