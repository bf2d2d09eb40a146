package study

// sessionInitMsg is sent when the session queue has been built.
type sessionInitMsg struct {
	OK bool
}

// hintReadyMsg is sent when an async mnemonic request completes.
type hintReadyMsg struct {
	ItemID string
	Text   string
	Err    error
}

// sessionEndMsg is sent to trigger the summary transition.
type sessionEndMsg struct{}
