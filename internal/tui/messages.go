package tui

// callbackMsg carries a completed request's callback onto the Update loop.
type callbackMsg struct {
	fn func()
}

// callbacksClosedMsg reports that the transport stopped delivering.
type callbacksClosedMsg struct{}
