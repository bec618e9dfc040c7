package tui

import "taskgenie/internal/tasklist"

// notifyBuffer is how many notifications may queue before new ones are
// dropped.
const notifyBuffer = 16

// ChanNotifier delivers presenter notifications to the UI loop. Notify never
// blocks, so a presenter call running in a command goroutine cannot stall on
// a UI that has stopped reading.
type ChanNotifier struct {
	ch chan tasklist.Notification
}

// NewChanNotifier returns a notifier with a buffered channel.
func NewChanNotifier() *ChanNotifier {
	return &ChanNotifier{ch: make(chan tasklist.Notification, notifyBuffer)}
}

// Notify implements tasklist.Notifier.
func (n *ChanNotifier) Notify(note tasklist.Notification) {
	select {
	case n.ch <- note:
	default:
	}
}

// C returns the receive side.
func (n *ChanNotifier) C() <-chan tasklist.Notification {
	return n.ch
}
