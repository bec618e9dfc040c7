package testutil

import (
	"sync"

	"taskgenie/internal/tasklist"
)

// Notifications records every notification it receives.
type Notifications struct {
	mu   sync.Mutex
	list []tasklist.Notification
}

// Notify implements tasklist.Notifier.
func (n *Notifications) Notify(note tasklist.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.list = append(n.list, note)
}

// All returns the recorded notifications in arrival order.
func (n *Notifications) All() []tasklist.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]tasklist.Notification, len(n.list))
	copy(out, n.list)
	return out
}
