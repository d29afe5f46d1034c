package vfs

import "sync"

// Event describes a completed mutation, delivered to subscribers so UI
// layers can re-read the affected part of the tree.
type Event struct {
	Op       string `json:"op"`
	EntityID string `json:"entity_id"`
}

// EventHandler receives change events. Handlers run synchronously on the
// mutating goroutine and must not block.
type EventHandler func(Event)

type notifier struct {
	mu       sync.RWMutex
	handlers []EventHandler
}

func (n *notifier) subscribe(handler EventHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, handler)
}

func (n *notifier) publish(event Event) {
	n.mu.RLock()
	handlers := make([]EventHandler, len(n.handlers))
	copy(handlers, n.handlers)
	n.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
