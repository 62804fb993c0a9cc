// internal/event/manager.go
package event

import (
	"github.com/bethropolis/quill/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed, which stops further handlers.
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching.
// Handlers run synchronously on the dispatching goroutine.
type Manager struct {
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.Debugf("Event Manager: Handler subscribed to %v", eventType)
}

// Dispatch sends an event to the registered handlers in subscription order.
func (m *Manager) Dispatch(eventType Type, data any) {
	handlers := m.handlers[eventType]
	if len(handlers) == 0 {
		return
	}
	e := Event{Type: eventType, Data: data}

	// Copy so a handler subscribing during dispatch does not disturb iteration.
	for _, handler := range append([]Handler(nil), handlers...) {
		if handler(e) {
			break
		}
	}
}
