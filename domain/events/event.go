package events

// Event is the interface that all domain events must implement.
type Event interface {
	Name() string // Returns a unique name for the event type
}

// EventHandler receives events as they happen. Handlers must return quickly.
type EventHandler func(event Event)

// PrivateEvent is an event meant for a single player's eyes, such as their cards.
type PrivateEvent interface {
	Event
	Recipient() string
}

// IsPrivate reports whether the event must only be shown to its recipient
func IsPrivate(event Event) bool {
	_, ok := event.(PrivateEvent)
	return ok
}
