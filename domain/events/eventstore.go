package events

import (
	"errors"
	"fmt"
	"sync"
)

var ErrMissingTableID = errors.New("event has no table id")

// EventStore is the interface for storing and retrieving events.
type EventStore interface {
	Append(event Event) error
	LoadEvents(tableID string) ([]Event, error)
	LoadHandEvents(tableID, handID string) ([]Event, error)
}

// InMemoryEventStore is an in-memory implementation of the EventStore interface.
// It is safe to read from other goroutines while a table is appending.
type InMemoryEventStore struct {
	events map[string][]Event
	mutex  sync.RWMutex
}

// NewInMemoryEventStore creates a new in-memory event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]Event),
	}
}

// Append adds a new event to the store.
func (s *InMemoryEventStore) Append(event Event) error {
	tableID := ExtractTableID(event)
	if tableID == "" {
		return fmt.Errorf("cannot store %s: %w", event.Name(), ErrMissingTableID)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.events[tableID] = append(s.events[tableID], event)
	return nil
}

// LoadEvents retrieves all events for the given tableID.
func (s *InMemoryEventStore) LoadEvents(tableID string) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events := s.events[tableID]

	// Make a copy to avoid potential race conditions
	result := make([]Event, len(events))
	copy(result, events)
	return result, nil
}

// LoadHandEvents retrieves the events of a single hand, in order.
func (s *InMemoryEventStore) LoadHandEvents(tableID, handID string) ([]Event, error) {
	all, err := s.LoadEvents(tableID)
	if err != nil {
		return nil, err
	}

	result := make([]Event, 0, len(all))
	for _, e := range all {
		if ExtractHandID(e) == handID {
			result = append(result, e)
		}
	}
	return result, nil
}
