package events

import (
	"encoding/json"
	"fmt"

	"github.com/lazharichir/drawpoker/domain/events"
	"github.com/lazharichir/drawpoker/server/connection"
	"github.com/sirupsen/logrus"
)

// EventEnvelope wraps an event with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope marshals an event into its envelope
func NewEnvelope(event events.Event) (EventEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("failed to marshal %s payload: %w", event.Name(), err)
	}
	return EventEnvelope{Name: event.Name(), Payload: payload}, nil
}

// Public keeps the events every spectator may see, wrapped in envelopes
func Public(stored []events.Event) ([]EventEnvelope, error) {
	out := make([]EventEnvelope, 0, len(stored))
	for _, event := range stored {
		if events.IsPrivate(event) {
			continue
		}
		envelope, err := NewEnvelope(event)
		if err != nil {
			return nil, err
		}
		out = append(out, envelope)
	}
	return out, nil
}

// Dispatcher routes table events to spectators. Private events, such as a
// player's cards, never leave the table.
type Dispatcher struct {
	connMgr *connection.Manager
	logger  logrus.FieldLogger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, logger logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
		logger:  logger,
	}
}

// HandleEvent processes domain events and sends them to clients
func (d *Dispatcher) HandleEvent(event events.Event) {
	if events.IsPrivate(event) {
		return
	}

	envelope, err := NewEnvelope(event)
	if err != nil {
		d.logger.WithError(err).Error("failed to build event envelope")
		return
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		d.logger.WithError(err).Error("failed to marshal event envelope")
		return
	}

	sent := d.connMgr.Broadcast(data)
	d.logger.WithFields(logrus.Fields{"event": event.Name(), "spectators": sent}).Debug("dispatched event")
}
