package connection

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client represents a connected spectator
type Client struct {
	ID         string
	RemoteAddr string
	Conn       *websocket.Conn
	Send       chan []byte
}

// Manager handles all spectator connections
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     logrus.FieldLogger
}

// NewManager creates a new connection manager
func NewManager(logger logrus.FieldLogger) *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Start processes connection events until ctx is done, then drops every client
func (m *Manager) Start(ctx context.Context) {
	defer close(m.done)

	for {
		select {
		case client := <-m.Register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			m.mutex.Unlock()
			m.logger.WithFields(logrus.Fields{"client": client.ID, "remote": client.RemoteAddr}).Info("spectator connected")
		case client := <-m.Unregister:
			m.remove(client)
		case <-ctx.Done():
			m.mutex.Lock()
			for id, client := range m.clients {
				delete(m.clients, id)
				close(client.Send)
			}
			m.mutex.Unlock()
			return
		}
	}
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client.ID]; ok {
		delete(m.clients, client.ID)
		close(client.Send)
		m.logger.WithFields(logrus.Fields{"client": client.ID, "remote": client.RemoteAddr}).Info("spectator disconnected")
	}
}

// Join registers a client; it reports false once the manager has stopped
func (m *Manager) Join(client *Client) bool {
	select {
	case m.Register <- client:
		return true
	case <-m.done:
		return false
	}
}

// Leave unregisters a client; it is a no-op once the manager has stopped
func (m *Manager) Leave(client *Client) {
	select {
	case m.Unregister <- client:
	case <-m.done:
	}
}

// Broadcast queues a message for every client and returns how many got it.
// A client whose queue is full misses the message rather than stalling the table.
func (m *Manager) Broadcast(message []byte) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	sent := 0
	for _, client := range m.clients {
		select {
		case client.Send <- message:
			sent++
		default:
			m.logger.WithField("client", client.ID).Warn("spectator too slow, message dropped")
		}
	}
	return sent
}

// Count returns the number of connected clients
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}
