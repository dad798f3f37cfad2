package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lazharichir/drawpoker/domain/events"
	"github.com/lazharichir/drawpoker/server/connection"
	svevents "github.com/lazharichir/drawpoker/server/events"
	"github.com/sirupsen/logrus"
)

const (
	keepAlivePeriod = 10 * time.Second
	writeWait       = 5 * time.Second
	shutdownWait    = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // spectators are read-only
	},
}

// Server streams the public events of the table being played to spectators
type Server struct {
	mu         sync.RWMutex
	tableID    string
	store      events.EventStore
	connMgr    *connection.Manager
	dispatcher *svevents.Dispatcher
	logger     *logrus.Logger
}

// NewServer creates a spectator server for the table whose history is in store.
// store may be nil until the first Follow.
func NewServer(tableID string, store events.EventStore, logger *logrus.Logger) *Server {
	connMgr := connection.NewManager(logger.WithField("component", "spectators"))

	return &Server{
		tableID:    tableID,
		store:      store,
		connMgr:    connMgr,
		dispatcher: svevents.NewDispatcher(connMgr, logger),
		logger:     logger,
	}
}

// Follow switches the history endpoint to another table, such as the next game
func (s *Server) Follow(tableID string, store events.EventStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tableID = tableID
	s.store = store
}

func (s *Server) following() (string, events.EventStore) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tableID, s.store
}

// HandleEvent forwards a table event to every spectator
func (s *Server) HandleEvent(event events.Event) {
	s.dispatcher.HandleEvent(event)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/events", corsMiddleware(s.handleGetEvents))
	return logMiddleware(s.logger, mux)
}

// Start serves spectators on addr until ctx is done
func (s *Server) Start(ctx context.Context, addr string) error {
	go s.connMgr.Start(ctx)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Warn("spectator server shutdown")
		}
	}()

	s.logger.WithField("addr", addr).Info("starting spectator server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("failed to upgrade to websocket")
		return
	}

	client := &connection.Client{
		ID:         uuid.NewString(),
		RemoteAddr: r.RemoteAddr,
		Conn:       conn,
		Send:       make(chan []byte, 256),
	}

	if !s.connMgr.Join(client) {
		conn.Close()
		return
	}

	go s.readPump(client)
	go s.writePump(client)
}

// readPump only watches for the spectator going away; incoming messages are ignored
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Leave(client)
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WithError(err).WithField("client", client.ID).Debug("spectator read error")
			}
			return
		}
	}
}

// writePump sends queued messages and keeps the connection alive
func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(keepAlivePeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.WithError(err).WithField("client", client.ID).Debug("failed to write message")
				return
			}
		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleGetEvents returns the public history of the table, or of one hand with ?hand=<id>
func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tableID, store := s.following()
	if store == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
		return
	}

	var (
		stored []events.Event
		err    error
	)
	if handID := r.URL.Query().Get("hand"); handID != "" {
		stored, err = store.LoadHandEvents(tableID, handID)
	} else {
		stored, err = store.LoadEvents(tableID)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	envelopes, err := svevents.Public(stored)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(envelopes)
}
