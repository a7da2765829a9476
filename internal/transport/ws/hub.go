package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgProgressUpdate      MessageType = "progress_update"
	MsgAssessmentCompleted MessageType = "assessment_completed"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans out assessment events to respondent and host connections
type Hub struct {
	sessionConns map[string]map[*Connection]struct{} // sessionID -> connections
	hostConns    map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	stopped    chan struct{}
	stopOnce   sync.Once

	logger *zap.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string // empty for host connections
	IsHost    bool
	Send      chan []byte
}

// NewConnection creates a connection with a buffered send queue
func NewConnection(sessionID string, isHost bool) *Connection {
	return &Connection{
		SessionID: sessionID,
		IsHost:    isHost,
		Send:      make(chan []byte, 256),
	}
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	SessionID string
	ToHosts   bool
	Message   *Message
}

// NewHub creates a hub and starts its event loop
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		sessionConns: make(map[string]map[*Connection]struct{}),
		hostConns:    make(map[*Connection]struct{}),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		broadcast:    make(chan *BroadcastMessage, 256),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
		logger:       logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.stopped)
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsHost {
				h.hostConns[conn] = struct{}{}
				h.logger.Debug("host connected")
			} else {
				if h.sessionConns[conn.SessionID] == nil {
					h.sessionConns[conn.SessionID] = make(map[*Connection]struct{})
				}
				h.sessionConns[conn.SessionID][conn] = struct{}{}
				h.logger.Debug("respondent connected", zap.String("session", conn.SessionID))
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.IsHost {
				if _, ok := h.hostConns[conn]; ok {
					delete(h.hostConns, conn)
					close(conn.Send)
					h.logger.Debug("host disconnected")
				}
			} else if conns, ok := h.sessionConns[conn.SessionID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.sessionConns, conn.SessionID)
					}
					h.logger.Debug("respondent disconnected", zap.String("session", conn.SessionID))
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.logger.Warn("dropping unencodable message", zap.Error(err))
				continue
			}
			h.mu.RLock()
			targets := h.hostConns
			if !msg.ToHosts {
				targets = h.sessionConns[msg.SessionID]
			}
			for conn := range targets {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.hostConns {
		close(conn.Send)
	}
	for _, conns := range h.sessionConns {
		for conn := range conns {
			close(conn.Send)
		}
	}
	h.hostConns = make(map[*Connection]struct{})
	h.sessionConns = make(map[string]map[*Connection]struct{})
}

// Stop closes every connection and ends the event loop
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
	<-h.stopped
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// SessionConnections returns how many connections follow a session
func (h *Hub) SessionConnections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessionConns[sessionID])
}

// BroadcastToSession sends a message to every connection of one session (implements service.Broadcaster)
func (h *Hub) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	h.send(&BroadcastMessage{SessionID: sessionID}, msgType, payload)
}

// BroadcastToHosts sends a message to every host connection (implements service.Broadcaster)
func (h *Hub) BroadcastToHosts(msgType string, payload interface{}) {
	h.send(&BroadcastMessage{ToHosts: true}, msgType, payload)
}

func (h *Hub) send(msg *BroadcastMessage, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("failed to encode payload", zap.String("type", msgType), zap.Error(err))
		return
	}
	msg.Message = &Message{Type: MessageType(msgType), Payload: data}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}
