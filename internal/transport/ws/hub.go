package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Respondent message types
const (
	MsgProgressUpdate MessageType = "progress_update"
	MsgResultReady    MessageType = "result_ready"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection represents one open socket of a respondent
type Connection struct {
	RespondentID string
	Send         chan []byte
}

// NewConnection creates a connection with a buffered send queue
func NewConnection(respondentID string) *Connection {
	return &Connection{
		RespondentID: respondentID,
		Send:         make(chan []byte, 256),
	}
}

// BroadcastMessage is a message addressed to every socket of a respondent
type BroadcastMessage struct {
	RespondentID string
	Data         []byte
}

// Hub manages WebSocket connections per respondent. A respondent may have
// several sockets open, for example two browser tabs.
type Hub struct {
	conns map[string]map[*Connection]struct{}
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	logger *zap.Logger
}

// NewHub creates a hub and starts its run loop. Call Close to stop it.
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.stopped)
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			set := h.conns[conn.RespondentID]
			if set == nil {
				set = make(map[*Connection]struct{})
				h.conns[conn.RespondentID] = set
			}
			set[conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("respondent socket connected", zap.String("respondent", conn.RespondentID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.RespondentID]; ok {
				if _, ok := set[conn]; ok {
					delete(set, conn)
					close(conn.Send)
					if len(set) == 0 {
						delete(h.conns, conn.RespondentID)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug("respondent socket disconnected", zap.String("respondent", conn.RespondentID))

		case msg := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.conns[msg.RespondentID] {
				select {
				case conn.Send <- msg.Data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for id, set := range h.conns {
				for conn := range set {
					close(conn.Send)
				}
				delete(h.conns, id)
			}
			h.mu.Unlock()
			return
		}
	}
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

// Connections returns how many sockets respondentID has open
func (h *Hub) Connections(respondentID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[respondentID])
}

// BroadcastToRespondent sends a message to every socket of a respondent (implements service.Broadcaster)
func (h *Hub) BroadcastToRespondent(respondentID string, msgType string, payload interface{}) {
	data, err := encode(MessageType(msgType), payload)
	if err != nil {
		h.logger.Error("encode ws message", zap.String("type", msgType), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- &BroadcastMessage{RespondentID: respondentID, Data: data}:
	case <-h.done:
	}
}

// Close stops the run loop and closes every open send queue
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
	<-h.stopped
}

func encode(msgType MessageType, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: msgType, Payload: raw})
}
