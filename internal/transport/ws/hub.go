package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"mindhaven/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgCrisisAlert MessageType = "crisis_alert"
	MsgConnected   MessageType = "connected"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans crisis alerts out to connected clinician dashboards. Alerts are
// fire-and-forget: a dashboard with a full buffer misses the push and picks
// the attempt up from the result history instead.
type Hub struct {
	conns map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	alerts     chan *model.CrisisAlert

	log *zap.Logger
}

// Connection represents one clinician dashboard connection
type Connection struct {
	ClinicianID string
	Send        chan []byte
	Hub         *Hub
}

// NewHub creates a hub and starts its dispatch loop
func NewHub(log *zap.Logger) *Hub {
	h := &Hub{
		conns:      make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		alerts:     make(chan *model.CrisisAlert, 256),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = true
			h.mu.Unlock()
			h.log.Info("clinician connected", zap.String("clinicianId", conn.ClinicianID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.conns[conn] {
				delete(h.conns, conn)
				close(conn.Send)
				h.log.Info("clinician disconnected", zap.String("clinicianId", conn.ClinicianID))
			}
			h.mu.Unlock()

		case alert := <-h.alerts:
			payload, err := json.Marshal(alert)
			if err != nil {
				h.log.Error("marshal crisis alert", zap.Error(err))
				continue
			}
			data, _ := json.Marshal(&Message{Type: MsgCrisisAlert, Payload: payload})

			h.mu.RLock()
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					// Drop if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastCrisisAlert implements service.Broadcaster
func (h *Hub) BroadcastCrisisAlert(alert *model.CrisisAlert) {
	select {
	case h.alerts <- alert:
	default:
		h.log.Error("crisis alert channel full, alert dropped",
			zap.String("attemptId", alert.AttemptID))
	}
}
