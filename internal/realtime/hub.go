package realtime

import (
	"encoding/json"
	"sync"
)

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Event is the payload broadcast to a line's clients on a task mutation.
type Event struct {
	Type    string `json:"type"`
	TaskID  string `json:"taskId"`
	LineID  string `json:"lineId"`
	Version int    `json:"version"`
}

// Hub maintains active connections grouped by work line and fans events out
// to everyone watching that line.
type Hub struct {
	mu            sync.RWMutex
	lineToClients map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			lineToClients: make(map[string]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a work line ID.
func (h *Hub) Register(lineID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.lineToClients[lineID]; !ok {
		h.lineToClients[lineID] = make(map[Client]struct{})
	}
	h.lineToClients[lineID][client] = struct{}{}
}

// Unregister removes a client; if the line has no more clients, cleans up.
func (h *Hub) Unregister(lineID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.lineToClients[lineID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.lineToClients, lineID)
		}
	}
}

// Broadcast sends a message to all clients watching a line.
func (h *Hub) Broadcast(lineID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.lineToClients[lineID] {
		if ok := c.Send(message); !ok {
			// client write failed; the handler cleans it up on its side
		}
	}
}

// BroadcastEvent marshals and broadcasts a task event to the event's line.
func (h *Hub) BroadcastEvent(evt Event) {
	if evt.Version == 0 {
		evt.Version = 1
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(evt.LineID, data)
}
