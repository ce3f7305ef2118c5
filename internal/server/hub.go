package server

import (
	"encoding/json"
	"sync"

	"github.com/codeclash-games/codeclash/internal/arena/match"
	"github.com/codeclash-games/codeclash/internal/logging"
	"github.com/google/uuid"
)

// wireOut is the envelope every outbound notification travels in.
type wireOut struct {
	Kind    string             `json:"kind"`
	Payload match.Notification `json:"payload"`
}

// wireIn is the inbound command envelope before kind dispatch.
type wireIn struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

func NewHub() *Hub {
	return &Hub{clients: map[string]*client{}}
}

// Hub owns every live websocket and implements the sessions' Emitter. Sessions
// only ever see opaque connection ids.
type Hub struct {
	mtx     sync.RWMutex
	clients map[string]*client
}

var _ match.Emitter = (*Hub)(nil)

func (h *Hub) register(c *client) string {
	id := uuid.New().String()
	h.mtx.Lock()
	h.clients[id] = c
	h.mtx.Unlock()
	return id
}

func (h *Hub) unregister(connID string) {
	h.mtx.Lock()
	c, ok := h.clients[connID]
	delete(h.clients, connID)
	h.mtx.Unlock()
	if ok {
		c.close()
	}
}

// Send marshals and queues one notification. A connection that cannot keep up
// loses frames rather than stalling the room actor.
func (h *Hub) Send(connID string, n match.Notification) {
	h.mtx.RLock()
	c, ok := h.clients[connID]
	h.mtx.RUnlock()
	if !ok {
		return
	}

	raw, err := json.Marshal(wireOut{Kind: n.Kind(), Payload: n})
	if err != nil {
		logging.DefaultLogger().Named("hub").Errorf("marshal %s: %v", n.Kind(), err)
		return
	}

	select {
	case c.send <- raw:
	default:
		logging.DefaultLogger().Named("hub").Warnf("dropping %s frame for slow connection", n.Kind())
	}
}
