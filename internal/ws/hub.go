package ws

import (
	"encoding/json"
	"sync"

	"sealed_rps/internal/game"
	"sealed_rps/internal/logger"
)

// Message - envelope for every frame sent to a subscriber
type Message struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Hub fans game events out to websocket subscribers, keyed by game id. It
// implements game.Emitter; Emit is called with the registry lock held so the
// fanout never blocks — a subscriber with a full send buffer misses the
// frame and is expected to re-read game state over the REST surface.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint64]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint64]map[*Client]bool),
	}
}

func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.clients[c.GameID]
	if !ok {
		subs = make(map[*Client]bool)
		h.clients[c.GameID] = subs
	}
	subs[c] = true

	logger.Debug("ws subscribed", "game_id", c.GameID, "player", c.PlayerID, "subscribers", len(subs))
}

func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.clients[c.GameID]
	if !ok {
		return
	}
	delete(subs, c)
	if len(subs) == 0 {
		delete(h.clients, c.GameID)
	}
}

// Emit implements game.Emitter.
func (h *Hub) Emit(ev game.Event) {
	payload := map[string]any{"game_id": ev.GameID}
	for k, v := range ev.Payload {
		payload[k] = v
	}

	data, err := json.Marshal(Message{Type: ev.Type, Payload: payload})
	if err != nil {
		logger.Error("ws marshal failed", "type", ev.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[ev.GameID] {
		select {
		case c.Send <- data:
		default:
			logger.Warn("ws subscriber lagging, dropped frame", "game_id", ev.GameID, "player", c.PlayerID)
		}
	}
}
