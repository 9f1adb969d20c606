package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/companycore/management-system/internal/api/metrics"
)

// Hub is the connection registry: a process-local map from user id to the
// one live connection for that user. It is rebuilt from nothing on restart
// and assumes a single instance; there is no cross-process fan-out.
//
// The HTTP runtime serves requests on many goroutines, so every access
// goes through the mutex.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{clients: make(map[string]*Client), log: log}
}

// Register binds the user to the connection. A later registration for the
// same user supersedes the earlier one (last-writer-wins, no multi-device
// fan-out); the superseded connection is closed.
func (h *Hub) Register(userID string, c *Client) {
	if userID == "" || c == nil {
		return
	}

	h.mu.Lock()
	prev := h.clients[userID]
	h.clients[userID] = c
	size := len(h.clients)
	h.mu.Unlock()

	if prev != nil && prev != c {
		prev.close()
	}
	metrics.RealtimeConnections.Set(float64(size))
	h.log.Debug().Str("user_id", userID).Msg("connection registered")
}

// Lookup returns the user's live connection. A miss is the offline signal,
// not an error.
func (h *Hub) Lookup(userID string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[userID]
	return c, ok
}

// Unregister removes every binding held by the connection. The scan is
// O(n) over connected users, which is fine at this scale.
func (h *Hub) Unregister(c *Client) {
	if c == nil {
		return
	}

	h.mu.Lock()
	for userID, cur := range h.clients {
		if cur == c {
			delete(h.clients, userID)
			h.log.Debug().Str("user_id", userID).Msg("connection unregistered")
		}
	}
	size := len(h.clients)
	h.mu.Unlock()

	metrics.RealtimeConnections.Set(float64(size))
}

// Push sends one named event to the user's connection if there is one.
// It reports whether the frame was handed to the connection; a false
// return means offline or a slow peer, and the caller treats both as
// non-fatal.
func (h *Hub) Push(userID, event string, payload any) bool {
	client, ok := h.Lookup(userID)
	if !ok {
		return false
	}

	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("marshal push payload")
		return false
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("marshal push envelope")
		return false
	}

	if !client.enqueue(frame) {
		metrics.RealtimeDroppedTotal.WithLabelValues("slow_peer").Inc()
		h.log.Warn().Str("user_id", userID).Str("event", event).Msg("push dropped, peer not draining")
		return false
	}
	metrics.RealtimePushesTotal.WithLabelValues(event).Inc()
	return true
}
