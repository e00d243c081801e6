package network

import (
	"slices"
	"sync"
	"sync/atomic"
)

// hub tracks connected inspectors and fans messages out to them
type hub struct {
	mu      sync.RWMutex
	clients map[ClientID]*client
	nextID  atomic.Uint32
	dropped *atomic.Int64
}

func newHub(dropped *atomic.Int64) *hub {
	return &hub{clients: make(map[ClientID]*client), dropped: dropped}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
}

func (h *hub) remove(id ClientID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; !ok {
		return false
	}
	delete(h.clients, id)
	return true
}

func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast queues data on every client and returns the clients whose queue was full
func (h *hub) broadcast(data []byte) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var stalled []*client
	for _, c := range h.clients {
		if !c.send(data) {
			h.dropped.Add(1)
			stalled = append(stalled, c)
		}
	}
	return stalled
}

// takeAll empties the hub and returns the clients in id order
func (h *hub) takeAll() []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		out = append(out, c)
	}
	clear(h.clients)
	slices.SortFunc(out, func(a, b *client) int { return int(a.id) - int(b.id) })
	return out
}
