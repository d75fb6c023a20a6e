package http

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"sync"

	"quizroom-service/internal/domain"
)

// Hub tracks which connections belong to which room and implements
// app.Broadcaster. Host connections form a separate broadcast group per room,
// so host-only events never reach players; room-wide events reach both groups.
type Hub struct {
	mu      sync.RWMutex
	conns   map[string]chan domain.Event
	rooms   map[string]map[string]struct{}
	hosts   map[string]map[string]struct{}
	bufSize int
}

func NewHub() *Hub {
	return &Hub{
		conns:   make(map[string]chan domain.Event),
		rooms:   make(map[string]map[string]struct{}),
		hosts:   make(map[string]map[string]struct{}),
		bufSize: 16,
	}
}

// Add registers a connection and returns its outbound event channel. The
// caller owns the write pump draining it.
func (h *Hub) Add(connectionID string) <-chan domain.Event {
	ch := make(chan domain.Event, h.bufSize)
	h.mu.Lock()
	h.conns[connectionID] = ch
	h.mu.Unlock()
	return ch
}

// JoinRoom attaches a registered connection to a room's player or host group.
func (h *Hub) JoinRoom(connectionID, pin string, asHost bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[connectionID]; !ok {
		return
	}
	if h.rooms[pin] == nil {
		h.rooms[pin] = make(map[string]struct{})
	}
	h.rooms[pin][connectionID] = struct{}{}
	if asHost {
		if h.hosts[pin] == nil {
			h.hosts[pin] = make(map[string]struct{})
		}
		h.hosts[pin][connectionID] = struct{}{}
	}
}

// Remove drops a connection from every group and closes its channel.
func (h *Hub) Remove(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.conns[connectionID]
	if !ok {
		return
	}
	delete(h.conns, connectionID)
	close(ch)
	for pin, members := range h.rooms {
		delete(members, connectionID)
		if len(members) == 0 {
			delete(h.rooms, pin)
		}
	}
	for pin, members := range h.hosts {
		delete(members, connectionID)
		if len(members) == 0 {
			delete(h.hosts, pin)
		}
	}
}

func (h *Hub) ToRoom(pin string, event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id := range h.rooms[pin] {
		h.sendLocked(id, event)
	}
}

func (h *Hub) ToHost(pin string, event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id := range h.hosts[pin] {
		h.sendLocked(id, event)
	}
}

func (h *Hub) ToConnection(connectionID string, event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.sendLocked(connectionID, event)
}

// sendLocked never blocks the broadcast path; a client that cannot keep up
// loses the oldest queued event instead.
func (h *Hub) sendLocked(connectionID string, event domain.Event) {
	ch, ok := h.conns[connectionID]
	if !ok {
		return
	}
	select {
	case ch <- event:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
			log.Printf("dropping %s event for slow connection %s", event.Name, connectionID)
		}
	}
}

// newConnectionID mints a transport-level identifier for one socket.
func newConnectionID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
