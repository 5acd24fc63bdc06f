package proxy

import (
	"sync"
	"sync/atomic"

	"github.com/parnaso/backend/internal/domain/notification/event"
)

// Hub fans an event stream out to every session registered on one routing
// key. Events are forwarded in FIFO order per hub.
type Hub struct {
	key      string
	sessions map[string]*Session
	c        chan *event.EventRequest

	mutex sync.RWMutex
}

func NewHub(key string) *Hub {
	h := &Hub{
		key:      key,
		sessions: make(map[string]*Session),
		mutex:    sync.RWMutex{},
		c:        make(chan *event.EventRequest, 8),
	}

	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		ev, ok := <-h.c
		if !ok {
			break
		}

		h.mutex.RLock()
		for _, s := range h.sessions {
			// A session that cannot keep up loses this event instead of
			// stalling every other session on the hub.
			select {
			case s.C <- ev:
			default:
				atomic.AddInt64(&s.dropped, 1)
			}
		}
		h.mutex.RUnlock()
	}
}

func (h *Hub) Register(session *Session) {
	h.mutex.RLock()
	_, ok := h.sessions[session.id]
	h.mutex.RUnlock()
	if ok {
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	// Double check.
	if _, ok := h.sessions[session.id]; !ok {
		h.sessions[session.id] = session
	}
}

func (h *Hub) Unregister(session *Session) {
	h.mutex.RLock()
	_, ok := h.sessions[session.id]
	h.mutex.RUnlock()
	if !ok {
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.sessions, session.id)
}

func (h *Hub) IsEmpty() bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.sessions) == 0
}
