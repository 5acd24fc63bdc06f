package proxy

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/parnaso/backend/internal/domain/notification/event"
)

type Session struct {
	C chan *event.EventRequest

	id         string
	joinedHubs []*Hub
	dropped    int64
}

func NewSession() *Session {
	return &Session{
		C:          make(chan *event.EventRequest, 16),
		id:         uuid.NewString(),
		joinedHubs: make([]*Hub, 0),
	}
}

func (s *Session) JoinHub(hub *Hub) {
	hub.Register(s)
	s.joinedHubs = append(s.joinedHubs, hub)
}

func (s *Session) LeaveAllHubs() {
	for _, hub := range s.joinedHubs {
		hub.Unregister(s)
	}
	close(s.C)
}

// Dropped reports how many events were discarded because this session read
// too slowly. Clients use it to decide whether to resynchronize.
func (s *Session) Dropped() int64 {
	return atomic.LoadInt64(&s.dropped)
}
