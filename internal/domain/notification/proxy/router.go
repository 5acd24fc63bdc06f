package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/parnaso/backend/internal/domain/notification/event"
	"github.com/parnaso/backend/pkg/pubsub"
	"github.com/parnaso/backend/pkg/xcontext"
)

func UserKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

func GuildKey(guildID string) string {
	return fmt.Sprintf("guild:%s", guildID)
}

const BroadcastKey = "broadcast"

// Router owns every hub of this proxy instance and feeds them from the
// broker subscription.
type Router struct {
	hubs map[string]*Hub

	mutex sync.RWMutex
}

func NewRouter(ctx context.Context) *Router {
	router := &Router{
		hubs:  make(map[string]*Hub),
		mutex: sync.RWMutex{},
	}

	go router.run(ctx)
	return router
}

func (r *Router) GetHub(key string) *Hub {
	r.mutex.RLock()
	hub, ok := r.hubs[key]
	r.mutex.RUnlock()
	if ok {
		return hub
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.hubs[key]; !ok {
		r.hubs[key] = NewHub(key)
	}

	return r.hubs[key]
}

// HandleEventPack is the broker subscribe handler. It decodes the event and
// routes it to the hubs named by its metadata.
func (r *Router) HandleEventPack(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var ev event.EventRequest
	if err := json.Unmarshal(pack.Msg, &ev); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal event: %v", err)
		return
	}

	keys := []string{}
	for _, userID := range ev.Metadata.ToUsers {
		keys = append(keys, UserKey(userID))
	}

	if ev.Metadata.ToGuild != "" {
		keys = append(keys, GuildKey(ev.Metadata.ToGuild))
	}

	if ev.Metadata.Broadcast {
		keys = append(keys, BroadcastKey)
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, key := range keys {
		if hub, ok := r.hubs[key]; ok {
			hub.c <- &ev
		}
	}
}

func (r *Router) run(ctx context.Context) {
	for {
		r.cleanup()
		time.Sleep(5000 * time.Millisecond)
	}
}

func (r *Router) cleanup() {
	emptyHubs := []string{}

	r.mutex.RLock()
	for _, h := range r.hubs {
		if h.IsEmpty() {
			emptyHubs = append(emptyHubs, h.key)
		}
	}
	r.mutex.RUnlock()

	if len(emptyHubs) == 0 {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, key := range emptyHubs {
		if hub, ok := r.hubs[key]; ok && hub.IsEmpty() {
			close(hub.c)
			delete(r.hubs, key)
		}
	}
}
