package proxy

import (
	"context"
	"encoding/json"
	"time"

	"github.com/parnaso/backend/internal/domain/notification/event"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/xcontext"
)

type ProxyServer struct {
	router    *Router
	guildRepo repository.GuildRepository
}

func NewProxyServer(ctx context.Context, guildRepo repository.GuildRepository) *ProxyServer {
	return &ProxyServer{
		router:    NewRouter(ctx),
		guildRepo: guildRepo,
	}
}

func (server *ProxyServer) Router() *Router {
	return server.router
}

// ServeProxy pumps events to one websocket client until it disconnects. The
// session joins the caller's own hub, every guild the caller belongs to, and
// the broadcast hub.
func (server *ProxyServer) ServeProxy(ctx context.Context) error {
	session := NewSession()
	defer session.LeaveAllHubs()

	userID := xcontext.RequestUserID(ctx)
	session.JoinHub(server.router.GetHub(UserKey(userID)))
	session.JoinHub(server.router.GetHub(BroadcastKey))

	joined, err := server.guildRepo.GetJoinedGuilds(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get joined guilds: %v", err)
		return errorx.Unknown
	}

	for _, member := range joined {
		session.JoinHub(server.router.GetHub(GuildKey(member.GuildID)))
	}

	notifCfg := xcontext.Configs(ctx).Notification
	session.C <- event.New(&event.ReadyEvent{
		RetryBaseDelay: notifCfg.RetryBaseDelay.Milliseconds(),
		RetryMaxDelay:  notifCfg.RetryMaxDelay.Milliseconds(),
	}, event.Metadata{})

	wsClient := xcontext.WSClient(ctx)
	pingPeriod := notifCfg.PingPeriod
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	var seq int64
	for {
		select {
		case ev, ok := <-session.C:
			if !ok {
				return errorx.New(errorx.Unavailable, "Session is closed")
			}

			evResp := event.Format(ev, seq)
			seq++

			b, err := json.Marshal(evResp)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot marshal resp: %v", err)
				continue
			}

			if err := wsClient.Write(b, false); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot send resp to client: %v", err)
				return errorx.Unknown
			}

		case <-pingTicker.C:
			b, err := json.Marshal(event.New(&event.PingEvent{Dropped: session.Dropped()}, event.Metadata{}))
			if err != nil {
				continue
			}

			if err := wsClient.Write(b, false); err != nil {
				return errorx.Unknown
			}

		case _, ok := <-wsClient.R:
			if !ok {
				return nil
			}
		}
	}
}
