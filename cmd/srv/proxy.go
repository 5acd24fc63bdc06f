package main

import (
	"context"
	"net/http"

	"github.com/parnaso/backend/internal/domain/notification/proxy"
	"github.com/parnaso/backend/internal/middleware"
	"github.com/parnaso/backend/pkg/kafka"
	"github.com/parnaso/backend/pkg/router"
	"github.com/parnaso/backend/pkg/ws"
	"github.com/parnaso/backend/pkg/xcontext"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v2"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *srv) startProxy(cctx *cli.Context) error {
	if err := s.loadConfigs(cctx); err != nil {
		return err
	}

	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadAuthenticators()
	s.loadRepos()

	proxyServer := proxy.NewProxyServer(s.ctx, s.guildRepo)

	cfg := xcontext.Configs(s.ctx)
	s.subscriber = kafka.NewSubscriber(
		"proxy",
		[]string{cfg.Kafka.Addr},
		[]string{cfg.Kafka.Topic},
		proxyServer.Router().HandleEventPack,
	)
	go s.subscriber.Subscribe(s.ctx)

	defaultRouter := router.New(s.ctx)
	defaultRouter.AddCloser(middleware.Logger())
	defaultRouter.Before(middleware.NewAuthVerifier().WithAccessToken().Middleware())
	defaultRouter.Handle("/ws", func(ctx context.Context) {
		conn, err := upgrader.Upgrade(xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx), nil)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot upgrade the connection: %v", err)
			return
		}

		notifCfg := xcontext.Configs(ctx).Notification
		client := ws.NewClient(conn, notifCfg.WriteWait, notifCfg.PongWait)
		defer client.Close()

		ctx = xcontext.WithWSClient(ctx, client)
		if err := proxyServer.ServeProxy(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("Websocket session ended with error: %v", err)
		}
	})

	xcontext.Logger(s.ctx).Infof("Server start in port: %s", cfg.ProxyServer.Port)
	s.server = &http.Server{
		Addr:    cfg.ProxyServer.Address(),
		Handler: defaultRouter.Handler(cfg.ProxyServer.AllowCORS),
	}
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}
