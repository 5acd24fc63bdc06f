package main

import (
	"context"
	"net/http"

	"github.com/parnaso/backend/config"
	"github.com/parnaso/backend/internal/domain"
	"github.com/parnaso/backend/internal/domain/notification"
	"github.com/parnaso/backend/internal/domain/search"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/migration"
	"github.com/parnaso/backend/pkg/authenticator"
	"github.com/parnaso/backend/pkg/kafka"
	"github.com/parnaso/backend/pkg/logger"
	"github.com/parnaso/backend/pkg/pubsub"
	"github.com/parnaso/backend/pkg/router"
	"github.com/parnaso/backend/pkg/storage"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/parnaso/backend/pkg/xredis"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	settingRepo      repository.UserSettingRepository
	projectRepo      repository.ProjectRepository
	sessionRepo      repository.WritingSessionRepository
	guildRepo        repository.GuildRepository
	competitionRepo  repository.CompetitionRepository
	friendshipRepo   repository.FriendshipRepository
	messageRepo      repository.MessageRepository
	forumRepo        repository.ForumRepository
	fileRepo         repository.FileRepository

	authDomain        domain.AuthDomain
	userDomain        domain.UserDomain
	settingDomain     domain.SettingDomain
	projectDomain     domain.ProjectDomain
	sessionDomain     domain.SessionDomain
	guildDomain       domain.GuildDomain
	competitionDomain domain.CompetitionDomain
	friendshipDomain  domain.FriendshipDomain
	chatDomain        domain.ChatDomain
	forumDomain       domain.ForumDomain
	statisticDomain   domain.StatisticDomain
	fileDomain        domain.FileDomain

	publisher    pubsub.Publisher
	subscriber   pubsub.Subscriber
	eventCaller  notification.EventCaller
	redisClient  xredis.Client
	searchCaller search.Caller
	storage      storage.Storage

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfigs(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, *cfg)
	return nil
}

func (s *srv) loadLogger() {
	level := logger.LevelInfo
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.LevelDebug
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	databaseCfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(databaseCfg.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadAuthenticators() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	s.ctx = xcontext.WithSessionStore(s.ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
}

func (s *srv) loadSnowFlake(nodeID int64) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
}

func (s *srv) loadRedisClient() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	s.publisher = kafka.NewPublisher("api", []string{cfg.Kafka.Addr})
	s.eventCaller = notification.NewEventCaller(s.publisher)
}

func (s *srv) loadSearchCaller() {
	s.searchCaller = search.NewBleveIndex(s.ctx)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
	s.settingRepo = repository.NewUserSettingRepository()
	s.projectRepo = repository.NewProjectRepository()
	s.sessionRepo = repository.NewWritingSessionRepository()
	s.guildRepo = repository.NewGuildRepository()
	s.competitionRepo = repository.NewCompetitionRepository()
	s.friendshipRepo = repository.NewFriendshipRepository()
	s.messageRepo = repository.NewMessageRepository()
	s.forumRepo = repository.NewForumRepository()
	s.fileRepo = repository.NewFileRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshTokenRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.refreshTokenRepo, s.sessionRepo,
		s.projectRepo, s.settingRepo, s.friendshipRepo, s.messageRepo)
	s.settingDomain = domain.NewSettingDomain(s.settingRepo)
	s.projectDomain = domain.NewProjectDomain(s.projectRepo)
	s.sessionDomain = domain.NewSessionDomain(s.sessionRepo, s.projectRepo, s.settingRepo,
		s.guildRepo, s.redisClient)
	s.guildDomain = domain.NewGuildDomain(s.guildRepo, s.userRepo, s.fileRepo,
		s.eventCaller, s.redisClient, s.storage)
	s.competitionDomain = domain.NewCompetitionDomain(s.competitionRepo, s.sessionRepo,
		s.userRepo, s.eventCaller)
	s.friendshipDomain = domain.NewFriendshipDomain(s.friendshipRepo, s.userRepo, s.eventCaller)
	s.chatDomain = domain.NewChatDomain(s.messageRepo, s.friendshipRepo, s.guildRepo, s.eventCaller)
	s.forumDomain = domain.NewForumDomain(s.forumRepo, s.userRepo, s.guildRepo,
		s.searchCaller, s.eventCaller)
	s.statisticDomain = domain.NewStatisticDomain(s.sessionRepo, s.userRepo, s.guildRepo, s.redisClient)
	s.fileDomain = domain.NewFileDomain(s.fileRepo, s.storage)
}
