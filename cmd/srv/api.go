package main

import (
	"context"
	"net/http"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/middleware"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/pkg/router"
	"github.com/parnaso/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	if err := s.loadConfigs(cctx); err != nil {
		return err
	}

	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadAuthenticators()
	s.loadSnowFlake(cctx.Int64("node-id"))
	s.loadStorage()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadSearchCaller()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.router.Handler(cfg.ApiServer.AllowCORS),
	}

	xcontext.Logger(s.ctx).Infof("Server start in port: %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSetAccessToken())
	{
		router.POST(authRouter, "/register", s.authDomain.Register)
		router.POST(authRouter, "/login", s.authDomain.Login)
		router.POST(authRouter, "/refresh", s.authDomain.Refresh)
	}

	// These following APIs need authentication with an approved account.
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	accountStatus := middleware.NewAccountStatus(s.userRepo)
	authedRouter := s.router.Branch()
	authedRouter.Before(authVerifier.Middleware())
	authedRouter.Before(accountStatus.Middleware())
	{
		// Auth API
		router.POST(authedRouter, "/logout", s.authDomain.Logout)

		// User API
		router.GET(authedRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authedRouter, "/updateMe", s.userDomain.UpdateMe)

		// Setting API
		router.GET(authedRouter, "/getMySettings", s.settingDomain.GetMine)
		router.POST(authedRouter, "/updateMySettings", s.settingDomain.UpdateMine)

		// Project API
		router.POST(authedRouter, "/createProject", s.projectDomain.Create)
		router.GET(authedRouter, "/getMyProjects", s.projectDomain.GetMyList)
		router.POST(authedRouter, "/updateProject", s.projectDomain.Update)
		router.POST(authedRouter, "/deleteProject", s.projectDomain.Delete)

		// Writing session API
		router.POST(authedRouter, "/createSession", s.sessionDomain.Create)
		router.GET(authedRouter, "/getMySessions", s.sessionDomain.GetMyList)
		router.POST(authedRouter, "/clearMyData", s.sessionDomain.ClearMyData)

		// Friendship API
		router.POST(authedRouter, "/sendFriendRequest", s.friendshipDomain.SendRequest)
		router.POST(authedRouter, "/acceptFriendRequest", s.friendshipDomain.AcceptRequest)
		router.POST(authedRouter, "/declineFriendRequest", s.friendshipDomain.DeclineRequest)
		router.POST(authedRouter, "/removeFriend", s.friendshipDomain.RemoveFriend)
		router.GET(authedRouter, "/getMyFriends", s.friendshipDomain.GetMyFriends)
		router.GET(authedRouter, "/getFriendRequests", s.friendshipDomain.GetRequests)
		router.GET(authedRouter, "/getAvailableUsers", s.friendshipDomain.GetAvailableUsers)

		// Guild API
		router.POST(authedRouter, "/createGuild", s.guildDomain.Create)
		router.GET(authedRouter, "/getGuild", s.guildDomain.Get)
		router.GET(authedRouter, "/getGuilds", s.guildDomain.GetList)
		router.GET(authedRouter, "/getMyGuilds", s.guildDomain.GetMyGuilds)
		router.POST(authedRouter, "/joinGuild", s.guildDomain.Join)
		router.POST(authedRouter, "/leaveGuild", s.guildDomain.Leave)
		router.GET(authedRouter, "/getGuildMembers", s.guildDomain.GetMembers)
		router.POST(authedRouter, "/promoteGuildMember", s.guildDomain.PromoteMember)
		router.POST(authedRouter, "/resetGuildStats", s.guildDomain.ResetStats)
		router.POST(authedRouter, "/createGuildChallenge", s.guildDomain.CreateChallenge)
		router.GET(authedRouter, "/getGuildChallenges", s.guildDomain.GetChallenges)
		router.POST(authedRouter, "/deleteGuildChallenge", s.guildDomain.DeleteChallenge)
		router.POST(authedRouter, "/uploadGuildEmblem",
			func(ctx context.Context, _ *model.UploadGuildEmblemRequest) (*model.UploadGuildEmblemResponse, error) {
				return s.guildDomain.UploadEmblem(ctx)
			})

		// Competition API
		router.POST(authedRouter, "/createCompetition", s.competitionDomain.Create)
		router.GET(authedRouter, "/getCompetitions", s.competitionDomain.GetList)
		router.POST(authedRouter, "/joinCompetition", s.competitionDomain.Join)
		router.POST(authedRouter, "/deleteCompetition", s.competitionDomain.Delete)
		router.GET(authedRouter, "/getCompetitionProgress", s.competitionDomain.GetProgress)

		// Chat API
		router.POST(authedRouter, "/sendMessage", s.chatDomain.SendMessage)
		router.GET(authedRouter, "/getDirectMessages", s.chatDomain.GetDirectMessages)
		router.GET(authedRouter, "/getGuildMessages", s.chatDomain.GetGuildMessages)
		router.POST(authedRouter, "/markMessagesRead", s.chatDomain.MarkRead)
		router.GET(authedRouter, "/countUnreadMessages", s.chatDomain.CountUnread)

		// Forum API
		router.POST(authedRouter, "/createThread", s.forumDomain.CreateThread)
		router.GET(authedRouter, "/getThreads", s.forumDomain.GetThreads)
		router.GET(authedRouter, "/getThread", s.forumDomain.GetThread)
		router.POST(authedRouter, "/createReply", s.forumDomain.CreateReply)
		router.POST(authedRouter, "/deleteThread", s.forumDomain.DeleteThread)
		router.POST(authedRouter, "/deleteReply", s.forumDomain.DeleteReply)
		router.GET(authedRouter, "/searchThreads", s.forumDomain.SearchThreads)

		// Statistic API
		router.GET(authedRouter, "/getMyStats", s.statisticDomain.GetMyStats)
		router.GET(authedRouter, "/getGlobalStats", s.statisticDomain.GetGlobalStats)
		router.GET(authedRouter, "/getGuildLeaderboard", s.statisticDomain.GetGuildLeaderboard)

		// Image API
		router.POST(authedRouter, "/uploadImage",
			func(ctx context.Context, _ *model.UploadImageRequest) (*model.UploadImageResponse, error) {
				return s.fileDomain.UploadImage(ctx)
			})
	}

	// These following APIs are only for administrators.
	adminRouter := s.router.Branch()
	adminRouter.Before(authVerifier.Middleware())
	adminRouter.Before(middleware.RequireGlobalRole(s.userRepo, entity.GlobalAdminRoles...))
	{
		router.GET(adminRouter, "/getUsers", s.userDomain.GetUsers)
		router.POST(adminRouter, "/approveUser", s.userDomain.Approve)
		router.POST(adminRouter, "/rejectUser", s.userDomain.Reject)
		router.POST(adminRouter, "/setUserBlocked", s.userDomain.SetBlocked)
		router.POST(adminRouter, "/deleteUser", s.userDomain.Delete)
	}
}
