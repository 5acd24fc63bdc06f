package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/parnaso/backend/internal/common"
	"github.com/parnaso/backend/internal/domain/notification"
	"github.com/parnaso/backend/internal/domain/notification/event"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/enum"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/storage"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/parnaso/backend/pkg/xredis"
	"gorm.io/gorm"
)

type GuildDomain interface {
	Create(context.Context, *model.CreateGuildRequest) (*model.CreateGuildResponse, error)
	Get(context.Context, *model.GetGuildRequest) (*model.GetGuildResponse, error)
	GetList(context.Context, *model.GetGuildsRequest) (*model.GetGuildsResponse, error)
	GetMyGuilds(context.Context, *model.GetMyGuildsRequest) (*model.GetMyGuildsResponse, error)
	Join(context.Context, *model.JoinGuildRequest) (*model.JoinGuildResponse, error)
	Leave(context.Context, *model.LeaveGuildRequest) (*model.LeaveGuildResponse, error)
	GetMembers(context.Context, *model.GetGuildMembersRequest) (*model.GetGuildMembersResponse, error)
	PromoteMember(context.Context, *model.PromoteGuildMemberRequest) (*model.PromoteGuildMemberResponse, error)
	ResetStats(context.Context, *model.ResetGuildStatsRequest) (*model.ResetGuildStatsResponse, error)
	CreateChallenge(context.Context, *model.CreateGuildChallengeRequest) (*model.CreateGuildChallengeResponse, error)
	GetChallenges(context.Context, *model.GetGuildChallengesRequest) (*model.GetGuildChallengesResponse, error)
	DeleteChallenge(context.Context, *model.DeleteGuildChallengeRequest) (*model.DeleteGuildChallengeResponse, error)
	UploadEmblem(context.Context) (*model.UploadGuildEmblemResponse, error)
}

type guildDomain struct {
	guildRepo         repository.GuildRepository
	userRepo          repository.UserRepository
	fileRepo          repository.FileRepository
	guildRoleVerifier *common.GuildRoleVerifier
	eventCaller       notification.EventCaller
	redisClient       xredis.Client
	storage           storage.Storage
}

func NewGuildDomain(
	guildRepo repository.GuildRepository,
	userRepo repository.UserRepository,
	fileRepo repository.FileRepository,
	eventCaller notification.EventCaller,
	redisClient xredis.Client,
	fileStorage storage.Storage,
) *guildDomain {
	return &guildDomain{
		guildRepo:         guildRepo,
		userRepo:          userRepo,
		fileRepo:          fileRepo,
		guildRoleVerifier: common.NewGuildRoleVerifier(guildRepo, userRepo),
		eventCaller:       eventCaller,
		redisClient:       redisClient,
		storage:           fileStorage,
	}
}

func (d *guildDomain) Create(
	ctx context.Context, req *model.CreateGuildRequest,
) (*model.CreateGuildResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty guild name")
	}

	_, err := d.guildRepo.GetByName(ctx, req.Name)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "The name is used by another guild")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get guild by name: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	guild := &entity.Guild{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.guildRepo.Create(ctx, guild); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create guild: %v", err)
		return nil, errorx.Unknown
	}

	// The founder joins as admin in the same transaction.
	err = d.guildRepo.CreateMember(ctx, &entity.GuildMember{
		GuildID:   guild.ID,
		UserID:    userID,
		Role:      entity.GuildRoleAdmin,
		CreatedAt: time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create founder membership: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CreateGuildResponse{Guild: model.ConvertGuild(guild, 1)}, nil
}

func (d *guildDomain) Get(
	ctx context.Context, req *model.GetGuildRequest,
) (*model.GetGuildResponse, error) {
	guild, err := d.getGuild(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	numberOfMember, err := d.guildRepo.CountMembers(ctx, guild.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count members: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetGuildResponse{Guild: model.ConvertGuild(guild, numberOfMember)}, nil
}

func (d *guildDomain) GetList(
	ctx context.Context, req *model.GetGuildsRequest,
) (*model.GetGuildsResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	guilds, err := d.guildRepo.GetList(ctx, repository.GuildFilter{
		Q:      req.Q,
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guilds: %v", err)
		return nil, errorx.Unknown
	}

	clientGuilds := []model.Guild{}
	for i := range guilds {
		numberOfMember, err := d.guildRepo.CountMembers(ctx, guilds[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count members: %v", err)
			return nil, errorx.Unknown
		}

		clientGuilds = append(clientGuilds, model.ConvertGuild(&guilds[i], numberOfMember))
	}

	return &model.GetGuildsResponse{Guilds: clientGuilds}, nil
}

func (d *guildDomain) GetMyGuilds(
	ctx context.Context, req *model.GetMyGuildsRequest,
) (*model.GetMyGuildsResponse, error) {
	memberships, err := d.guildRepo.GetJoinedGuilds(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get joined guilds: %v", err)
		return nil, errorx.Unknown
	}

	clientGuilds := []model.Guild{}
	for _, membership := range memberships {
		guild, err := d.guildRepo.GetByID(ctx, membership.GuildID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get guild: %v", err)
			return nil, errorx.Unknown
		}

		numberOfMember, err := d.guildRepo.CountMembers(ctx, guild.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count members: %v", err)
			return nil, errorx.Unknown
		}

		clientGuilds = append(clientGuilds, model.ConvertGuild(guild, numberOfMember))
	}

	return &model.GetMyGuildsResponse{Guilds: clientGuilds}, nil
}

func (d *guildDomain) Join(
	ctx context.Context, req *model.JoinGuildRequest,
) (*model.JoinGuildResponse, error) {
	guild, err := d.getGuild(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	_, err = d.guildRepo.GetMember(ctx, guild.ID, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already joined this guild")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return nil, errorx.Unknown
	}

	err = d.guildRepo.CreateMember(ctx, &entity.GuildMember{
		GuildID:   guild.ID,
		UserID:    userID,
		Role:      entity.GuildRoleMember,
		CreatedAt: time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create membership: %v", err)
		return nil, errorx.Unknown
	}

	// The cached leaderboard no longer matches the member list.
	key := common.RedisKeyGuildLeaderboard(guild.ID)
	if err := d.redisClient.Del(ctx, key); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate guild leaderboard: %v", err)
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	ev := event.New(
		&event.GuildMemberJoinedEvent{GuildID: guild.ID, User: model.ConvertUser(user, false)},
		event.Metadata{ToGuild: guild.ID},
	)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit member joined event: %v", err)
	}

	return &model.JoinGuildResponse{}, nil
}

func (d *guildDomain) Leave(
	ctx context.Context, req *model.LeaveGuildRequest,
) (*model.LeaveGuildResponse, error) {
	guild, err := d.getGuild(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	member, err := d.guildRepo.GetMember(ctx, guild.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "You are not a member of this guild")
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return nil, errorx.Unknown
	}

	if member.Role == entity.GuildRoleAdmin {
		if err := d.ensureAnotherAdmin(ctx, guild.ID, userID); err != nil {
			return nil, err
		}
	}

	if err := d.guildRepo.DeleteMember(ctx, guild.ID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete membership: %v", err)
		return nil, errorx.Unknown
	}

	key := common.RedisKeyGuildLeaderboard(guild.ID)
	if err := d.redisClient.Del(ctx, key); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate guild leaderboard: %v", err)
	}

	ev := event.New(
		&event.GuildMemberLeftEvent{GuildID: guild.ID, UserID: userID},
		event.Metadata{ToGuild: guild.ID},
	)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit member left event: %v", err)
	}

	return &model.LeaveGuildResponse{}, nil
}

func (d *guildDomain) GetMembers(
	ctx context.Context, req *model.GetGuildMembersRequest,
) (*model.GetGuildMembersResponse, error) {
	guild, err := d.getGuild(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	since := time.Time{}
	if guild.StatsResetDate.Valid {
		since = guild.StatsResetDate.Time
	}

	totals, err := d.guildRepo.MemberTotals(ctx, guild.ID, since)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get member totals: %v", err)
		return nil, errorx.Unknown
	}

	members := []model.GuildMember{}
	for _, t := range totals {
		members = append(members, model.GuildMember{
			UserID:     t.UserID,
			Name:       t.Name,
			Role:       string(t.Role),
			TotalWords: t.TotalWords,
		})
	}

	return &model.GetGuildMembersResponse{Members: members}, nil
}

func (d *guildDomain) PromoteMember(
	ctx context.Context, req *model.PromoteGuildMemberRequest,
) (*model.PromoteGuildMemberResponse, error) {
	guild, err := d.getGuild(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	if err := d.guildRoleVerifier.Verify(ctx, guild.ID, entity.GuildRoleAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when promoting member: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	err = d.guildRepo.UpdateMemberRole(ctx, guild.ID, req.UserID, entity.GuildRoleAdmin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found member in this guild")
		}

		xcontext.Logger(ctx).Errorf("Cannot update member role: %v", err)
		return nil, errorx.Unknown
	}

	return &model.PromoteGuildMemberResponse{}, nil
}

func (d *guildDomain) ResetStats(
	ctx context.Context, req *model.ResetGuildStatsRequest,
) (*model.ResetGuildStatsResponse, error) {
	guild, err := d.getGuild(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	if err := d.guildRoleVerifier.Verify(ctx, guild.ID, entity.GuildRoleAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when resetting stats: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	// The reset never touches writing sessions. Totals are recomputed from
	// this date onward.
	resetDate := time.Now()
	if err := d.guildRepo.UpdateStatsResetDate(ctx, guild.ID, resetDate); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update stats reset date: %v", err)
		return nil, errorx.Unknown
	}

	key := common.RedisKeyGuildLeaderboard(guild.ID)
	if err := d.redisClient.Del(ctx, key); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate guild leaderboard: %v", err)
	}

	ev := event.New(
		&event.GuildStatsResetEvent{GuildID: guild.ID, ResetDate: resetDate.UnixMilli()},
		event.Metadata{ToGuild: guild.ID},
	)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit stats reset event: %v", err)
	}

	return &model.ResetGuildStatsResponse{}, nil
}

func (d *guildDomain) CreateChallenge(
	ctx context.Context, req *model.CreateGuildChallengeRequest,
) (*model.CreateGuildChallengeResponse, error) {
	guild, err := d.getGuild(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	if err := d.guildRoleVerifier.Verify(ctx, guild.ID, entity.GuildRoleAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when creating challenge: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	challengeType, err := enum.ToEnum[entity.GuildChallengeType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid challenge type %s", req.Type)
	}

	if req.Target <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Target must be positive")
	}

	if req.DurationDays <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Duration must be positive")
	}

	startDate := time.Now()
	challenge := &entity.GuildChallenge{
		Base:        entity.Base{ID: uuid.NewString()},
		GuildID:     guild.ID,
		CreatedBy:   xcontext.RequestUserID(ctx),
		Title:       req.Title,
		Description: req.Description,
		Type:        challengeType,
		Target:      req.Target,
		StartDate:   startDate,
		EndDate:     startDate.AddDate(0, 0, req.DurationDays),
		Data:        req.Data,
	}

	if err := d.guildRepo.CreateChallenge(ctx, challenge); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create challenge: %v", err)
		return nil, errorx.Unknown
	}

	clientChallenge := model.ConvertGuildChallenge(challenge)
	ev := event.New(
		&event.GuildChallengeCreatedEvent{Challenge: clientChallenge},
		event.Metadata{ToGuild: guild.ID},
	)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit challenge created event: %v", err)
	}

	return &model.CreateGuildChallengeResponse{Challenge: clientChallenge}, nil
}

func (d *guildDomain) GetChallenges(
	ctx context.Context, req *model.GetGuildChallengesRequest,
) (*model.GetGuildChallengesResponse, error) {
	guild, err := d.getGuild(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	challenges, err := d.guildRepo.GetChallenges(ctx, guild.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get challenges: %v", err)
		return nil, errorx.Unknown
	}

	clientChallenges := []model.GuildChallenge{}
	for i := range challenges {
		clientChallenges = append(clientChallenges, model.ConvertGuildChallenge(&challenges[i]))
	}

	return &model.GetGuildChallengesResponse{Challenges: clientChallenges}, nil
}

func (d *guildDomain) DeleteChallenge(
	ctx context.Context, req *model.DeleteGuildChallengeRequest,
) (*model.DeleteGuildChallengeResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty challenge id")
	}

	challenge, err := d.guildRepo.GetChallengeByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.guildRoleVerifier.Verify(ctx, challenge.GuildID, entity.GuildRoleAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when deleting challenge: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if err := d.guildRepo.DeleteChallengeByID(ctx, challenge.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete challenge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteGuildChallengeResponse{}, nil
}

func (d *guildDomain) UploadEmblem(ctx context.Context) (*model.UploadGuildEmblemResponse, error) {
	guildID := xcontext.HTTPRequest(ctx).PostFormValue("guild_id")
	guild, err := d.getGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if err := d.guildRoleVerifier.Verify(ctx, guild.ID, entity.GuildRoleAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when uploading emblem: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	uresps, err := common.ProcessImage(ctx, d.storage, "image")
	if err != nil {
		return nil, err
	}

	files := []*entity.File{}
	for _, uresp := range uresps {
		files = append(files, &entity.File{
			Base:      entity.Base{ID: uuid.NewString()},
			Mime:      uresp.Mime,
			Name:      uresp.FileName,
			CreatedBy: xcontext.RequestUserID(ctx),
			Url:       uresp.Url,
		})
	}

	if err := d.fileRepo.BulkInsert(ctx, files); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save uploaded files: %v", err)
		return nil, errorx.Unknown
	}

	// The largest rendered size becomes the guild emblem.
	emblemURL := uresps[0].Url
	err = d.guildRepo.UpdateByID(ctx, guild.ID, &entity.Guild{EmblemURL: emblemURL})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update guild emblem: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadGuildEmblemResponse{URL: emblemURL}, nil
}

func (d *guildDomain) getGuild(ctx context.Context, id string) (*entity.Guild, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty guild id")
	}

	guild, err := d.guildRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found guild")
		}

		xcontext.Logger(ctx).Errorf("Cannot get guild: %v", err)
		return nil, errorx.Unknown
	}

	return guild, nil
}

// ensureAnotherAdmin rejects the last admin leaving a guild that still has
// other members.
func (d *guildDomain) ensureAnotherAdmin(ctx context.Context, guildID, leavingID string) error {
	members, err := d.guildRepo.GetMembers(ctx, guildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return errorx.Unknown
	}

	if len(members) == 1 {
		return nil
	}

	for _, m := range members {
		if m.UserID != leavingID && m.Role == entity.GuildRoleAdmin {
			return nil
		}
	}

	return errorx.New(errorx.Unavailable, "Promote another admin before leaving")
}
