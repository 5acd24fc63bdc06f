package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/parnaso/backend/internal/common"
	"github.com/parnaso/backend/internal/domain/notification"
	"github.com/parnaso/backend/internal/domain/notification/event"
	"github.com/parnaso/backend/internal/domain/search"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ForumDomain interface {
	CreateThread(context.Context, *model.CreateThreadRequest) (*model.CreateThreadResponse, error)
	GetThreads(context.Context, *model.GetThreadsRequest) (*model.GetThreadsResponse, error)
	GetThread(context.Context, *model.GetThreadRequest) (*model.GetThreadResponse, error)
	CreateReply(context.Context, *model.CreateReplyRequest) (*model.CreateReplyResponse, error)
	DeleteThread(context.Context, *model.DeleteThreadRequest) (*model.DeleteThreadResponse, error)
	DeleteReply(context.Context, *model.DeleteReplyRequest) (*model.DeleteReplyResponse, error)
	SearchThreads(context.Context, *model.SearchThreadsRequest) (*model.SearchThreadsResponse, error)
}

type forumDomain struct {
	forumRepo          repository.ForumRepository
	userRepo           repository.UserRepository
	guildRepo          repository.GuildRepository
	globalRoleVerifier *common.GlobalRoleVerifier
	searchCaller       search.Caller
	eventCaller        notification.EventCaller
}

func NewForumDomain(
	forumRepo repository.ForumRepository,
	userRepo repository.UserRepository,
	guildRepo repository.GuildRepository,
	searchCaller search.Caller,
	eventCaller notification.EventCaller,
) *forumDomain {
	return &forumDomain{
		forumRepo:          forumRepo,
		userRepo:           userRepo,
		guildRepo:          guildRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		searchCaller:       searchCaller,
		eventCaller:        eventCaller,
	}
}

func (d *forumDomain) CreateThread(
	ctx context.Context, req *model.CreateThreadRequest,
) (*model.CreateThreadResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	userID := xcontext.RequestUserID(ctx)
	thread := &entity.ForumThread{
		Base:     entity.Base{ID: uuid.NewString()},
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}

	// An empty guild id posts to the global forum.
	if req.GuildID != "" {
		if err := d.checkThreadGuild(ctx, req.GuildID, userID); err != nil {
			return nil, err
		}

		thread.GuildID = sql.NullString{Valid: true, String: req.GuildID}
	}

	if err := d.forumRepo.CreateThread(ctx, thread); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create thread: %v", err)
		return nil, errorx.Unknown
	}

	err := d.searchCaller.Index(search.ThreadDoc, thread.ID, search.ThreadData{
		Title:    thread.Title,
		Content:  thread.Content,
		Category: thread.Category,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index thread: %v", err)
	}

	author, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get author: %v", err)
		return nil, errorx.Unknown
	}

	clientThread := model.ConvertForumThread(thread, author, 0)

	metadata := event.Metadata{Broadcast: true}
	if req.GuildID != "" {
		metadata = event.Metadata{ToGuild: req.GuildID}
	}

	ev := event.New(&event.ThreadCreatedEvent{Thread: clientThread}, metadata)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit thread created event: %v", err)
	}

	return &model.CreateThreadResponse{Thread: clientThread}, nil
}

func (d *forumDomain) GetThreads(
	ctx context.Context, req *model.GetThreadsRequest,
) (*model.GetThreadsResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	if req.GuildID != "" {
		userID := xcontext.RequestUserID(ctx)
		if err := d.checkThreadGuild(ctx, req.GuildID, userID); err != nil {
			return nil, err
		}
	}

	threads, err := d.forumRepo.GetThreads(ctx, repository.ThreadFilter{
		GuildID:  req.GuildID,
		Category: req.Category,
		Offset:   req.Offset,
		Limit:    req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get threads: %v", err)
		return nil, errorx.Unknown
	}

	clientThreads, err := d.convertThreads(ctx, threads)
	if err != nil {
		return nil, err
	}

	return &model.GetThreadsResponse{Threads: clientThreads}, nil
}

func (d *forumDomain) GetThread(
	ctx context.Context, req *model.GetThreadRequest,
) (*model.GetThreadResponse, error) {
	thread, err := d.getThread(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if thread.GuildID.Valid {
		userID := xcontext.RequestUserID(ctx)
		if err := d.checkThreadGuild(ctx, thread.GuildID.String, userID); err != nil {
			return nil, err
		}
	}

	replies, err := d.forumRepo.GetReplies(ctx, thread.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get replies: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{thread.AuthorID}
	for _, r := range replies {
		authorIDs = append(authorIDs, r.AuthorID)
	}

	authorMap, err := d.getAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	clientReplies := []model.ForumReply{}
	for i := range replies {
		author := authorMap[replies[i].AuthorID]
		clientReplies = append(clientReplies, model.ConvertForumReply(&replies[i], &author))
	}

	threadAuthor := authorMap[thread.AuthorID]
	return &model.GetThreadResponse{
		Thread:  model.ConvertForumThread(thread, &threadAuthor, int64(len(replies))),
		Replies: clientReplies,
	}, nil
}

func (d *forumDomain) CreateReply(
	ctx context.Context, req *model.CreateReplyRequest,
) (*model.CreateReplyResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	thread, err := d.getThread(ctx, req.ThreadID)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	if thread.GuildID.Valid {
		if err := d.checkThreadGuild(ctx, thread.GuildID.String, userID); err != nil {
			return nil, err
		}
	}

	reply := &entity.ForumReply{
		Base:     entity.Base{ID: uuid.NewString()},
		ThreadID: thread.ID,
		AuthorID: userID,
		Content:  req.Content,
	}

	if err := d.forumRepo.CreateReply(ctx, reply); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reply: %v", err)
		return nil, errorx.Unknown
	}

	author, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get author: %v", err)
		return nil, errorx.Unknown
	}

	clientReply := model.ConvertForumReply(reply, author)

	// The thread author hears about new replies directly. Guild threads fan
	// out to the guild as well.
	metadata := event.Metadata{ToUsers: []string{thread.AuthorID}}
	if thread.GuildID.Valid {
		metadata = event.Metadata{ToGuild: thread.GuildID.String}
	}

	ev := event.New(&event.ReplyCreatedEvent{Reply: clientReply}, metadata)
	if err := d.eventCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit reply created event: %v", err)
	}

	return &model.CreateReplyResponse{Reply: clientReply}, nil
}

func (d *forumDomain) DeleteThread(
	ctx context.Context, req *model.DeleteThreadRequest,
) (*model.DeleteThreadResponse, error) {
	thread, err := d.getThread(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.checkModeration(ctx, thread.AuthorID); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.forumRepo.DeleteRepliesByThreadID(ctx, thread.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete replies: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.forumRepo.DeleteThreadByID(ctx, thread.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete thread: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if err := d.searchCaller.Delete(search.ThreadDoc, thread.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot delete thread index: %v", err)
	}

	return &model.DeleteThreadResponse{}, nil
}

func (d *forumDomain) DeleteReply(
	ctx context.Context, req *model.DeleteReplyRequest,
) (*model.DeleteReplyResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty reply id")
	}

	reply, err := d.forumRepo.GetReplyByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reply")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reply: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.checkModeration(ctx, reply.AuthorID); err != nil {
		return nil, err
	}

	if err := d.forumRepo.DeleteReplyByID(ctx, reply.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete reply: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteReplyResponse{}, nil
}

func (d *forumDomain) SearchThreads(
	ctx context.Context, req *model.SearchThreadsRequest,
) (*model.SearchThreadsResponse, error) {
	if req.Q == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty query")
	}

	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	ids, err := d.searchCaller.Search(search.ThreadDoc, req.Q, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search threads: %v", err)
		return nil, errorx.Unknown
	}

	threads := []entity.ForumThread{}
	for _, id := range ids {
		thread, err := d.forumRepo.GetThreadByID(ctx, id)
		if err != nil {
			// The index can briefly hold ids of deleted threads.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}

			xcontext.Logger(ctx).Errorf("Cannot get thread: %v", err)
			return nil, errorx.Unknown
		}

		// Search covers the global forum plus, optionally, one guild forum
		// the caller belongs to.
		if thread.GuildID.Valid && thread.GuildID.String != req.GuildID {
			continue
		}

		threads = append(threads, *thread)
	}

	if req.GuildID != "" {
		userID := xcontext.RequestUserID(ctx)
		if err := d.checkThreadGuild(ctx, req.GuildID, userID); err != nil {
			return nil, err
		}
	}

	clientThreads, err := d.convertThreads(ctx, threads)
	if err != nil {
		return nil, err
	}

	return &model.SearchThreadsResponse{Threads: clientThreads}, nil
}

func (d *forumDomain) getThread(ctx context.Context, id string) (*entity.ForumThread, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty thread id")
	}

	thread, err := d.forumRepo.GetThreadByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found thread")
		}

		xcontext.Logger(ctx).Errorf("Cannot get thread: %v", err)
		return nil, errorx.Unknown
	}

	return thread, nil
}

// checkThreadGuild requires guild membership to read or post in a guild
// forum.
func (d *forumDomain) checkThreadGuild(ctx context.Context, guildID, userID string) error {
	_, err := d.guildRepo.GetMember(ctx, guildID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.PermissionDenied, "You are not a member of this guild")
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return errorx.Unknown
	}

	return nil
}

// checkModeration allows the author or a global admin.
func (d *forumDomain) checkModeration(ctx context.Context, authorID string) error {
	if xcontext.RequestUserID(ctx) == authorID {
		return nil
	}

	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied on forum moderation: %v", err)
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}

func (d *forumDomain) getAuthors(ctx context.Context, ids []string) (map[string]entity.User, error) {
	authorMap := map[string]entity.User{}
	if len(ids) == 0 {
		return authorMap, nil
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	for _, u := range users {
		authorMap[u.ID] = u
	}

	return authorMap, nil
}

func (d *forumDomain) convertThreads(
	ctx context.Context, threads []entity.ForumThread,
) ([]model.ForumThread, error) {
	authorIDs := []string{}
	for _, t := range threads {
		authorIDs = append(authorIDs, t.AuthorID)
	}

	authorMap, err := d.getAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	clientThreads := []model.ForumThread{}
	for i := range threads {
		numReplies, err := d.forumRepo.CountReplies(ctx, threads[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count replies: %v", err)
			return nil, errorx.Unknown
		}

		author := authorMap[threads[i].AuthorID]
		clientThreads = append(clientThreads, model.ConvertForumThread(&threads[i], &author, numReplies))
	}

	return clientThreads, nil
}
