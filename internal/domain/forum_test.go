package domain

import (
	"testing"

	"github.com/parnaso/backend/internal/domain/notification"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/testutil"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newForumDomainForTest(searchCaller *testutil.MockSearchCaller) *forumDomain {
	return NewForumDomain(
		repository.NewForumRepository(),
		repository.NewUserRepository(),
		repository.NewGuildRepository(),
		searchCaller,
		notification.NewEventCaller(&testutil.MockPublisher{}),
	)
}

func Test_forumDomain_CreateThread_GlobalAndGuild(t *testing.T) {
	ctx := testutil.MockContext()

	indexed := map[string]any{}
	searchCaller := &testutil.MockSearchCaller{
		IndexFunc: func(document, id string, data any) error {
			indexed[id] = data
			return nil
		},
	}
	domain := newForumDomainForTest(searchCaller)

	author, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	guild, err := testutil.SampleGuild(ctx, nil)
	require.NoError(t, err)

	authorCtx := xcontext.WithRequestUserID(ctx, author.ID)

	// Anyone can post to the global forum.
	created, err := domain.CreateThread(authorCtx, &model.CreateThreadRequest{
		Title:    "Introductions",
		Content:  "Say hello here",
		Category: "general",
	})
	require.NoError(t, err)
	require.Empty(t, created.Thread.GuildID)
	require.Contains(t, indexed, created.Thread.ID)

	// Posting to a guild forum needs membership.
	_, err = domain.CreateThread(authorCtx, &model.CreateThreadRequest{
		GuildID: guild.ID,
		Title:   "Members only",
		Content: "secret",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	err = domain.guildRepo.CreateMember(ctx, &entity.GuildMember{
		GuildID: guild.ID,
		UserID:  author.ID,
		Role:    entity.GuildRoleMember,
	})
	require.NoError(t, err)

	guildThread, err := domain.CreateThread(authorCtx, &model.CreateThreadRequest{
		GuildID: guild.ID,
		Title:   "Members only",
		Content: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, guild.ID, guildThread.Thread.GuildID)

	// The global listing never returns guild threads.
	threads, err := domain.GetThreads(authorCtx, &model.GetThreadsRequest{})
	require.NoError(t, err)
	require.Len(t, threads.Threads, 1)
	require.Equal(t, created.Thread.ID, threads.Threads[0].ID)
}

func Test_forumDomain_Replies(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newForumDomainForTest(&testutil.MockSearchCaller{})

	author, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	replier, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	authorCtx := xcontext.WithRequestUserID(ctx, author.ID)
	created, err := domain.CreateThread(authorCtx, &model.CreateThreadRequest{
		Title:   "Plot help",
		Content: "How do I end act two?",
	})
	require.NoError(t, err)

	replierCtx := xcontext.WithRequestUserID(ctx, replier.ID)
	_, err = domain.CreateReply(replierCtx, &model.CreateReplyRequest{
		ThreadID: created.Thread.ID,
		Content:  "Raise the stakes.",
	})
	require.NoError(t, err)

	resp, err := domain.GetThread(authorCtx, &model.GetThreadRequest{ID: created.Thread.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Thread.NumReplies)
	require.Len(t, resp.Replies, 1)
	require.Equal(t, replier.ID, resp.Replies[0].Author.ID)
}

func Test_forumDomain_DeleteThread_Moderation(t *testing.T) {
	ctx := testutil.MockContext()

	deleted := []string{}
	searchCaller := &testutil.MockSearchCaller{
		DeleteFunc: func(document, id string) error {
			deleted = append(deleted, id)
			return nil
		},
	}
	domain := newForumDomainForTest(searchCaller)

	author, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	stranger, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	admin, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleAdmin})
	require.NoError(t, err)

	authorCtx := xcontext.WithRequestUserID(ctx, author.ID)
	created, err := domain.CreateThread(authorCtx, &model.CreateThreadRequest{
		Title:   "Off topic",
		Content: "spam",
	})
	require.NoError(t, err)

	_, err = domain.CreateReply(authorCtx, &model.CreateReplyRequest{
		ThreadID: created.Thread.ID,
		Content:  "bump",
	})
	require.NoError(t, err)

	strangerCtx := xcontext.WithRequestUserID(ctx, stranger.ID)
	_, err = domain.DeleteThread(strangerCtx, &model.DeleteThreadRequest{ID: created.Thread.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	// A global admin can moderate any thread. Replies go with it.
	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)
	_, err = domain.DeleteThread(adminCtx, &model.DeleteThreadRequest{ID: created.Thread.ID})
	require.NoError(t, err)
	require.Equal(t, []string{created.Thread.ID}, deleted)

	_, err = domain.GetThread(authorCtx, &model.GetThreadRequest{ID: created.Thread.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	replies, err := domain.forumRepo.GetReplies(ctx, created.Thread.ID)
	require.NoError(t, err)
	require.Empty(t, replies)
}

func Test_forumDomain_SearchThreads(t *testing.T) {
	ctx := testutil.MockContext()

	searchCaller := &testutil.MockSearchCaller{}
	domain := newForumDomainForTest(searchCaller)

	author, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	authorCtx := xcontext.WithRequestUserID(ctx, author.ID)
	created, err := domain.CreateThread(authorCtx, &model.CreateThreadRequest{
		Title:   "Worldbuilding tips",
		Content: "Maps and myths",
	})
	require.NoError(t, err)

	searchCaller.SearchFunc = func(document, query string, offset, limit int) ([]string, error) {
		// A stale id must be skipped, not break the response.
		return []string{created.Thread.ID, "deleted-thread"}, nil
	}

	resp, err := domain.SearchThreads(authorCtx, &model.SearchThreadsRequest{Q: "worldbuilding"})
	require.NoError(t, err)
	require.Len(t, resp.Threads, 1)
	require.Equal(t, created.Thread.ID, resp.Threads[0].ID)
}
