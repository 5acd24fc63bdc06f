package domain

import (
	"testing"
	"time"

	"github.com/parnaso/backend/internal/domain/notification"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/testutil"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newGuildDomainForTest() *guildDomain {
	return NewGuildDomain(
		repository.NewGuildRepository(),
		repository.NewUserRepository(),
		repository.NewFileRepository(),
		notification.NewEventCaller(&testutil.MockPublisher{}),
		&testutil.MockRedisClient{},
		&testutil.MockStorage{},
	)
}

func Test_guildDomain_Create_FounderBecomesAdmin(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newGuildDomainForTest()

	founder, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, founder.ID)
	resp, err := domain.Create(ctx, &model.CreateGuildRequest{Name: "Night Writers"})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Guild.NumberOfMember)

	member, err := domain.guildRepo.GetMember(ctx, resp.Guild.ID, founder.ID)
	require.NoError(t, err)
	require.Equal(t, entity.GuildRoleAdmin, member.Role)

	// Guild names are unique.
	_, err = domain.Create(ctx, &model.CreateGuildRequest{Name: "Night Writers"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_guildDomain_Join_Idempotence(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newGuildDomainForTest()

	guild, err := testutil.SampleGuild(ctx, nil)
	require.NoError(t, err)
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	_, err = domain.Join(ctx, &model.JoinGuildRequest{ID: guild.ID})
	require.NoError(t, err)

	_, err = domain.Join(ctx, &model.JoinGuildRequest{ID: guild.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_guildDomain_Leave_LastAdmin(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newGuildDomainForTest()

	admin, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	member, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)
	resp, err := domain.Create(adminCtx, &model.CreateGuildRequest{Name: "Inkwell"})
	require.NoError(t, err)

	memberCtx := xcontext.WithRequestUserID(ctx, member.ID)
	_, err = domain.Join(memberCtx, &model.JoinGuildRequest{ID: resp.Guild.ID})
	require.NoError(t, err)

	// The only admin cannot abandon a guild with remaining members.
	_, err = domain.Leave(adminCtx, &model.LeaveGuildRequest{ID: resp.Guild.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)

	_, err = domain.PromoteMember(adminCtx, &model.PromoteGuildMemberRequest{
		GuildID: resp.Guild.ID,
		UserID:  member.ID,
	})
	require.NoError(t, err)

	_, err = domain.Leave(adminCtx, &model.LeaveGuildRequest{ID: resp.Guild.ID})
	require.NoError(t, err)
}

func Test_guildDomain_GetMembers_StatsReset(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newGuildDomainForTest()

	admin, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)
	resp, err := domain.Create(adminCtx, &model.CreateGuildRequest{Name: "Quill Club"})
	require.NoError(t, err)
	guildID := resp.Guild.ID

	_, err = testutil.SampleWritingSession(ctx, &entity.WritingSession{
		UserID:    admin.ID,
		WordCount: 700,
		StartedAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	members, err := domain.GetMembers(adminCtx, &model.GetGuildMembersRequest{GuildID: guildID})
	require.NoError(t, err)
	require.Len(t, members.Members, 1)
	require.Equal(t, int64(700), members.Members[0].TotalWords)

	// Sessions written before the reset no longer count toward the totals.
	_, err = domain.ResetStats(adminCtx, &model.ResetGuildStatsRequest{GuildID: guildID})
	require.NoError(t, err)

	members, err = domain.GetMembers(adminCtx, &model.GetGuildMembersRequest{GuildID: guildID})
	require.NoError(t, err)
	require.Len(t, members.Members, 1)
	require.Equal(t, int64(0), members.Members[0].TotalWords)

	_, err = testutil.SampleWritingSession(ctx, &entity.WritingSession{
		UserID:    admin.ID,
		WordCount: 250,
	})
	require.NoError(t, err)

	members, err = domain.GetMembers(adminCtx, &model.GetGuildMembersRequest{GuildID: guildID})
	require.NoError(t, err)
	require.Equal(t, int64(250), members.Members[0].TotalWords)
}

func Test_guildDomain_CreateChallenge_AdminOnly(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newGuildDomainForTest()

	admin, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	member, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)
	resp, err := domain.Create(adminCtx, &model.CreateGuildRequest{Name: "Wordsmiths"})
	require.NoError(t, err)

	memberCtx := xcontext.WithRequestUserID(ctx, member.ID)
	_, err = domain.Join(memberCtx, &model.JoinGuildRequest{ID: resp.Guild.ID})
	require.NoError(t, err)

	req := &model.CreateGuildChallengeRequest{
		GuildID:      resp.Guild.ID,
		Title:        "Write 10k together",
		Type:         "word_count",
		Target:       10000,
		DurationDays: 7,
	}

	_, err = domain.CreateChallenge(memberCtx, req)
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	created, err := domain.CreateChallenge(adminCtx, req)
	require.NoError(t, err)
	require.Equal(t, "word_count", created.Challenge.Type)
	require.Equal(t,
		time.UnixMilli(created.Challenge.StartDate).AddDate(0, 0, 7).UnixMilli(),
		created.Challenge.EndDate,
	)

	challenges, err := domain.GetChallenges(memberCtx, &model.GetGuildChallengesRequest{GuildID: resp.Guild.ID})
	require.NoError(t, err)
	require.Len(t, challenges.Challenges, 1)
}
