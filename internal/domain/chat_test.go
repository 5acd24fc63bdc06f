package domain

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/parnaso/backend/internal/domain/notification"
	"github.com/parnaso/backend/internal/domain/notification/event"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/pubsub"
	"github.com/parnaso/backend/pkg/testutil"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newChatDomainForTest(publisher *testutil.MockPublisher) *chatDomain {
	return NewChatDomain(
		repository.NewMessageRepository(),
		repository.NewFriendshipRepository(),
		repository.NewGuildRepository(),
		notification.NewEventCaller(publisher),
	)
}

func Test_chatDomain_SendMessage_FriendsOnly(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newChatDomainForTest(&testutil.MockPublisher{})

	sender, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	receiver, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	senderCtx := xcontext.WithRequestUserID(ctx, sender.ID)
	_, err = domain.SendMessage(senderCtx, &model.SendMessageRequest{
		ReceiverID: receiver.ID,
		Content:    "hello",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	err = domain.friendshipRepo.Create(ctx, &entity.Friendship{
		Base:        entity.Base{ID: "friendship1"},
		RequesterID: sender.ID,
		ReceiverID:  receiver.ID,
		Status:      entity.FriendshipStatusAccepted,
	})
	require.NoError(t, err)

	resp, err := domain.SendMessage(senderCtx, &model.SendMessageRequest{
		ReceiverID: receiver.ID,
		Content:    "hello",
	})
	require.NoError(t, err)
	require.NotZero(t, resp.Message.ID)
	require.Equal(t, receiver.ID, resp.Message.ReceiverID)
}

func Test_chatDomain_SendMessage_ExactlyOneTarget(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newChatDomainForTest(&testutil.MockPublisher{})

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	var errx errorx.Error
	_, err = domain.SendMessage(ctx, &model.SendMessageRequest{Content: "hello"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.SendMessage(ctx, &model.SendMessageRequest{
		ReceiverID: "someone",
		GuildID:    "someguild",
		Content:    "hello",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_chatDomain_GuildMessages_MembersOnly(t *testing.T) {
	ctx := testutil.MockContext()

	var published []*pubsub.Pack
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			published = append(published, pack)
			return nil
		},
	}
	domain := newChatDomainForTest(publisher)

	guild, err := testutil.SampleGuild(ctx, nil)
	require.NoError(t, err)
	member, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	stranger, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	err = domain.guildRepo.CreateMember(ctx, &entity.GuildMember{
		GuildID: guild.ID,
		UserID:  member.ID,
		Role:    entity.GuildRoleMember,
	})
	require.NoError(t, err)

	strangerCtx := xcontext.WithRequestUserID(ctx, stranger.ID)
	_, err = domain.SendMessage(strangerCtx, &model.SendMessageRequest{
		GuildID: guild.ID,
		Content: "let me in",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	memberCtx := xcontext.WithRequestUserID(ctx, member.ID)
	_, err = domain.SendMessage(memberCtx, &model.SendMessageRequest{
		GuildID: guild.ID,
		Content: "hello guild",
	})
	require.NoError(t, err)

	// The event is routed to the guild audience.
	require.Len(t, published, 1)
	var ev event.EventRequest
	require.NoError(t, json.Unmarshal(published[0].Msg, &ev))
	require.Equal(t, guild.ID, ev.Metadata.ToGuild)

	_, err = domain.GetGuildMessages(strangerCtx, &model.GetGuildMessagesRequest{GuildID: guild.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	resp, err := domain.GetGuildMessages(memberCtx, &model.GetGuildMessagesRequest{GuildID: guild.ID})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	require.Equal(t, "hello guild", resp.Messages[0].Content)
}

func Test_chatDomain_MarkRead_CountUnread(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newChatDomainForTest(&testutil.MockPublisher{})

	sender, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	receiver, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	err = domain.friendshipRepo.Create(ctx, &entity.Friendship{
		Base:        entity.Base{ID: "friendship1"},
		RequesterID: sender.ID,
		ReceiverID:  receiver.ID,
		Status:      entity.FriendshipStatusAccepted,
	})
	require.NoError(t, err)

	senderCtx := xcontext.WithRequestUserID(ctx, sender.ID)
	for i := 0; i < 3; i++ {
		_, err = domain.SendMessage(senderCtx, &model.SendMessageRequest{
			ReceiverID: receiver.ID,
			Content:    "ping",
		})
		require.NoError(t, err)
	}

	receiverCtx := xcontext.WithRequestUserID(ctx, receiver.ID)
	unread, err := domain.CountUnread(receiverCtx, &model.CountUnreadMessagesRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(3), unread.Unread)

	_, err = domain.MarkRead(receiverCtx, &model.MarkMessagesReadRequest{SenderID: sender.ID})
	require.NoError(t, err)

	unread, err = domain.CountUnread(receiverCtx, &model.CountUnreadMessagesRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(0), unread.Unread)
}
