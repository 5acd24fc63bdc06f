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

func newFriendshipDomainForTest() *friendshipDomain {
	return &friendshipDomain{
		friendshipRepo: repository.NewFriendshipRepository(),
		userRepo:       repository.NewUserRepository(),
		eventCaller:    notification.NewEventCaller(&testutil.MockPublisher{}),
	}
}

func Test_friendshipDomain_SendRequest_DuplicatedPair(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newFriendshipDomainForTest()

	user1, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	user2, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx1 := xcontext.WithRequestUserID(ctx, user1.ID)
	_, err = domain.SendRequest(ctx1, &model.SendFriendRequestRequest{UserID: user2.ID})
	require.NoError(t, err)

	// The same direction again.
	_, err = domain.SendRequest(ctx1, &model.SendFriendRequestRequest{UserID: user2.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	// The opposite direction counts as the same pair.
	ctx2 := xcontext.WithRequestUserID(ctx, user2.ID)
	_, err = domain.SendRequest(ctx2, &model.SendFriendRequestRequest{UserID: user1.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_friendshipDomain_SendRequest_Yourself(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newFriendshipDomainForTest()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	_, err = domain.SendRequest(ctx, &model.SendFriendRequestRequest{UserID: user.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_friendshipDomain_AcceptRequest_OnlyReceiver(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newFriendshipDomainForTest()

	requester, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	receiver, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	requesterCtx := xcontext.WithRequestUserID(ctx, requester.ID)
	_, err = domain.SendRequest(requesterCtx, &model.SendFriendRequestRequest{UserID: receiver.ID})
	require.NoError(t, err)

	receiverCtx := xcontext.WithRequestUserID(ctx, receiver.ID)
	resp, err := domain.GetRequests(receiverCtx, &model.GetFriendRequestsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Received, 1)
	require.Equal(t, requester.ID, resp.Received[0].User.ID)

	requestID := resp.Received[0].ID

	// The requester cannot accept their own request.
	_, err = domain.AcceptRequest(requesterCtx, &model.AcceptFriendRequestRequest{ID: requestID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	_, err = domain.AcceptRequest(receiverCtx, &model.AcceptFriendRequestRequest{ID: requestID})
	require.NoError(t, err)

	// Both sides see each other, the friendship is symmetric.
	friends, err := domain.GetMyFriends(requesterCtx, &model.GetMyFriendsRequest{})
	require.NoError(t, err)
	require.Len(t, friends.Friends, 1)
	require.Equal(t, receiver.ID, friends.Friends[0].ID)

	friends, err = domain.GetMyFriends(receiverCtx, &model.GetMyFriendsRequest{})
	require.NoError(t, err)
	require.Len(t, friends.Friends, 1)
	require.Equal(t, requester.ID, friends.Friends[0].ID)

	// Accepting twice is rejected, the request is no longer pending.
	_, err = domain.AcceptRequest(receiverCtx, &model.AcceptFriendRequestRequest{ID: requestID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)
}

func Test_friendshipDomain_RemoveFriend(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newFriendshipDomainForTest()

	user1, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	user2, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	friendshipRepo := domain.friendshipRepo
	err = friendshipRepo.Create(ctx, &entity.Friendship{
		Base:        entity.Base{ID: "friendship1"},
		RequesterID: user1.ID,
		ReceiverID:  user2.ID,
		Status:      entity.FriendshipStatusAccepted,
	})
	require.NoError(t, err)

	// Either side of the pair can remove the friendship.
	ctx2 := xcontext.WithRequestUserID(ctx, user2.ID)
	_, err = domain.RemoveFriend(ctx2, &model.RemoveFriendRequest{UserID: user1.ID})
	require.NoError(t, err)

	friends, err := domain.GetMyFriends(ctx2, &model.GetMyFriendsRequest{})
	require.NoError(t, err)
	require.Empty(t, friends.Friends)
}

func Test_friendshipDomain_GetAvailableUsers(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newFriendshipDomainForTest()

	me, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	friend, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	stranger, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	// Pending users never show up as available.
	_, err = testutil.SampleUser(ctx, &entity.User{Status: entity.UserStatusPending})
	require.NoError(t, err)

	err = domain.friendshipRepo.Create(ctx, &entity.Friendship{
		Base:        entity.Base{ID: "friendship1"},
		RequesterID: friend.ID,
		ReceiverID:  me.ID,
		Status:      entity.FriendshipStatusAccepted,
	})
	require.NoError(t, err)

	myCtx := xcontext.WithRequestUserID(ctx, me.ID)
	resp, err := domain.GetAvailableUsers(myCtx, &model.GetAvailableUsersRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	require.Equal(t, stranger.ID, resp.Users[0].ID)
}
