package event

import "github.com/parnaso/backend/internal/model"

type FriendRequestCreatedEvent struct {
	Request model.FriendRequest `json:"request"`
}

func (*FriendRequestCreatedEvent) Op() string {
	return "friend_request_created"
}

type FriendRequestAcceptedEvent struct {
	Friend model.User `json:"friend"`
}

func (*FriendRequestAcceptedEvent) Op() string {
	return "friend_request_accepted"
}

type FriendRemovedEvent struct {
	UserID string `json:"user_id"`
}

func (*FriendRemovedEvent) Op() string {
	return "friend_removed"
}
