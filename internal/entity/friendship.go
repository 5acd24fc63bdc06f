package entity

import "github.com/parnaso/backend/pkg/enum"

type FriendshipStatus string

var (
	FriendshipStatusPending  = enum.New(FriendshipStatus("pending"))
	FriendshipStatusAccepted = enum.New(FriendshipStatus("accepted"))
)

// Friendship keeps exactly one row per pair. RequesterID is the user who
// sent the request, so the pair columns are not sorted; uniqueness in both
// directions is enforced by the repository.
type Friendship struct {
	Base
	RequesterID string `gorm:"uniqueIndex:idx_friend_pair"`
	Requester   User   `gorm:"foreignKey:RequesterID"`
	ReceiverID  string `gorm:"uniqueIndex:idx_friend_pair"`
	Receiver    User   `gorm:"foreignKey:ReceiverID"`
	Status      FriendshipStatus
}
