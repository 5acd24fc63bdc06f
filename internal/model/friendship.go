package model

// FriendRequest carries the counterpart of the request: the requester for
// received requests, the receiver for sent ones.
type FriendRequest struct {
	ID        string `json:"id"`
	User      User   `json:"user"`
	CreatedAt string `json:"created_at"`
}

type SendFriendRequestRequest struct {
	UserID string `json:"user_id"`
}

type SendFriendRequestResponse struct{}

type AcceptFriendRequestRequest struct {
	ID string `json:"id"`
}

type AcceptFriendRequestResponse struct{}

type DeclineFriendRequestRequest struct {
	ID string `json:"id"`
}

type DeclineFriendRequestResponse struct{}

type RemoveFriendRequest struct {
	UserID string `json:"user_id"`
}

type RemoveFriendResponse struct{}

type GetMyFriendsRequest struct{}

type GetMyFriendsResponse struct {
	Friends []User `json:"friends"`
}

type GetFriendRequestsRequest struct{}

type GetFriendRequestsResponse struct {
	Received []FriendRequest `json:"received"`
	Sent     []FriendRequest `json:"sent"`
}

type GetAvailableUsersRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetAvailableUsersResponse struct {
	Users []User `json:"users"`
}
