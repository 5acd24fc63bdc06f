package model

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	Status    string `json:"status,omitempty"`
	IsBlocked bool   `json:"is_blocked,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type GetMeRequest struct{}

type GetMeResponse User

type UpdateMeRequest struct {
	Name string `json:"name"`
}

type UpdateMeResponse struct{}

type GetUsersRequest struct {
	Status string `json:"status"`
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetUsersResponse struct {
	Users []User `json:"users"`
}

type ApproveUserRequest struct {
	ID string `json:"id"`
}

type ApproveUserResponse struct{}

type RejectUserRequest struct {
	ID string `json:"id"`
}

type RejectUserResponse struct{}

type SetUserBlockedRequest struct {
	ID        string `json:"id"`
	IsBlocked bool   `json:"is_blocked"`
}

type SetUserBlockedResponse struct{}

type DeleteUserRequest struct {
	ID string `json:"id"`
}

type DeleteUserResponse struct{}
