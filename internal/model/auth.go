package model

// AccessToken is the object embedded in the access JWT.
type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// RefreshToken is the object embedded in the refresh JWT. Family identifies a
// chain of rotated tokens; Counter detects reuse of an old token in the chain.
type RefreshToken struct {
	Family  string `json:"family"`
	Counter uint64 `json:"counter"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	// Registration never signs the user in. The account stays pending until
	// an administrator approves it.
	Status string `json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (r *LoginResponse) AccessTokenInfo() string {
	return r.AccessToken
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenResponse) AccessTokenInfo() string {
	return r.AccessToken
}
