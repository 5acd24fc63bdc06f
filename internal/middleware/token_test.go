package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/pkg/testutil"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type tokenResponse struct {
	token string
}

func (r tokenResponse) AccessTokenInfo() string {
	return r.token
}

func Test_HandleSetAccessToken_CookieSessionRoundTrip(t *testing.T) {
	ctx := testutil.MockContext()

	token, err := xcontext.TokenEngine(ctx).Generate(time.Minute, model.AccessToken{
		ID:   "user-1",
		Name: "ada",
		Role: string(entity.RoleUser),
	})
	require.NoError(t, err)

	// Issuing a token stores it into the cookie session.
	loginReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	recorder := httptest.NewRecorder()
	loginCtx := xcontext.WithRequestState(ctx)
	loginCtx = xcontext.WithHTTPRequest(loginCtx, loginReq)
	loginCtx = xcontext.WithHTTPWriter(loginCtx, recorder)
	xcontext.SetResponse(loginCtx, tokenResponse{token: token})

	_, err = HandleSetAccessToken()(loginCtx)
	require.NoError(t, err)

	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies)

	// A later request carrying only that cookie authenticates.
	nextReq := httptest.NewRequest(http.MethodGet, "/getMe", nil)
	for _, cookie := range cookies {
		nextReq.AddCookie(cookie)
	}

	nextCtx := xcontext.WithHTTPRequest(ctx, nextReq)
	authedCtx, err := NewAuthVerifier().WithAccessToken().Middleware()(nextCtx)
	require.NoError(t, err)
	require.Equal(t, "user-1", xcontext.RequestUserID(authedCtx))
}
