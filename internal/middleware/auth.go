package middleware

import (
	"context"
	"strings"

	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/router"
	"github.com/parnaso/backend/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

// Middleware resolves the caller from the bearer header or the cookie
// session and stores the user id into the context.
func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if !a.useAccessToken {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		token := getAccessToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		var info model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &info); err != nil {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)

	authorization := req.Header.Get("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}

	session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return ""
	}

	token, ok := session.Values[accessTokenKey].(string)
	if !ok {
		return ""
	}

	return token
}
