package middleware

import (
	"context"

	"github.com/parnaso/backend/pkg/router"
	"github.com/parnaso/backend/pkg/xcontext"
)

// accessTokenKey is the session value holding the raw access token.
const accessTokenKey = "access_token"

type AccessTokenResponse interface {
	AccessTokenInfo() string
}

// HandleSetAccessToken mirrors a freshly issued access token into the cookie
// session so browser clients do not need to manage the bearer header
// themselves.
func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		tokenResp, ok := xcontext.Response(ctx).(AccessTokenResponse)
		if !ok {
			return nil, nil
		}

		req := xcontext.HTTPRequest(ctx)
		session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
		if err != nil {
			return nil, err
		}

		session.Values[accessTokenKey] = tokenResp.AccessTokenInfo()
		session.Options.Path = "/"
		session.Options.MaxAge = int(xcontext.Configs(ctx).Auth.AccessToken.Expiration.Seconds())

		if err := session.Save(req, xcontext.HTTPWriter(ctx)); err != nil {
			return nil, err
		}

		return nil, nil
	}
}
