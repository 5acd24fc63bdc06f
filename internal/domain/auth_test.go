package domain

import (
	"testing"
	"time"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/model"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/crypto"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/testutil"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_authDomain_Register_FirstUserBecomesSuperAdmin(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()
	domain := &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "founder@example.com",
		Name:     "founder",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.UserStatusApproved), resp.Status)

	founder, err := userRepo.GetByEmail(ctx, "founder@example.com")
	require.NoError(t, err)
	require.Equal(t, entity.RoleSuperAdmin, founder.Role)

	// Everyone after the founder starts pending as a regular user.
	resp, err = domain.Register(ctx, &model.RegisterRequest{
		Email:    "second@example.com",
		Name:     "second",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.UserStatusPending), resp.Status)

	second, err := userRepo.GetByEmail(ctx, "second@example.com")
	require.NoError(t, err)
	require.Equal(t, entity.RoleUser, second.Role)
}

func Test_authDomain_Register_DuplicateEmail(t *testing.T) {
	ctx := testutil.MockContext()
	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "writer@example.com",
		Name:     "writer",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Email:    "writer@example.com",
		Name:     "another",
		Password: "password123",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_authDomain_Login_AccountGates(t *testing.T) {
	ctx := testutil.MockContext()
	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	hashedPassword, err := crypto.HashPassword("password123")
	require.NoError(t, err)

	pending, err := testutil.SampleUser(ctx, &entity.User{
		Email:          "pending@example.com",
		HashedPassword: hashedPassword,
		Status:         entity.UserStatusPending,
	})
	require.NoError(t, err)

	// A pending account cannot sign in yet.
	_, err = domain.Login(ctx, &model.LoginRequest{Email: pending.Email, Password: "password123"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)

	// A wrong password reads the same as an unknown email.
	approved, err := testutil.SampleUser(ctx, &entity.User{
		Email:          "approved@example.com",
		HashedPassword: hashedPassword,
	})
	require.NoError(t, err)

	_, err = domain.Login(ctx, &model.LoginRequest{Email: approved.Email, Password: "wrong"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)

	_, err = domain.Login(ctx, &model.LoginRequest{Email: "missing@example.com", Password: "password123"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)

	resp, err := domain.Login(ctx, &model.LoginRequest{Email: approved.Email, Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	accessToken := model.AccessToken{}
	err = xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &accessToken)
	require.NoError(t, err)
	require.Equal(t, approved.ID, accessToken.ID)
}

func Test_authDomain_Refresh_StolenDetection(t *testing.T) {
	ctx := testutil.MockContext()
	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	refreshTokenObj := model.RefreshToken{Family: "Foo", Counter: 0}
	err = domain.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:     user.ID,
		Family:     crypto.SHA256([]byte(refreshTokenObj.Family)),
		Counter:    0,
		Expiration: time.Now().Add(time.Minute),
	})
	require.NoError(t, err)

	refreshToken, err := xcontext.TokenEngine(ctx).Generate(time.Minute, refreshTokenObj)
	require.NoError(t, err)

	// The first refresh succeeds and rotates the family counter.
	resp, err := domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: refreshToken})
	require.NoError(t, err)

	accessToken := model.AccessToken{}
	err = xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &accessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, accessToken.ID)

	// Replaying the old token is detected as theft and revokes the family.
	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: refreshToken})
	require.Error(t, err)
	require.Equal(t, "Your refresh token will be revoked because it is detected as stolen", err.Error())

	// The family is gone, even the rotated token no longer works.
	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.Error(t, err)
	require.Equal(t, "Request failed", err.Error())
}

func Test_authDomain_Refresh_Expired(t *testing.T) {
	ctx := testutil.MockContext()
	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	refreshTokenObj := model.RefreshToken{Family: "Bar", Counter: 0}
	err = domain.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:     user.ID,
		Family:     crypto.SHA256([]byte(refreshTokenObj.Family)),
		Counter:    0,
		Expiration: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	refreshToken, err := xcontext.TokenEngine(ctx).Generate(time.Minute, refreshTokenObj)
	require.NoError(t, err)

	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: refreshToken})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.TokenExpired, errx.Code)
}

func Test_authDomain_Logout_RevokesRefreshTokens(t *testing.T) {
	ctx := testutil.MockContext()
	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	password := "super-secret"
	hashed, err := crypto.HashPassword(password)
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, &entity.User{HashedPassword: hashed})
	require.NoError(t, err)

	loginResp, err := domain.Login(ctx, &model.LoginRequest{Email: user.Email, Password: password})
	require.NoError(t, err)

	_, err = domain.Logout(xcontext.WithRequestUserID(ctx, user.ID), &model.LogoutRequest{})
	require.NoError(t, err)

	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: loginResp.RefreshToken})
	require.Error(t, err)
	require.Equal(t, "Request failed", err.Error())
}
