package middleware

import (
	"testing"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/testutil"
	"github.com/parnaso/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_AccountStatus_Middleware(t *testing.T) {
	ctx := testutil.MockContext()
	middleware := NewAccountStatus(repository.NewUserRepository()).Middleware()

	approved, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	pending, err := testutil.SampleUser(ctx, &entity.User{Status: entity.UserStatusPending})
	require.NoError(t, err)
	rejected, err := testutil.SampleUser(ctx, &entity.User{Status: entity.UserStatusRejected})
	require.NoError(t, err)
	blocked, err := testutil.SampleUser(ctx, &entity.User{IsBlocked: true})
	require.NoError(t, err)

	_, err = middleware(xcontext.WithRequestUserID(ctx, approved.ID))
	require.NoError(t, err)

	var errx errorx.Error

	_, err = middleware(xcontext.WithRequestUserID(ctx, pending.ID))
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)

	_, err = middleware(xcontext.WithRequestUserID(ctx, rejected.ID))
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	_, err = middleware(xcontext.WithRequestUserID(ctx, blocked.ID))
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	_, err = middleware(ctx)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}

func Test_RequireGlobalRole_Middleware(t *testing.T) {
	ctx := testutil.MockContext()
	middleware := RequireGlobalRole(repository.NewUserRepository(), entity.GlobalAdminRoles...)

	admin, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleAdmin})
	require.NoError(t, err)
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = middleware(xcontext.WithRequestUserID(ctx, admin.ID))
	require.NoError(t, err)

	var errx errorx.Error
	_, err = middleware(xcontext.WithRequestUserID(ctx, user.ID))
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}
