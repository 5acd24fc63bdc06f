package middleware

import (
	"context"

	"github.com/parnaso/backend/internal/common"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/router"
	"github.com/parnaso/backend/pkg/xcontext"
)

type AccountStatus struct {
	userRepo repository.UserRepository
}

func NewAccountStatus(userRepo repository.UserRepository) *AccountStatus {
	return &AccountStatus{userRepo: userRepo}
}

// Middleware rejects callers whose account is not approved or is blocked.
// The gate runs on every authenticated route, never in the client.
func (a *AccountStatus) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		requestUserID := xcontext.RequestUserID(ctx)
		if requestUserID == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		user, err := a.userRepo.GetByID(ctx, requestUserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		if user.IsBlocked {
			return nil, errorx.New(errorx.PermissionDenied, "Your account has been blocked")
		}

		switch user.Status {
		case entity.UserStatusPending:
			return nil, errorx.New(errorx.Unavailable, "Your account is waiting for approval")
		case entity.UserStatusRejected:
			return nil, errorx.New(errorx.PermissionDenied, "Your account has been rejected")
		}

		return nil, nil
	}
}

// RequireGlobalRole gates a branch to callers holding one of the given
// platform roles.
func RequireGlobalRole(
	userRepo repository.UserRepository, roles ...entity.GlobalRole,
) router.MiddlewareFunc {
	verifier := common.NewGlobalRoleVerifier(userRepo)
	return func(ctx context.Context) (context.Context, error) {
		if err := verifier.Verify(ctx, roles...); err != nil {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return nil, nil
	}
}
