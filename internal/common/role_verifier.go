package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/repository"
	"github.com/parnaso/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type GlobalRoleVerifier struct {
	userRepo repository.UserRepository
}

func NewGlobalRoleVerifier(userRepo repository.UserRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo}
}

func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.GlobalRole) error {
	userID := xcontext.RequestUserID(ctx)
	u, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user is not valid")
	}

	if !slices.Contains(requiredRoles, u.Role) {
		return errors.New("user role does not have permission")
	}

	return nil
}

type GuildRoleVerifier struct {
	guildRepo repository.GuildRepository
	userRepo  repository.UserRepository
}

func NewGuildRoleVerifier(
	guildRepo repository.GuildRepository,
	userRepo repository.UserRepository,
) *GuildRoleVerifier {
	return &GuildRoleVerifier{guildRepo: guildRepo, userRepo: userRepo}
}

// Verify checks the caller holds one of the required roles inside the guild.
// Global admins pass regardless of membership.
func (verifier *GuildRoleVerifier) Verify(
	ctx context.Context, guildID string, requiredRoles ...entity.GuildRole,
) error {
	userID := xcontext.RequestUserID(ctx)
	u, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user is not valid")
	}

	if slices.Contains(entity.GlobalAdminRoles, u.Role) {
		return nil
	}

	member, err := verifier.guildRepo.GetMember(ctx, guildID, userID)
	if err != nil {
		return fmt.Errorf("user is not a guild member")
	}

	if !slices.Contains(requiredRoles, member.Role) {
		return errors.New("user role does not have permission")
	}

	return nil
}
