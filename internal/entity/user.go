package entity

import (
	"time"

	"github.com/parnaso/backend/pkg/enum"
)

type GlobalRole string

var (
	RoleSuperAdmin = enum.New(GlobalRole("super_admin"))
	RoleAdmin      = enum.New(GlobalRole("admin"))
	RoleUser       = enum.New(GlobalRole("user"))

	GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}
)

type UserStatus string

var (
	UserStatusPending  = enum.New(UserStatus("pending"))
	UserStatusApproved = enum.New(UserStatus("approved"))
	UserStatusRejected = enum.New(UserStatus("rejected"))
)

type User struct {
	Base
	Email          string `gorm:"unique"`
	Name           string
	HashedPassword string
	Role           GlobalRole
	Status         UserStatus
	IsBlocked      bool
	ApprovedAt     *time.Time
}
