package entity

import "github.com/parnaso/backend/pkg/enum"

type ProjectStatus string

var (
	ProjectStatusActive   = enum.New(ProjectStatus("active"))
	ProjectStatusArchived = enum.New(ProjectStatus("archived"))
	ProjectStatusDone     = enum.New(ProjectStatus("done"))
)

type Project struct {
	Base
	UserID      string `gorm:"index"`
	User        User   `gorm:"foreignKey:UserID"`
	Title       string
	Description string
	TargetWords int
	Color       string // hex color shown by the client, e.g. "#7c3aed"
	Status      ProjectStatus
}
