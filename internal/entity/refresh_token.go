package entity

import "time"

// RefreshToken tracks one token family per login. Counter increases on every
// rotation; a presented token with a stale counter means the family leaked.
type RefreshToken struct {
	UserID     string
	User       User   `gorm:"foreignKey:UserID"`
	Family     string `gorm:"primaryKey"`
	Counter    uint64
	Expiration time.Time
}
