package models

import (
	"time"
)

// Upvote is a per-(user, platform) relation row. At most one per pair,
// enforced by the composite unique index. Rows are inserted and deleted,
// never updated.
type Upvote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_upvote_user_platform" json:"user_id"`
	PlatformID uint      `gorm:"not null;index;uniqueIndex:idx_upvote_user_platform" json:"platform_id"`
	Platform   Platform  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"platform"`
	CreatedAt  time.Time `json:"created_at"`
}
