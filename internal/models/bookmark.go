package models

import (
	"time"
)

// Bookmark has the same shape and uniqueness rule as Upvote but an
// independent lifecycle. CollectionName groups saves on the bookmarks page.
type Bookmark struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index;uniqueIndex:idx_bookmark_user_platform" json:"user_id"`
	PlatformID     uint      `gorm:"not null;index;uniqueIndex:idx_bookmark_user_platform" json:"platform_id"`
	Platform       Platform  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"platform"`
	CollectionName string    `gorm:"size:50;default:'saved'" json:"collection_name"`
	CreatedAt      time.Time `json:"created_at"`
}
