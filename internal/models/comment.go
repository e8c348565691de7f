package models

import (
	"time"
)

// MaxCommentLength bounds a comment body in runes.
const MaxCommentLength = 2000

// Comment is append-only: created on submit, deleted by its author,
// never edited. AuthorName is stamped at insert so the label survives
// later profile changes.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Cid        string    `gorm:"uniqueIndex;size:36;not null" json:"cid"`
	PlatformID uint      `gorm:"not null;index" json:"platform_id"`
	Platform   Platform  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"platform"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	AuthorName string    `gorm:"size:100;not null" json:"author_name"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
