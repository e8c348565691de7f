package models

import (
	"time"
)

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// Claim records an ownership claim on a platform. The UI only ever writes
// the initial pending row; approval or rejection happens in the admin
// moderation flow.
type Claim struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	PlatformID uint        `gorm:"not null;index;uniqueIndex:idx_claim_user_platform" json:"platform_id"`
	Platform   Platform    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"platform"`
	UserID     uint        `gorm:"not null;index;uniqueIndex:idx_claim_user_platform" json:"user_id"`
	User       User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Status     ClaimStatus `gorm:"size:10;default:'pending';not null" json:"status"`
	ProofURL   string      `gorm:"not null" json:"proof_url"`
	Reference  string      `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	CreatedAt  time.Time   `json:"created_at"`
}
