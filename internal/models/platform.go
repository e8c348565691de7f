package models

import (
	"time"

	"github.com/lib/pq"
)

// Platform categories. Stored as plain strings; the list drives the
// directory filter and the submit form.
const (
	CategoryDeployment  = "deployment"
	CategoryHosting     = "hosting"
	CategoryMarketplace = "marketplace"
	CategoryAnalytics   = "analytics"
	CategoryEducation   = "education"
	CategoryServices    = "services"
	CategoryTools       = "tools"
	CategoryBusiness    = "business"
)

// Category pairs a stored value with its display label.
type Category struct {
	Value string
	Label string
}

func Categories() []Category {
	return []Category{
		{CategoryDeployment, "🚀 Deployment"},
		{CategoryHosting, "⚡ Infrastructure"},
		{CategoryMarketplace, "🔌 Marketplace"},
		{CategoryAnalytics, "📊 Analytics"},
		{CategoryEducation, "🎓 Education"},
		{CategoryServices, "👥 Services"},
		{CategoryTools, "🛠️ Tools"},
		{CategoryBusiness, "💼 Business"},
	}
}

// ValidCategory reports whether value is one of the known categories.
func ValidCategory(value string) bool {
	for _, c := range Categories() {
		if c.Value == value {
			return true
		}
	}
	return false
}

type Platform struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;size:64;not null" json:"slug"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Website     string         `gorm:"not null" json:"website"`
	LogoURL     string         `json:"logo_url"`
	Category    string         `gorm:"size:20;not null;index" json:"category"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	MRR         *int           `json:"mrr"` // monthly recurring revenue, self-reported

	// UpvoteCount is a cached aggregate of Upvote rows. It is only ever
	// written in the same transaction as the matching Upvote insert/delete.
	UpvoteCount int `gorm:"default:0;not null" json:"upvote_count"`
	ViewCount   int `gorm:"default:0;not null" json:"view_count"`

	SubmittedByID uint  `gorm:"not null;index" json:"submitted_by_id"`
	SubmittedBy   User  `gorm:"foreignKey:SubmittedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"submitted_by"`
	Approved      bool  `gorm:"default:false;index" json:"approved"`
	Featured      bool  `gorm:"default:false" json:"featured"`
	Twitter       string `json:"twitter"`
	GitHub        string `json:"github"`
	ClaimedByID   *uint `gorm:"index" json:"claimed_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled at query time, not a column.
	CommentCount int `gorm:"-" json:"comment_count"`
}
