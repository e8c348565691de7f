package utils

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"clawdex/internal/models"
)

func intPtr(v int) *int { return &v }

func samplePlatforms() []models.Platform {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Platform{
		{Name: "ClawDeploy", Description: "One-click deployment", Category: models.CategoryDeployment,
			Tags: pq.StringArray{"docker", "cloud"}, UpvoteCount: 12, MRR: intPtr(500), CreatedAt: base},
		{Name: "PawMetrics", Description: "Usage analytics dashboards", Category: models.CategoryAnalytics,
			Tags: pq.StringArray{"metrics"}, UpvoteCount: 30, CreatedAt: base.AddDate(0, 0, 2)},
		{Name: "ClawSchool", Description: "Courses and tutorials", Category: models.CategoryEducation,
			Tags: pq.StringArray{"learning"}, UpvoteCount: 5, MRR: intPtr(2000), CreatedAt: base.AddDate(0, 0, 1)},
	}
}

func TestFilterPlatformsByQuery(t *testing.T) {
	got := FilterPlatforms(samplePlatforms(), "claw", "all")
	assert.Len(t, got, 2)

	// Tags are searched too.
	got = FilterPlatforms(samplePlatforms(), "docker", "")
	assert.Len(t, got, 1)
	assert.Equal(t, "ClawDeploy", got[0].Name)

	// Case-insensitive, matches description.
	got = FilterPlatforms(samplePlatforms(), "ANALYTICS", "all")
	assert.Len(t, got, 1)
	assert.Equal(t, "PawMetrics", got[0].Name)
}

func TestFilterPlatformsByCategory(t *testing.T) {
	got := FilterPlatforms(samplePlatforms(), "", models.CategoryEducation)
	assert.Len(t, got, 1)
	assert.Equal(t, "ClawSchool", got[0].Name)

	// "all" and empty keep everything.
	assert.Len(t, FilterPlatforms(samplePlatforms(), "", "all"), 3)
	assert.Len(t, FilterPlatforms(samplePlatforms(), "", ""), 3)
}

func TestFilterPlatformsComposes(t *testing.T) {
	got := FilterPlatforms(samplePlatforms(), "claw", models.CategoryDeployment)
	assert.Len(t, got, 1)
	assert.Equal(t, "ClawDeploy", got[0].Name)
}

func TestSortPlatforms(t *testing.T) {
	byUpvotes := samplePlatforms()
	SortPlatforms(byUpvotes, SortUpvotes)
	assert.Equal(t, []string{"PawMetrics", "ClawDeploy", "ClawSchool"}, names(byUpvotes))

	byNewest := samplePlatforms()
	SortPlatforms(byNewest, SortNewest)
	assert.Equal(t, []string{"PawMetrics", "ClawSchool", "ClawDeploy"}, names(byNewest))

	// Nil MRR sorts as zero.
	byMRR := samplePlatforms()
	SortPlatforms(byMRR, SortMRR)
	assert.Equal(t, []string{"ClawSchool", "ClawDeploy", "PawMetrics"}, names(byMRR))

	// Unknown key falls back to upvotes.
	fallback := samplePlatforms()
	SortPlatforms(fallback, "bogus")
	assert.Equal(t, []string{"PawMetrics", "ClawDeploy", "ClawSchool"}, names(fallback))
}

func names(platforms []models.Platform) []string {
	out := make([]string, len(platforms))
	for i, p := range platforms {
		out[i] = p.Name
	}
	return out
}
