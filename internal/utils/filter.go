package utils

import (
	"sort"
	"strings"

	"clawdex/internal/models"
)

// Directory sort keys.
const (
	SortUpvotes = "upvotes"
	SortNewest  = "newest"
	SortMRR     = "mrr"
)

// FilterPlatforms narrows the directory list by free-text query (name,
// description, tags) and category. An empty query or category "all" leaves
// that axis untouched. The input slice is not modified.
func FilterPlatforms(platforms []models.Platform, query, category string) []models.Platform {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Platform, 0, len(platforms))
	for _, p := range platforms {
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p models.Platform, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// SortPlatforms orders the list in place by the chosen key. Unknown keys
// fall back to upvotes. Stable, so ties keep their fetch order.
func SortPlatforms(platforms []models.Platform, sortBy string) {
	switch sortBy {
	case SortNewest:
		sort.SliceStable(platforms, func(i, j int) bool {
			return platforms[i].CreatedAt.After(platforms[j].CreatedAt)
		})
	case SortMRR:
		sort.SliceStable(platforms, func(i, j int) bool {
			return mrrOf(platforms[i]) > mrrOf(platforms[j])
		})
	default:
		sort.SliceStable(platforms, func(i, j int) bool {
			return platforms[i].UpvoteCount > platforms[j].UpvoteCount
		})
	}
}

func mrrOf(p models.Platform) int {
	if p.MRR == nil {
		return 0
	}
	return *p.MRR
}
