package handlers

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"clawdex/internal/db"
	"clawdex/internal/models"
	"clawdex/internal/optimistic"
	"clawdex/internal/services"
	"clawdex/internal/utils"
)

const directoryCacheKey = "directory:approved"

type PlatformHandler struct{}

func NewPlatformHandler() *PlatformHandler {
	return &PlatformHandler{}
}

// fillCommentCounts batch-fills the comment count for a page of platforms.
func fillCommentCounts(platforms []models.Platform) {
	if len(platforms) == 0 {
		return
	}

	ids := make([]uint, len(platforms))
	for i, p := range platforms {
		ids[i] = p.ID
	}

	type countResult struct {
		PlatformID uint
		Count      int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("platform_id, COUNT(*) as count").
		Where("platform_id IN ?", ids).
		Group("platform_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PlatformID] = r.Count
	}

	for i := range platforms {
		platforms[i].CommentCount = countMap[platforms[i].ID]
	}
}

// approvedPlatforms returns the full approved directory, cached briefly so
// per-request filter/sort stays an in-memory pass.
func approvedPlatforms() []models.Platform {
	if cached := utils.GetCache().Get(directoryCacheKey); cached != nil {
		if platforms, ok := cached.([]models.Platform); ok {
			return platforms
		}
	}

	var platforms []models.Platform
	db.DB.Preload("SubmittedBy").
		Where("approved = ?", true).
		Order("created_at DESC").
		Find(&platforms)

	utils.GetCache().Set(directoryCacheKey, platforms, 1*time.Minute)
	return platforms
}

// List is the directory home: approved platforms narrowed by search query
// and category, ordered by the chosen sort key.
func (h *PlatformHandler) List(c *gin.Context) {
	query := c.Query("q")
	category := c.DefaultQuery("category", "all")
	sortBy := c.DefaultQuery("sort", utils.SortUpvotes)

	platforms := utils.FilterPlatforms(approvedPlatforms(), query, category)
	utils.SortPlatforms(platforms, sortBy)
	fillCommentCounts(platforms)

	Render(c, http.StatusOK, "directory/list.html", gin.H{
		"Title":      "Discover OpenClaw Platforms",
		"Platforms":  platforms,
		"Query":      query,
		"Category":   category,
		"SortBy":     sortBy,
		"Categories": models.Categories(),
		"Active":     "directory",
	})
}

// canViewPlatform: unapproved listings are visible only to admins and to
// the submitter watching their own submission.
func canViewPlatform(platform *models.Platform, user *models.User) bool {
	if platform.Approved {
		return true
	}
	if user == nil {
		return false
	}
	return user.IsAdmin() || user.ID == platform.SubmittedByID
}

func (h *PlatformHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")
	user := currentUser(c)

	var platform models.Platform
	if err := db.DB.Preload("SubmittedBy").Where("slug = ?", slug).First(&platform).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Platform not found")
		return
	}
	if !canViewPlatform(&platform, user) {
		RenderError(c, http.StatusNotFound, "Platform not found")
		return
	}

	// Fire-and-forget; the displayed count is whatever this render loaded.
	services.GetViewCounter().Record(platform.ID)

	var comments []models.Comment
	db.DB.Where("platform_id = ?", platform.ID).Order("created_at ASC").Find(&comments)

	type renderedComment struct {
		models.Comment
		BodyHTML template.HTML
	}
	rendered := make([]renderedComment, len(comments))
	for i, com := range comments {
		rendered[i] = renderedComment{Comment: com, BodyHTML: utils.RenderMarkdown(com.Body)}
	}

	// A full page load is the resync point: drop live controls so the next
	// mutation seeds from the state this render shows.
	isUpvoted := false
	isBookmarked := false
	claimState := "unclaimed"
	if user != nil {
		isUpvoted = hasUpvoted(user.ID, platform.ID)
		isBookmarked = IsBookmarked(user.ID, platform.ID)
		toggles.Forget(optimistic.Key("upvote", user.ID, platform.ID))
		toggles.Forget(optimistic.Key("bookmark", user.ID, platform.ID))
		commentThreads.Forget(optimistic.Key("comments", user.ID, platform.ID))
		claimState = claimStateFor(&platform, user.ID)
	} else if platform.ClaimedByID != nil {
		claimState = "claimed"
	}

	Render(c, http.StatusOK, "platform/detail.html", gin.H{
		"Title":           platform.Name,
		"Platform":        platform,
		"DescriptionHTML": utils.RenderMarkdown(platform.Description),
		"Comments":        rendered,
		"CommentCount":    len(rendered),
		"IsUpvoted":       isUpvoted,
		"IsBookmarked":    isBookmarked,
		"ClaimState":      claimState,
		"CommentDraft":    c.Query("draft"),
	})
}

func (h *PlatformHandler) ShowSubmit(c *gin.Context) {
	Render(c, http.StatusOK, "platform/submit.html", gin.H{
		"Title":      "Submit a platform",
		"Categories": models.Categories(),
	})
}

// Submit queues a new listing for moderation. Nothing becomes publicly
// visible until an admin approves it.
func (h *PlatformHandler) Submit(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	website := strings.TrimSpace(c.PostForm("website"))
	description := strings.TrimSpace(c.PostForm("description"))
	category := c.PostForm("category")
	logoURL := strings.TrimSpace(c.PostForm("logo_url"))
	twitter := strings.TrimSpace(c.PostForm("twitter"))
	github := strings.TrimSpace(c.PostForm("github"))

	renderForm := func(code int, msg string) {
		Render(c, code, "platform/submit.html", gin.H{
			"Title":      "Submit a platform",
			"Error":      msg,
			"Categories": models.Categories(),
		})
	}

	if name == "" || website == "" || description == "" {
		renderForm(http.StatusBadRequest, "Name, website and description are required")
		return
	}
	if !models.ValidCategory(category) {
		renderForm(http.StatusBadRequest, "Pick a valid category")
		return
	}

	slug := utils.Slugify(name)
	if slug == "" {
		renderForm(http.StatusBadRequest, "Name must contain at least one letter or digit")
		return
	}

	var existing models.Platform
	if err := db.DB.Select("id").Where("slug = ?", slug).First(&existing).Error; err == nil {
		renderForm(http.StatusConflict, "A platform with this name already exists")
		return
	}

	var tags pq.StringArray
	for _, tag := range strings.Split(c.PostForm("tags"), ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}

	var mrr *int
	if raw := strings.TrimSpace(c.PostForm("mrr")); raw != "" {
		v := utils.StringToInt(raw)
		mrr = &v
	}

	platform := models.Platform{
		Slug:          slug,
		Name:          name,
		Description:   description,
		Website:       website,
		LogoURL:       logoURL,
		Category:      category,
		Tags:          tags,
		MRR:           mrr,
		Twitter:       twitter,
		GitHub:        github,
		SubmittedByID: user.ID,
		Approved:      false,
	}

	if err := db.DB.Create(&platform).Error; err != nil {
		renderForm(http.StatusInternalServerError, "Submission failed, try again")
		return
	}

	c.Redirect(http.StatusFound, "/platforms/"+platform.Slug)
}

// Compare renders up to three platforms side by side.
func (h *PlatformHandler) Compare(c *gin.Context) {
	var slugs []string
	for _, s := range strings.Split(c.Query("slugs"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			slugs = append(slugs, s)
		}
	}
	if len(slugs) > 3 {
		slugs = slugs[:3]
	}

	var platforms []models.Platform
	if len(slugs) > 0 {
		db.DB.Where("approved = ? AND slug IN ?", true, slugs).Find(&platforms)
		fillCommentCounts(platforms)
	}

	Render(c, http.StatusOK, "directory/compare.html", gin.H{
		"Title":     "Compare platforms",
		"Platforms": platforms,
		"All":       approvedPlatforms(),
		"Slugs":     strings.Join(slugs, ","),
	})
}
