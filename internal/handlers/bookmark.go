package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clawdex/internal/db"
	"clawdex/internal/models"
	"clawdex/internal/optimistic"
)

type BookmarkHandler struct{}

func NewBookmarkHandler() *BookmarkHandler {
	return &BookmarkHandler{}
}

// IsBookmarked reports whether user has saved the platform.
func IsBookmarked(userID, platformID uint) bool {
	var count int64
	db.DB.Model(&models.Bookmark{}).
		Where("user_id = ? AND platform_id = ?", userID, platformID).
		Count(&count)
	return count > 0
}

func commitBookmark(userID, platformID uint) optimistic.CommitToggle {
	return func(ctx context.Context, turningOn bool) error {
		if turningOn {
			return db.DB.WithContext(ctx).
				Create(&models.Bookmark{UserID: userID, PlatformID: platformID}).Error
		}
		return db.DB.WithContext(ctx).
			Where("user_id = ? AND platform_id = ?", userID, platformID).
			Delete(&models.Bookmark{}).Error
	}
}

// Toggle saves or unsaves a platform. Bookmarks carry no public count, so
// the control's count is seeded with zero and never rendered.
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		HtmxRedirect(c, "/login")
		return
	}

	var platform models.Platform
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&platform).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	key := optimistic.Key("bookmark", user.ID, platform.ID)
	control := toggles.Get(key, func() *optimistic.Toggle {
		return optimistic.NewToggle(IsBookmarked(user.ID, platform.ID), 0)
	})

	err := control.Flip(c.Request.Context(), commitBookmark(user.ID, platform.ID))

	status := http.StatusOK
	switch {
	case errors.Is(err, optimistic.ErrInFlight):
		status = http.StatusConflict
	case err != nil:
		status = http.StatusUnprocessableEntity
	}

	Render(c, status, "fragments/bookmark_button.html", gin.H{
		"Slug":         platform.Slug,
		"IsBookmarked": control.On(),
	})
}

// List shows the signed-in user's saved platforms, newest save first.
func (h *BookmarkHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var bookmarks []models.Bookmark
	db.DB.Preload("Platform").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&bookmarks)

	platforms := make([]models.Platform, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.Platform.ID != 0 && b.Platform.Approved {
			platforms = append(platforms, b.Platform)
		}
	}
	fillCommentCounts(platforms)

	Render(c, http.StatusOK, "user/bookmarks.html", gin.H{
		"Title":     "My bookmarks",
		"Platforms": platforms,
		"Active":    "bookmarks",
	})
}
