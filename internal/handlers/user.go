package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clawdex/internal/db"
	"clawdex/internal/models"
	"clawdex/internal/utils"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile renders a public member page at /u/:id with tabs for the
// platforms they submitted, their comments, and their bookmarks.
func (h *UserHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	tab := c.DefaultQuery("tab", "platforms")

	var platforms []models.Platform
	var comments []models.Comment
	var bookmarked []models.Platform

	switch tab {
	case "comments":
		db.DB.Preload("Platform").
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Limit(50).
			Find(&comments)
	case "bookmarks":
		var bookmarks []models.Bookmark
		db.DB.Preload("Platform").
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Limit(50).
			Find(&bookmarks)
		for _, b := range bookmarks {
			if b.Platform.ID != 0 && b.Platform.Approved {
				bookmarked = append(bookmarked, b.Platform)
			}
		}
		fillCommentCounts(bookmarked)
	default:
		tab = "platforms"
		db.DB.Where("submitted_by_id = ? AND approved = ?", user.ID, true).
			Order("created_at DESC").
			Limit(50).
			Find(&platforms)
		fillCommentCounts(platforms)
	}

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title":      user.Username,
		"Profile":    user,
		"Tab":        tab,
		"Platforms":  platforms,
		"Comments":   comments,
		"Bookmarked": bookmarked,
		"DaysJoined": utils.GetDaysSinceJoined(user.CreatedAt),
	})
}
