package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clawdex/internal/db"
	"clawdex/internal/models"
	"clawdex/internal/optimistic"
	"clawdex/internal/utils"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

func commentThread(userID uint, platformID uint) *optimistic.List[models.Comment] {
	key := optimistic.Key("comments", userID, platformID)
	return commentThreads.Get(key, func() *optimistic.List[models.Comment] {
		var comments []models.Comment
		db.DB.Where("platform_id = ?", platformID).Order("created_at ASC").Find(&comments)
		return optimistic.NewList(comments, func(c models.Comment) string { return c.Cid })
	})
}

// Create posts a comment to a platform thread. Validation happens before
// any store access; a rejected draft is carried back to the form so the
// text is never lost.
func (h *CommentHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		HtmxRedirect(c, "/login")
		return
	}

	slug := c.Param("slug")
	body := strings.TrimSpace(c.PostForm("body"))

	if body == "" {
		c.Redirect(http.StatusFound, "/platforms/"+slug)
		return
	}
	if len([]rune(body)) > models.MaxCommentLength {
		c.Redirect(http.StatusFound, "/platforms/"+slug+"?draft="+url.QueryEscape(body))
		return
	}

	var platform models.Platform
	if err := db.DB.Where("slug = ? AND approved = ?", slug, true).First(&platform).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	thread := commentThread(user.ID, platform.ID)

	placeholder := models.Comment{
		Cid:        optimistic.TempID(),
		PlatformID: platform.ID,
		UserID:     user.ID,
		AuthorName: user.Username,
		Body:       body,
		CreatedAt:  time.Now(),
	}

	err := thread.Post(c.Request.Context(), placeholder, func(ctx context.Context) (models.Comment, error) {
		comment := placeholder
		comment.Cid = uuid.NewString()
		if err := db.DB.WithContext(ctx).Create(&comment).Error; err != nil {
			return models.Comment{}, err
		}
		return comment, nil
	})

	if errors.Is(err, optimistic.ErrInFlight) {
		c.Redirect(http.StatusFound, "/platforms/"+slug+"?draft="+url.QueryEscape(body))
		return
	}
	if err != nil {
		// Placeholder already removed; hand the draft back.
		c.Redirect(http.StatusFound, "/platforms/"+slug+"?draft="+url.QueryEscape(body))
		return
	}

	c.Redirect(http.StatusFound, "/platforms/"+slug+"#comments")
}

// Delete removes the caller's own comment. Anyone else's returns 404, the
// same as a comment that does not exist.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		HtmxRedirect(c, "/login")
		return
	}

	cid := c.Param("cid")

	var comment models.Comment
	if err := db.DB.Where("cid = ?", cid).First(&comment).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if comment.UserID != user.ID {
		c.Status(http.StatusNotFound)
		return
	}

	thread := commentThread(user.ID, comment.PlatformID)
	err := thread.Delete(c.Request.Context(), cid, func(ctx context.Context) error {
		return db.DB.WithContext(ctx).Where("cid = ? AND user_id = ?", cid, user.ID).
			Delete(&models.Comment{}).Error
	})
	if err != nil {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	utils.GetCache().Delete(directoryCacheKey)
	c.Status(http.StatusOK)
}
