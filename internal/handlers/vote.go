package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clawdex/internal/db"
	"clawdex/internal/models"
	"clawdex/internal/optimistic"
	"clawdex/internal/utils"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

func hasUpvoted(userID, platformID uint) bool {
	var count int64
	db.DB.Model(&models.Upvote{}).
		Where("user_id = ? AND platform_id = ?", userID, platformID).
		Count(&count)
	return count > 0
}

// commitUpvote flips the stored upvote state. The relation row and the
// denormalized count move in one transaction, never separately.
func commitUpvote(userID, platformID uint) optimistic.CommitToggle {
	return func(ctx context.Context, turningOn bool) error {
		return db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if turningOn {
				if err := tx.Create(&models.Upvote{UserID: userID, PlatformID: platformID}).Error; err != nil {
					return err
				}
				return tx.Model(&models.Platform{}).Where("id = ?", platformID).
					UpdateColumn("upvote_count", gorm.Expr("upvote_count + 1")).Error
			}

			result := tx.Where("user_id = ? AND platform_id = ?", userID, platformID).
				Delete(&models.Upvote{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// Nothing to remove, leave the count alone.
				return nil
			}
			return tx.Model(&models.Platform{}).Where("id = ?", platformID).
				UpdateColumn("upvote_count", gorm.Expr("upvote_count - 1")).Error
		})
	}
}

// Toggle upvotes or un-upvotes a platform for the signed-in user. The
// response reflects the applied state immediately; a failed write rolls
// the control back and re-renders the previous state.
func (h *VoteHandler) Toggle(c *gin.Context) {
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

	key := optimistic.Key("upvote", user.ID, platform.ID)
	control := toggles.Get(key, func() *optimistic.Toggle {
		return optimistic.NewToggle(hasUpvoted(user.ID, platform.ID), platform.UpvoteCount)
	})

	err := control.Flip(c.Request.Context(), commitUpvote(user.ID, platform.ID))
	if errors.Is(err, optimistic.ErrInFlight) {
		renderUpvoteButton(c, http.StatusConflict, platform.Slug, control)
		return
	}

	utils.GetCache().Delete(directoryCacheKey)

	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
	}
	renderUpvoteButton(c, status, platform.Slug, control)
}

func renderUpvoteButton(c *gin.Context, code int, slug string, control *optimistic.Toggle) {
	on, count := control.Snapshot()
	Render(c, code, "fragments/upvote_button.html", gin.H{
		"Slug":        slug,
		"IsUpvoted":   on,
		"UpvoteCount": count,
	})
}
