package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clawdex/internal/db"
	"clawdex/internal/models"
	"clawdex/internal/utils"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Pending is the moderation queue: unapproved submissions and open
// ownership claims on one page.
func (h *AdminHandler) Pending(c *gin.Context) {
	var platforms []models.Platform
	db.DB.Preload("SubmittedBy").
		Where("approved = ?", false).
		Order("created_at ASC").
		Find(&platforms)

	var claims []models.Claim
	db.DB.Preload("Platform").Preload("User").
		Where("status = ?", models.ClaimPending).
		Order("created_at ASC").
		Find(&claims)

	Render(c, http.StatusOK, "admin/pending.html", gin.H{
		"Title":     "Moderation queue",
		"Platforms": platforms,
		"Claims":    claims,
		"Active":    "admin",
	})
}

// ApprovePlatform makes a submission publicly visible.
func (h *AdminHandler) ApprovePlatform(c *gin.Context) {
	result := db.DB.Model(&models.Platform{}).
		Where("slug = ? AND approved = ?", c.Param("slug"), false).
		Update("approved", true)
	if result.Error != nil || result.RowsAffected == 0 {
		c.Status(http.StatusNotFound)
		return
	}

	utils.GetCache().Delete(directoryCacheKey)
	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// DeletePlatform removes a listing and everything hanging off it.
func (h *AdminHandler) DeletePlatform(c *gin.Context) {
	var platform models.Platform
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&platform).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&models.Upvote{}, &models.Bookmark{}, &models.Comment{}, &models.Claim{}} {
			if err := tx.Where("platform_id = ?", platform.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&platform).Error
	})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	utils.GetCache().Delete(directoryCacheKey)
	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// ResolveClaim approves or rejects an ownership claim by its reference.
// Approval stamps the platform's owner in the same transaction, so a
// platform can never end up approved-claimed without an owner.
func (h *AdminHandler) ResolveClaim(c *gin.Context) {
	approve := c.PostForm("decision") == "approve"

	var claim models.Claim
	if err := db.DB.Where("reference = ? AND status = ?", c.Param("reference"), models.ClaimPending).
		First(&claim).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if !approve {
			return tx.Model(&claim).Update("status", models.ClaimRejected).Error
		}
		if err := tx.Model(&claim).Update("status", models.ClaimApproved).Error; err != nil {
			return err
		}
		return tx.Model(&models.Platform{}).Where("id = ?", claim.PlatformID).
			Update("claimed_by_id", claim.UserID).Error
	})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}
