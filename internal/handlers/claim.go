package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clawdex/internal/db"
	"clawdex/internal/models"
)

type ClaimHandler struct{}

func NewClaimHandler() *ClaimHandler {
	return &ClaimHandler{}
}

// claimStateFor summarizes the claim button state for the detail page:
// "owner" when the viewer already owns it, "claimed" when someone else
// does, "pending" while the viewer's claim awaits review, else "unclaimed".
func claimStateFor(platform *models.Platform, userID uint) string {
	if platform.ClaimedByID != nil {
		if *platform.ClaimedByID == userID {
			return "owner"
		}
		return "claimed"
	}

	var count int64
	db.DB.Model(&models.Claim{}).
		Where("platform_id = ? AND user_id = ? AND status = ?", platform.ID, userID, models.ClaimPending).
		Count(&count)
	if count > 0 {
		return "pending"
	}
	return "unclaimed"
}

// Create files an ownership claim. Claims are never granted directly; the
// row goes in as pending and an admin resolves it.
func (h *ClaimHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		HtmxRedirect(c, "/login")
		return
	}

	proofURL := strings.TrimSpace(c.PostForm("proof_url"))
	if proofURL == "" || (!strings.HasPrefix(proofURL, "http://") && !strings.HasPrefix(proofURL, "https://")) {
		c.Status(http.StatusBadRequest)
		return
	}

	var platform models.Platform
	if err := db.DB.Where("slug = ? AND approved = ?", c.Param("slug"), true).First(&platform).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if platform.ClaimedByID != nil {
		Render(c, http.StatusConflict, "fragments/claim_button.html", gin.H{
			"Slug":       platform.Slug,
			"ClaimState": "claimed",
		})
		return
	}

	claim := models.Claim{
		PlatformID: platform.ID,
		UserID:     user.ID,
		Status:     models.ClaimPending,
		ProofURL:   proofURL,
		Reference:  uuid.NewString(),
	}
	if err := db.DB.Create(&claim).Error; err != nil {
		// Unique index: one claim per user per platform. Re-filing while a
		// claim is pending or after rejection lands here.
		Render(c, http.StatusConflict, "fragments/claim_button.html", gin.H{
			"Slug":       platform.Slug,
			"ClaimState": claimStateFor(&platform, user.ID),
		})
		return
	}

	Render(c, http.StatusOK, "fragments/claim_button.html", gin.H{
		"Slug":       platform.Slug,
		"ClaimState": "pending",
		"Reference":  claim.Reference,
	})
}
