package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"clawdex/internal/middleware"
	"clawdex/internal/models"
)

func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CheckUserKey, user)
		c.Next()
	}
}

func TestCommentRequiresLogin(t *testing.T) {
	r := gin.New()
	h := NewCommentHandler()
	r.POST("/platforms/:slug/comments", h.Create)

	w := performRequest(r, http.MethodPost, "/platforms/clawdeploy/comments",
		url.Values{"body": {"nice platform"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
}

// Whitespace-only bodies bounce back to the thread without any store write;
// the handler never gets as far as opening a connection.
func TestCommentRejectsBlankBody(t *testing.T) {
	r := gin.New()
	h := NewCommentHandler()
	r.POST("/platforms/:slug/comments", asUser(&models.User{ID: 7, Username: "mittens"}), h.Create)

	w := performRequest(r, http.MethodPost, "/platforms/clawdeploy/comments",
		url.Values{"body": {"   \n\t  "}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/platforms/clawdeploy", w.Header().Get("Location"))
}

func TestCommentOverLengthKeepsDraft(t *testing.T) {
	r := gin.New()
	h := NewCommentHandler()
	r.POST("/platforms/:slug/comments", asUser(&models.User{ID: 7, Username: "mittens"}), h.Create)

	body := strings.Repeat("a", models.MaxCommentLength+1)
	w := performRequest(r, http.MethodPost, "/platforms/clawdeploy/comments",
		url.Values{"body": {body}})

	assert.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	assert.NoError(t, err)
	assert.Equal(t, "/platforms/clawdeploy", loc.Path)
	assert.Equal(t, body, loc.Query().Get("draft"))
}

func TestCommentLengthCountsRunes(t *testing.T) {
	r := gin.New()
	h := NewCommentHandler()
	r.POST("/platforms/:slug/comments", asUser(&models.User{ID: 7, Username: "mittens"}), h.Create)

	// MaxCommentLength runes of multibyte text exceed the limit in bytes but
	// must NOT be rejected for length. With no database wired the handler
	// panics at the platform lookup instead, which proves validation passed.
	body := strings.Repeat("é", models.MaxCommentLength)
	assert.Panics(t, func() {
		performRequest(r, http.MethodPost, "/platforms/clawdeploy/comments",
			url.Values{"body": {body}})
	})
}
