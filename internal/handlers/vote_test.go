package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpvoteRequiresLogin(t *testing.T) {
	r := gin.New()
	h := NewVoteHandler()
	r.POST("/upvote/:slug", h.Toggle)

	w := performRequest(r, http.MethodPost, "/upvote/clawdeploy", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
}

func TestBookmarkRequiresLogin(t *testing.T) {
	r := gin.New()
	h := NewBookmarkHandler()
	r.POST("/bookmark/:slug", h.Toggle)

	w := performRequest(r, http.MethodPost, "/bookmark/clawdeploy", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
}
