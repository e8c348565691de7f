package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clawdex/internal/middleware"
	"clawdex/internal/models"
	"clawdex/internal/optimistic"
)

// Live per-(user, entry) controls shared by the toggle and comment handlers.
// Bounded; an evicted control reseeds from the store on next use.
var (
	toggles        = optimistic.NewRegistry[*optimistic.Toggle](4096)
	commentThreads = optimistic.NewRegistry[*optimistic.List[models.Comment]](1024)
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject Current User
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// HTMX Redirect helper
func HtmxRedirect(c *gin.Context, path string) {
	c.Header("HX-Redirect", path)
	c.Status(http.StatusOK) // HTMX handles the redirect on client side via header
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// currentUser resolves the signed-in identity, or nil. Mutating handlers
// must call this before touching any control or the store.
func currentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}
