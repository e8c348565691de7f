package router

import (
	"github.com/gin-gonic/gin"

	"clawdex/internal/handlers"
	"clawdex/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	authHandler := handlers.NewAuthHandler()
	platformHandler := handlers.NewPlatformHandler()
	voteHandler := handlers.NewVoteHandler()
	bookmarkHandler := handlers.NewBookmarkHandler()
	commentHandler := handlers.NewCommentHandler()
	claimHandler := handlers.NewClaimHandler()
	userHandler := handlers.NewUserHandler()
	adminHandler := handlers.NewAdminHandler()
	seoHandler := handlers.NewSEOHandler()

	// Public routes
	r.GET("/", platformHandler.List)
	r.GET("/platforms/:slug", platformHandler.Detail)
	r.GET("/compare", platformHandler.Compare)
	r.GET("/u/:id", userHandler.Profile)
	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/submit", platformHandler.ShowSubmit)
		authorized.POST("/submit", platformHandler.Submit)
		authorized.POST("/upvote/:slug", voteHandler.Toggle)
		authorized.POST("/bookmark/:slug", bookmarkHandler.Toggle)
		authorized.GET("/bookmarks", bookmarkHandler.List)
		authorized.POST("/platforms/:slug/comments", commentHandler.Create)
		authorized.DELETE("/comments/:cid", commentHandler.Delete)
		authorized.POST("/platforms/:slug/claim", claimHandler.Create)
	}

	// Moderation routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/pending", adminHandler.Pending)
		admin.POST("/platforms/:slug/approve", adminHandler.ApprovePlatform)
		admin.DELETE("/platforms/:slug", adminHandler.DeletePlatform)
		admin.POST("/claims/:reference/resolve", adminHandler.ResolveClaim)
	}
}
