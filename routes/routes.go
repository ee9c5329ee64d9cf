package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"webfree/handlers"
	"webfree/middleware"
)

// SetupRouter wires the node's HTTP surface. syncHandler, when non-nil, is
// mounted at /sync so sibling nodes can dial this node as their broadcast
// relay.
func SetupRouter(api *handlers.API, syncHandler http.HandlerFunc) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if syncHandler != nil {
		router.GET("/sync", func(c *gin.Context) {
			syncHandler(c.Writer, c.Request)
		})
	}

	// Public routes.
	router.POST("/api/signup", api.Signup)
	router.POST("/api/login", api.Login)

	protected := router.Group("/api")
	protected.Use(middleware.JWTAuth())
	protected.Use(middleware.SessionGuard(api.Store))

	protected.POST("/logout", api.Logout)
	protected.GET("/me", api.Me)
	protected.PUT("/me", api.UpdateProfile)
	protected.PUT("/me/password", api.UpdatePassword)
	protected.PUT("/me/avatar", api.UpdateAvatar)

	protected.GET("/users", api.Users)
	protected.GET("/users/:id", api.GetUser)
	protected.POST("/users/:id/follow", api.ToggleFollow)

	protected.GET("/feed", api.Feed)
	protected.POST("/posts", api.CreatePost)
	protected.POST("/posts/:id/like", api.ToggleLike)
	protected.POST("/posts/:id/favorite", api.ToggleFavorite)
	protected.POST("/posts/:id/comments", api.AddComment)

	protected.GET("/messages/:id", api.Conversation)
	protected.POST("/messages", api.SendMessage)
	protected.POST("/messages/:id/read", api.MarkMessagesAsRead)

	protected.GET("/notifications", api.Notifications)
	protected.POST("/notifications/read", api.MarkNotificationsAsRead)
	protected.GET("/unread", api.Unread)
	protected.GET("/toast", api.ToastState)

	// Admin operations; the store enforces the role, these are just paths.
	protected.DELETE("/posts/:id", api.DeletePost)
	protected.DELETE("/posts/:id/comments/:commentId", api.DeleteComment)
	protected.POST("/users/:id/ban", api.ToggleBan)
	protected.POST("/users/:id/donor", api.ToggleDonor)
	protected.DELETE("/users/:id", api.DeleteUser)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
		}
	})

	return router
}
