package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"copydesk/api/handlers"
	"copydesk/api/middleware"
	"copydesk/db"
)

// Deps carries the services the routes are built from.
type Deps struct {
	Chat     handlers.ChatService
	Sessions handlers.SessionService
	Uploads  handlers.UploadService
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := db.Database().RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.POST("/query", handlers.QueryHandler(deps.Chat))
		api.POST("/sessions", handlers.CreateSessionHandler(deps.Sessions))
		api.GET("/sessions", handlers.ListSessionsHandler(deps.Sessions))
		api.POST("/uploads", handlers.UploadHandler(deps.Uploads, deps.Sessions))
	}

	return r
}
