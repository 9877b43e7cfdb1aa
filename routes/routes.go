package routes

import (
	"net/http"
	"time"

	"glamsalon/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoint groups onto the router.
func RegisterRoutes(
	r *gin.Engine,
	chat *handlers.ChatHandler,
	docs *handlers.DocumentHandler,
	admin *handlers.AdminHandler,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	aiGroup := r.Group("/api/ai")
	{
		aiGroup.POST("/chat", chat.HandleChat)
	}

	docGroup := r.Group("/api/documents")
	{
		docGroup.POST("/upload", docs.UploadDocuments)
	}

	adminGroup := r.Group("/api/admin")
	{
		adminGroup.GET("/bookings", admin.ListBookings)
		adminGroup.GET("/stats", admin.GetStats)
	}
}
