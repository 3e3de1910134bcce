package routes

import (
	"net/http"
	"time"

	"nutrivida/handlers"
	"nutrivida/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes registers the recipient-facing notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.GET("/user/:userID", hb.Notification.ListByUserHandler)
		api.GET("/user/:userID/unread-count", hb.Notification.UnreadCountHandler)
		api.PATCH("/:id/read", hb.Notification.MarkReadHandler)
	}
}

// RegisterSessionRoutes registers the session lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.POST("", hb.Session.CreateHandler)
		api.GET("/:id", hb.Session.GetHandler)
		api.POST("/:id/start", hb.Session.StartHandler)
		api.POST("/:id/join", hb.Session.JoinHandler)
		api.POST("/:id/finish", hb.Session.FinishHandler)
		api.POST("/:id/cancel", hb.Session.CancelHandler)
		api.PUT("/:id/reschedule", hb.Session.RescheduleHandler)
	}
}

// RegisterIntakeRoutes registers intake logging.
func RegisterIntakeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/intakes", hb.Intake.CreateHandler)
}

// RegisterAdminRoutes registers the manual scan triggers.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin/scans")
	{
		api.GET("", hb.Scan.ListHandler)
		api.POST("/:name/run", hb.Scan.RunHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes sets up CORS and hooks every route group onto the engine.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterNotificationRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterIntakeRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
