package routes

import (
	"net/http"
	"time"

	"slotserve/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSlotRoutes registers the lock table endpoints.
func RegisterSlotRoutes(r *gin.Engine, sh *handlers.SlotHandler) {
	api := r.Group("/api/slots")
	{
		api.POST("/acquire", sh.AcquireSlot)
		api.POST("/release", sh.ReleaseSlot)
		api.GET("/status", sh.SlotStatus)
	}
}

// RegisterAppointmentRoutes registers the reservation lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, ah *handlers.AppointmentHandler) {
	api := r.Group("/api/appointments")
	{
		api.POST("", ah.CreateProvisional)
		api.POST("/:id/confirm", ah.ConfirmAppointment)
		api.DELETE("/:id", ah.CancelAppointment)
	}
}

// RegisterJobRoutes registers scheduler introspection endpoints.
func RegisterJobRoutes(r *gin.Engine, jh *handlers.JobsHandler) {
	api := r.Group("/api/jobs")
	{
		api.GET("", jh.ListJobs)
		api.POST("/:name/run", jh.RunJob)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, sh *handlers.SlotHandler, ah *handlers.AppointmentHandler, jh *handlers.JobsHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSlotRoutes(r, sh)
	RegisterAppointmentRoutes(r, ah)
	RegisterJobRoutes(r, jh)
	RegisterHealthRoute(r)
}
