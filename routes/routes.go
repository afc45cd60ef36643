package routes

import (
	"net/http"
	"time"

	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers all endpoints for the availability engine.
func RegisterAvailabilityRoutes(r *gin.Engine, h *handlers.AvailabilityHandler) {
	api := r.Group("/api/availability")
	api.Use(middleware.RateLimitMiddleware())
	{
		api.GET("/days", h.GetAvailableDays)
		api.GET("/any", h.GetHasAvailability)
		api.GET("/slots", h.GetSlots)
		api.GET("/staff", h.GetStaffForDay)

		api.POST("/session", h.StartSession)
		api.GET("/session/:sessionID", h.GetSession)
		api.DELETE("/session/:sessionID", h.EndSession)
	}
}

// SetupRouter configures middleware and routes on a fresh engine.
func SetupRouter(h *handlers.AvailabilityHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(gin.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})

	RegisterAvailabilityRoutes(r, h)
	return r
}
