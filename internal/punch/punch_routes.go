package punch

import (
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/geofence"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts the clock endpoints. The location check lives
// here rather than under /admin because employees call it before
// punching. rdb may be nil; idempotency is then skipped.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, geoHandler *geofence.Handler, jwtSecret string, rdb *redis.Client) {
	punches := r.Group("/punches")
	punches.Use(middleware.AuthMiddleware(jwtSecret))
	{
		record := []gin.HandlerFunc{middleware.RateLimitByUser(2, 5)}
		if rdb != nil {
			record = append(record, middleware.Idempotency(rdb))
		}
		record = append(record, h.Record)

		punches.POST("", record...)
		punches.GET("/status", h.Status)
		punches.GET("/history", h.History)
		punches.POST("/check-location", geoHandler.CheckLocation)
	}
}
