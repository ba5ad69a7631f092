package geofence

import (
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes mounts the zone configuration endpoints; admin only.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler, jwtSecret string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtSecret), middleware.RequireRole(middleware.RoleAdmin))
	{
		admin.GET("/geofence", h.GetConfig)
		admin.PUT("/geofence", h.UpdateConfig)
	}
}
