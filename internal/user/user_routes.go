package user

import (
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, jwtSecret string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtSecret), middleware.RequireRole(middleware.RoleAdmin))
	{
		admin.GET("/users", h.GetAll)
	}
}
