package report

import (
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, jwtSecret string) {
	emails := r.Group("/admin/emails")
	emails.Use(middleware.AuthMiddleware(jwtSecret), middleware.RequireRole(middleware.RoleAdmin))
	{
		emails.POST("/test", h.SendTest)
		emails.POST("/daily-summary", h.SendDaily)
		emails.POST("/monthly-summary", h.SendMonthly)
	}
}
