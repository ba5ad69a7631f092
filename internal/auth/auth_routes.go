package auth

import (
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	group := r.Group("/auth")
	{
		// Brute-force guard: slow refill, small burst per IP.
		group.POST("/login", middleware.RateLimitByIP(0.5, 5), h.Login)
		group.POST("/register", middleware.RateLimitByIP(0.5, 5), h.Register)
		group.GET("/verify", h.Verify)
	}
}
