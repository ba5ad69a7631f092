package app

import (
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/auth"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/config"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/geofence"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/punch"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/report"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	st *stores,
	rdb *redis.Client,
	m report.Mailer,
) error {
	// --- Services ---
	geofenceService := geofence.NewService(st.geofence)
	punchService := punch.NewService(st.punches, geofenceService, cfg.Location)
	authService := auth.NewService(st.users, cfg.JWTSecret)
	userService := user.NewService(st.users)
	reportService := report.NewService(st.punches, st.users, m, cfg.AdminEmail, cfg.Location)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	punchHandler := punch.NewHandler(punchService)
	if rdb != nil {
		punchHandler = punch.NewHandlerWithRedis(punchService, rdb)
	}
	geofenceHandler := geofence.NewHandler(geofenceService)
	userHandler := user.NewHandler(userService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		punch.RegisterRoutes(api, punchHandler, geofenceHandler, cfg.JWTSecret, rdb)
		geofence.RegisterAdminRoutes(api, geofenceHandler, cfg.JWTSecret)
		user.RegisterRoutes(api, userHandler, cfg.JWTSecret)
		report.RegisterRoutes(api, reportHandler, cfg.JWTSecret)
	}

	return nil
}
