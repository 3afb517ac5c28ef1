package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/faa35/UHFC/internal/config"
	"github.com/faa35/UHFC/internal/database"
	"github.com/faa35/UHFC/internal/metrics"
	"github.com/faa35/UHFC/internal/middleware"
	"github.com/faa35/UHFC/internal/modules/admin"
	"github.com/faa35/UHFC/internal/modules/auth"
	"github.com/faa35/UHFC/internal/modules/booking"
	"github.com/faa35/UHFC/internal/modules/schedule"
	jwtsvc "github.com/faa35/UHFC/internal/pkg/jwt"
	"github.com/faa35/UHFC/internal/realtime"
	"github.com/faa35/UHFC/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	profileRepo := repository.NewProfileRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := realtime.NewHub()
	defer hub.Close()

	authService := auth.NewService(profileRepo, tokenRepo, j, cfg.RefreshTokenPepper, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService, cfg)

	bookingService := booking.NewService(bookingRepo, profileRepo, hub)
	bookingHandler := booking.NewHandler(bookingService)

	scheduleService := schedule.NewService(bookingRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	adminService := admin.NewService(bookingRepo, hub)
	adminHandler := admin.NewHandler(adminService)

	feedHandler := realtime.NewHandler(hub)

	gate := middleware.NewAdminGate(j, authService, profileRepo, cfg)

	r := gin.New()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		scheduleHandler.RegisterRoutes(v1)
		feedHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)

			// JSON admin API for non-browser clients; the browser path
			// goes through the /admin gate below.
			apiAdmin := protected.Group("/admin")
			apiAdmin.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(apiAdmin)
		}
	}

	adminGroup := r.Group("/admin", gate.Handler())
	{
		adminHandler.RegisterRoutes(adminGroup)
	}

	metrics.Register()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
