package main

import (
	"log"
	"net/http"

	_ "medibook/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"medibook/internal/auth"
	"medibook/internal/cache"
	"medibook/internal/config"
	"medibook/internal/db"
	"medibook/internal/handler"
	"medibook/internal/model"
	"medibook/internal/repository"
	"medibook/internal/router"
	"medibook/internal/service"
)

// @title Medibook API
// @version 1.0
// @description Doctor appointment booking API with role-based dashboards for patients, doctors and admins.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Appointment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	appointmentRepo := repository.NewAppointmentRepository(gormDB)
	analyticsRepo := repository.NewAnalyticsRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo)
	analyticsService := service.NewAnalyticsService(analyticsRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, userService)
	adminHandler := handler.NewAdminHandler(userService, analyticsService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		appointmentHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
