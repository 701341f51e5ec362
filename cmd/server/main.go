package main

import (
	"log"
	"net/http"

	_ "inkpost/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"inkpost/internal/auth"
	"inkpost/internal/cache"
	"inkpost/internal/config"
	"inkpost/internal/db"
	"inkpost/internal/handler"
	"inkpost/internal/model"
	"inkpost/internal/repository"
	"inkpost/internal/router"
	"inkpost/internal/service"
	"inkpost/internal/storage"
)

// @title Inkpost API
// @version 1.0
// @description Content-publishing backend: registration, JWT authentication, post management and admin moderation.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	images, err := storage.NewDisk(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	gate := auth.NewGate(jwtService, userRepo)

	// Services
	authService := service.NewAuthService(userRepo, jwtService)
	postService := service.NewPostService(postRepo, gate, cacheClient)
	userService := service.NewUserService(userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService, images)
	userHandler := handler.NewUserHandler(postService)
	adminHandler := handler.NewAdminHandler(userService, postService)

	router.Register(
		e,
		cfg,
		gate,
		authHandler,
		postHandler,
		userHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
