package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/moviematch/backend/internal/config"
	"github.com/moviematch/backend/internal/database"
	"github.com/moviematch/backend/internal/handlers"
	"github.com/moviematch/backend/internal/middleware"
	"github.com/moviematch/backend/internal/services"
	"github.com/moviematch/backend/internal/storage"
	"github.com/moviematch/backend/pkg/logger"
	"github.com/moviematch/backend/pkg/utils"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	avatarStore, err := storage.NewAvatarStore(cfg.MinIO)
	if err != nil {
		log.Fatalf("minio initialization failed: %v", err)
	}
	if err := avatarStore.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("failed ensuring avatar bucket: %v", err)
	}

	socialService := services.NewSocialService(db)
	reviewService := services.NewReviewService(db)

	authHandler := handlers.NewAuthHandler(db, avatarStore)
	usersHandler := handlers.NewUsersHandler(socialService)
	reviewsHandler := handlers.NewReviewsHandler(reviewService)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)
	authRoutes.Post("/onboarding", authMiddleware.RequireAuth, authHandler.Onboard)
	authRoutes.Put("/avatar", authMiddleware.RequireAuth, authHandler.UploadAvatar)

	userRoutes := api.Group("/users", authMiddleware.RequireAuth)
	userRoutes.Get("/", usersHandler.Recommended)
	userRoutes.Get("/friends", usersHandler.Friends)
	userRoutes.Get("/friend-requests", usersHandler.FriendRequests)
	userRoutes.Get("/outgoing-friend-requests", usersHandler.OutgoingFriendRequests)
	userRoutes.Post("/friend-request/:id", usersHandler.SendFriendRequest)
	userRoutes.Put("/friend-request/:id/accept", usersHandler.AcceptFriendRequest)

	reviewRoutes := api.Group("/reviews", authMiddleware.RequireAuth)
	reviewRoutes.Post("/", reviewsHandler.Create)
	reviewRoutes.Get("/", reviewsHandler.List)
	reviewRoutes.Get("/user/:userId", reviewsHandler.ListByUser)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"address": listenAddr,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
