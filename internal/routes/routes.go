package routes

import (
	"time"

	"github.com/careerboard/careerboard-backend/internal/config"
	"github.com/careerboard/careerboard-backend/internal/handlers"
	"github.com/careerboard/careerboard-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	applicationHandler *handlers.ApplicationHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)

	// Uploaded files are served back by filename.
	app.Static("/uploads", cfg.UploadDir)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Applications — everything below requires a valid bearer token.
	applications := app.Group("/applications", middleware.JWTProtected(cfg))
	applications.Post("/", applicationHandler.Create)
	applications.Get("/", applicationHandler.List)
	applications.Get("/:id", applicationHandler.Get)
	applications.Put("/:id", applicationHandler.Update)
	applications.Delete("/:id", applicationHandler.Delete)

	applications.Patch("/:id/status", applicationHandler.SetStatus)
	applications.Post("/:id/rounds", applicationHandler.AddRound)
	applications.Patch("/:id/rounds/:roundId", applicationHandler.SetRoundStatus)
	applications.Delete("/:id/rounds/:roundId", applicationHandler.DeleteRound)

	applications.Post("/:id/attachments", applicationHandler.AddAttachment)
	applications.Delete("/:id/attachments/:attachmentId", applicationHandler.DeleteAttachment)
}
