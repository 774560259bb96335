package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/fixmycity/fixmycity-backend/internal/config"
	"github.com/fixmycity/fixmycity-backend/internal/handlers"
	"github.com/fixmycity/fixmycity-backend/internal/middleware"
	"github.com/fixmycity/fixmycity-backend/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Report routes all require a verified token and a live user record
	report := api.Group("/report", middleware.Protected(cfg), middleware.LoadUser(authService))
	report.Post("/", reportHandler.Submit)
	report.Get("/", reportHandler.List)
	report.Get("/mine", reportHandler.Mine)
	report.Get("/authority/:authority", reportHandler.ForAuthority)
	report.Put("/:id", reportHandler.Update)
	report.Delete("/:id", reportHandler.Delete)
}
