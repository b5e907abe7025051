package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"onehux_backend/internal/controller"
	"onehux_backend/internal/middleware"
	"onehux_backend/internal/model"
	"onehux_backend/pkg/cache"
	"onehux_backend/pkg/config"
	"onehux_backend/pkg/database"
	"onehux_backend/pkg/email"
	"onehux_backend/pkg/jobs"
	"onehux_backend/pkg/storage"
	"onehux_backend/pkg/utils/jwt"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/health", controller.Health)

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Post("/logout", middleware.AuthMiddleware(), controller.Logout)

	api.Get("/me", middleware.AuthMiddleware(), controller.GetMe)

	// Quote Routes
	quotes := api.Group("/quotes")
	quotes.Post("/", middleware.OptionalAuth(), controller.CreateQuote)
	quotes.Get("/estimate", controller.EstimateCost)
	quotes.Get("/:id", middleware.AuthMiddleware(), controller.QuoteDetail)

	api.Get("/my-quotes", middleware.AuthMiddleware(), controller.MyQuotes)

	// Newsletter Routes
	newsletter := api.Group("/newsletter")
	newsletter.Post("/subscribe", controller.Subscribe)
	newsletter.Post("/unsubscribe", controller.Unsubscribe)

	// Contact form
	api.Post("/contact", controller.SubmitContact)

	// Profile routes
	profile := api.Group("/profile", middleware.AuthMiddleware())
	profile.Get("/", controller.GetProfile)
	profile.Put("/", controller.UpdateProfile)
	profile.Post("/avatar", controller.UploadAvatar)

	// Dashboard
	api.Get("/dashboard", middleware.AuthMiddleware(), controller.Dashboard)

	// Admin back office
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.StaffOnly())
	admin.Get("/stats", controller.AdminStats)
	admin.Get("/activity", controller.AdminActivity)
	admin.Post("/newsletter", controller.AdminSendNewsletter)
	admin.Get("/quotes", controller.AdminListQuotes)
	admin.Get("/quotes/:id", controller.AdminGetQuote)
	admin.Put("/quotes/:id", controller.AdminUpdateQuote)

	// Site pages and crawler endpoints
	app.Get("/", controller.Page("home"))
	app.Get("/about", controller.Page("about"))
	app.Get("/services", controller.Page("services"))
	app.Get("/contact", controller.Page("contact"))
	app.Get("/faq", controller.Page("faq"))
	app.Get("/privacy-policy", controller.Page("privacy-policy"))
	app.Get("/terms-and-conditions", controller.Page("terms-and-conditions"))
	app.Get("/return-policy", controller.Page("return-policy"))

	app.Get("/sitemap.xml", controller.Sitemap)
	app.Get("/robots.txt", controller.Robots)
	app.Get("/humans.txt", controller.Humans)
	app.Get("/.well-known/security.txt", controller.SecurityTxt)
}

func main() {
	cfg := config.Load()

	if err := email.InitEmailService(cfg.Email.ResendAPIKey, cfg.Email.From); err != nil {
		log.Fatal("Could not initialize email service:", err)
	}

	jwt.Init(cfg.JWT.Secret, cfg.JWT.TTL)
	storage.Init(cfg)
	cache.Init(cfg)
	jobs.InitClient(cfg)
	controller.InitPages(cfg)

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Session{},
		&model.QuoteRequest{},
		&model.NewsletterSubscription{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.Maintenance(cfg))

	if cfg.Flags.RateLimitEnable {
		app.Use(limiter.New(limiter.Config{
			Max:        60,
			Expiration: 1 * time.Minute,
		}))
	}

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
