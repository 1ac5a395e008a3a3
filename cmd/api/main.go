package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"ghiblify_backend/internal/controller"
	"ghiblify_backend/internal/middleware"
	"ghiblify_backend/internal/model"
	"ghiblify_backend/internal/store"
	"ghiblify_backend/pkg/config"
	"ghiblify_backend/pkg/cron"
	"ghiblify_backend/pkg/database"
	"ghiblify_backend/pkg/email"
	"ghiblify_backend/pkg/generator"
	"ghiblify_backend/pkg/utils/jwt"
	"ghiblify_backend/pkg/utils/storage"
)

func setupRoutes(
	app *fiber.App,
	authCtrl *controller.AuthController,
	uploadCtrl *controller.UploadController,
	genCtrl *controller.GenerationController,
	subCtrl *controller.SubscriptionController,
) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", authCtrl.Register)
	auth.Post("/login", authCtrl.Login)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", authCtrl.GetMe)
	protected.Post("/upload", uploadCtrl.UploadImage)
	protected.Post("/ghibli", genCtrl.Generate)
	protected.Get("/generations", genCtrl.ListGenerations)

	// Subscription routes
	subscriptions := api.Group("/subscriptions")

	// Stripe checkout süreç sonuçları
	subscriptions.Get("/payment-success", subCtrl.HandleSubscriptionSuccess)
	subscriptions.Get("/payment-cancelled", subCtrl.HandleSubscriptionCancel)

	subProtected := subscriptions.Use(middleware.AuthMiddleware())
	subProtected.Post("/create-checkout-session", subCtrl.CreateCheckoutSession)
	subProtected.Get("/my", subCtrl.GetMySubscription)

	// Stripe webhook: imza ham gövde üzerinden doğrulanır, auth yok
	api.Post("/webhook", subCtrl.HandleStripeWebhook)
}

func main() {
	cfg := config.Load()

	jwt.Init(cfg.JWT.Secret)

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	db, err := database.InitDB(cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.MigrateDatabase(db,
		&model.User{},
		&model.Generation{},
		&model.GenerationStats{},
	); err != nil {
		log.Printf("Migration warning: %v", err)
	}

	var mailer *email.EmailService
	if cfg.Email.APIKey != "" {
		mailer, err = email.NewEmailService(cfg.Email.APIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Could not initialize email service: %v", err)
		}
	}

	st, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatal("Could not initialize storage:", err)
	}

	gen, err := generator.New(cfg.Replicate)
	if err != nil {
		log.Fatal("Could not initialize generator:", err)
	}

	users := store.NewUserStore(db)
	generations := store.NewGenerationStore(db)

	authCtrl := controller.NewAuthController(users, mailer)
	uploadCtrl := controller.NewUploadController(users, st)
	genCtrl := controller.NewGenerationController(users, generations, gen, st)
	subCtrl := controller.NewSubscriptionController(users, mailer, cfg.Stripe, cfg.Server.BaseURL)

	cron.InitTrialExpiryCron(db, mailer)
	cron.InitGenerationStatsCron(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Sınıflandırılmamış hatalar dışarıya generic döner
			log.Printf("Unhandled error on %s: %v", c.Path(), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, authCtrl, uploadCtrl, genCtrl, subCtrl)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
