package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kevinsgzcode/dashboard-bets-core/handlers"
	"github.com/kevinsgzcode/dashboard-bets-core/models"
	"github.com/kevinsgzcode/dashboard-bets-core/services"
	"github.com/kevinsgzcode/dashboard-bets-core/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Pick{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	pickService := services.NewPickService(db)
	statsService := services.NewStatsService(db)
	userService := services.NewUserService(db)
	settlementService := services.NewSettlementService(
		db,
		pickService,
		workers.NewScoreboardClient(),
		workers.NewSportsDBClient(),
	)

	syncInterval := 10 * time.Minute
	if raw := os.Getenv("RESULT_SYNC_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			syncInterval = parsed
		} else {
			log.Printf("⚠️  Invalid RESULT_SYNC_INTERVAL %q, keeping %s", raw, syncInterval)
		}
	}
	settlementService.StartResultScheduler(syncInterval)

	handlers.SetupUserRoutes(app, userService)
	handlers.SetupPickRoutes(app, db, pickService, statsService, settlementService)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// Dashboard assets (optional; the API works without them)
	app.Static("/", "./public")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ Result scheduler running (every %s)", syncInterval)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
