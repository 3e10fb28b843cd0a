package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/config"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/http/handlers"
	applog "github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/log"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/repos"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.GeminiKey == "" {
		log.Println("[warn] GEMINI_API_KEY not set; AI assistant disabled until provided")
	}
	// Model backend wiring is provider-specific; without one the assistant
	// endpoint answers 503.
	deps := handlers.NewDeps(db, cfg, nil)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status": "error", "message": "internal server error",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	api := app.Group("/api")

	api.Post("/product/add", deps.ProductHandler.Add)
	api.Put("/product/update", deps.ProductHandler.Update)
	api.Delete("/product/delete", deps.ProductHandler.Delete)
	api.Get("/product/list", deps.ProductHandler.List)
	api.Get("/product/search", deps.ProductHandler.Search)

	api.Post("/category/add", deps.CategoryHandler.Add)
	api.Post("/category_add", deps.CategoryHandler.Add) // legacy alias kept for old clients
	api.Put("/category/update", deps.CategoryHandler.Update)
	api.Delete("/category/delete", deps.CategoryHandler.Delete)
	api.Get("/category/list", deps.CategoryHandler.List)
	api.Get("/category/search", deps.CategoryHandler.Search)

	api.Post("/sale/add", deps.SaleHandler.Add)
	api.Get("/sale/list", deps.SaleHandler.List)
	api.Get("/sale/search", deps.SaleHandler.Search)
	api.Get("/sale/sell_this_week", deps.ReportHandler.SellThisWeek)
	api.Get("/sale/sell_this_month", deps.ReportHandler.SellThisMonth)
	api.Get("/sale/sell_this_year", deps.ReportHandler.SellThisYear)
	api.Get("/sale/sell_per_week", deps.ReportHandler.SellPerWeek)
	api.Get("/sale/sell_per_month", deps.ReportHandler.SellPerMonth)
	api.Get("/sale/sell_per_year", deps.ReportHandler.SellPerYear)

	api.Post("/transaction/add", deps.TransactionHandler.Add)
	api.Get("/transaction/list", deps.TransactionHandler.List)
	api.Get("/transaction/employee_transaction", deps.TransactionHandler.EmployeeTransactions)

	// Staff accounts (login throttled)
	api.Post("/users/register", deps.UserHandler.Register)
	api.Post("/users/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status": "error", "message": "Too many attempts. Please try again later.",
			})
		},
	}), deps.UserHandler.Login)
	api.Post("/users/password/change", deps.UserHandler.ChangePassword)
	api.Delete("/users/delete", deps.UserHandler.Delete)
	api.Post("/token/refresh", deps.UserHandler.Refresh)
	api.Get("/users/me", handlers.RequireAuth(deps.Auth), deps.UserHandler.Me)
	api.Get("/users/list", handlers.RequireAuth(deps.Auth),
		handlers.RequireRole(domain.RoleAdmin), deps.UserHandler.List)

	api.Post("/assistant", deps.AssistantHandler.Ask)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status": "error", "message": "Not found",
		})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
