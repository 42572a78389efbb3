package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopnest/internal/config"
	"shopnest/internal/http/handlers"
	"shopnest/internal/jobs"
	applog "shopnest/internal/log"
	"shopnest/internal/notify"
	"shopnest/internal/repos"
	"shopnest/internal/services"
	"shopnest/pkg/metrics"
)

func main() {
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

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Notification sink: log by default, kafka/email when configured.
	var notifier notify.Notifier = notify.LogNotifier{}
	if k := notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic); k != nil {
		notifier = k
		log.Printf("[notify] publishing price drops to kafka")
	} else if e, err := notify.NewEmailNotifier(cfg.TemplatesDir, cfg.SMTPAddr, cfg.SMTPFrom); err != nil {
		log.Printf("[warn] email notifier disabled: %v", err)
	} else if e != nil {
		notifier = e
		log.Printf("[notify] sending price drops via %s", cfg.SMTPAddr)
	}

	pricingSvc := services.NewPricingService(repos.NewProductRepo(db), repos.NewAlertRepo(db), notifier)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and answer with a friendly message; never leak internals.
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authH.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	auth.Post("/logout", authH.Logout)
	auth.Get("/user", handlers.RequireUser(authSvc), authH.Me)

	deps := handlers.NewDeps(db)

	api.Get("/categories", deps.CatalogHandler.Categories)
	api.Get("/products", deps.CatalogHandler.Products)
	api.Get("/products/:id", deps.CatalogHandler.Product)

	cart := api.Group("/cart", handlers.RequireUser(authSvc))
	cart.Get("/", deps.CartHandler.View)
	cart.Get("/count", deps.CartHandler.Count)
	cart.Post("/add", deps.CartHandler.Add)
	cart.Put("/update/:itemId", deps.CartHandler.Update)
	cart.Delete("/remove/:itemId", deps.CartHandler.Remove)

	orders := api.Group("/orders", handlers.RequireUser(authSvc))
	orders.Post("/create", deps.OrderHandler.Create)
	orders.Get("/", deps.OrderHandler.List)
	orders.Delete("/:orderId", deps.OrderHandler.Delete)

	rewards := api.Group("/rewards", handlers.RequireUser(authSvc))
	rewards.Get("/", deps.RewardHandler.Balance)
	rewards.Get("/history", deps.RewardHandler.History)
	rewards.Post("/earn", deps.RewardHandler.Earn)
	rewards.Post("/redeem", deps.RewardHandler.Redeem)
	rewards.Post("/spin", deps.RewardHandler.Spin)

	alerts := api.Group("/price-alerts", handlers.RequireUser(authSvc))
	alerts.Post("/", deps.AlertHandler.Create)
	alerts.Get("/", deps.AlertHandler.List)
	alerts.Put("/:id", deps.AlertHandler.Update)
	alerts.Delete("/:id", deps.AlertHandler.Delete)

	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/orders", deps.AdminHandler.Orders)
	admin.Put("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
	})

	// ---------- Background repricer ----------
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go jobs.RunRepricer(ctx, pricingSvc, cfg.RepriceInterval)

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
