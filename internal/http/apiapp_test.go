package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"shopnest/internal/http/handlers"
	applog "shopnest/internal/log"
	"shopnest/internal/repos"
	"shopnest/internal/services"
)

// newAPIApp wires the JSON API the way main does, against a seeded in-memory
// database. OpenDB seeds u-demo (customer), u-admin (admin) and the demo
// catalog.
func newAPIApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	deps := handlers.NewDeps(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong. Please try again.",
			})
		},
	})
	app.Use(requestid.New())

	api := app.Group("/api")

	orders := api.Group("/orders", handlers.RequireUser(authSvc))
	orders.Post("/create", deps.OrderHandler.Create)
	orders.Get("/", deps.OrderHandler.List)
	orders.Delete("/:orderId", deps.OrderHandler.Delete)

	rewards := api.Group("/rewards", handlers.RequireUser(authSvc))
	rewards.Get("/", deps.RewardHandler.Balance)
	rewards.Post("/spin", deps.RewardHandler.Spin)

	alerts := api.Group("/price-alerts", handlers.RequireUser(authSvc))
	alerts.Post("/", deps.AlertHandler.Create)
	alerts.Get("/", deps.AlertHandler.List)
	alerts.Put("/:id", deps.AlertHandler.Update)
	alerts.Delete("/:id", deps.AlertHandler.Delete)

	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/orders", deps.AdminHandler.Orders)
	admin.Put("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
	})
	return app, db
}

func bindSession(t *testing.T, db *sqlx.DB, sid, userID string) {
	t.Helper()
	if err := repos.NewUserRepo(db).BindSession(sid, userID); err != nil {
		t.Fatal(err)
	}
}

func jsonReq(method, path, sid, body string) *http.Request {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}
