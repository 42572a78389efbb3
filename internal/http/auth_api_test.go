package handlers_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"shopnest/internal/http/handlers"
	"shopnest/internal/repos"
	"shopnest/internal/services"
)

func newAuthApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New()
	auth := app.Group("/api/auth")
	auth.Post("/register", authH.Register)
	auth.Post("/login", authH.Login)
	auth.Post("/logout", authH.Logout)
	auth.Get("/user", handlers.RequireUser(authSvc), authH.Me)
	return app, db
}

func TestRegisterLoginFlow(t *testing.T) {
	app, _ := newAuthApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/auth/register", "",
		`{"email":"new@shopnest.test","name":"New User","password":"Sunny4ever"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("register: expected 201, got %d: %s", resp.StatusCode, raw)
	}
	raw, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(raw), "Sunny4ever") || strings.Contains(string(raw), "password_hash") {
		t.Fatalf("credential material leaked: %s", raw)
	}

	// Registration binds the session; the cookie works immediately.
	var sid string
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatal("no sid cookie issued on register")
	}
	me, err := app.Test(jsonReq("GET", "/api/auth/user", sid, ""))
	if err != nil {
		t.Fatal(err)
	}
	if me.StatusCode != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", me.StatusCode)
	}

	// Duplicate email.
	resp, err = app.Test(jsonReq("POST", "/api/auth/register", "",
		`{"email":"new@shopnest.test","name":"Again","password":"Sunny4ever"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", resp.StatusCode)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app, _ := newAuthApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/auth/login", "",
		`{"email":"demo@shopnest.test","password":"WrongPass1"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	// Same message whether the email exists or not.
	if !strings.Contains(string(raw), "Invalid email or password") {
		t.Fatalf("unexpected body: %s", raw)
	}

	resp, err = app.Test(jsonReq("POST", "/api/auth/login", "",
		`{"email":"ghost@shopnest.test","password":"WrongPass1"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401, got %d", resp.StatusCode)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	app, _ := newAuthApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/auth/register", "",
		`{"email":"weak@shopnest.test","name":"Weak","password":"short"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestLogoutKillsSession(t *testing.T) {
	app, db := newAuthApp(t)
	bindSession(t, db, "sid-demo", "u-demo")

	resp, err := app.Test(jsonReq("POST", "/api/auth/logout", "sid-demo", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}
	me, err := app.Test(jsonReq("GET", "/api/auth/user", "sid-demo", ""))
	if err != nil {
		t.Fatal(err)
	}
	if me.StatusCode != http.StatusUnauthorized {
		t.Fatalf("session survived logout: %d", me.StatusCode)
	}
}
