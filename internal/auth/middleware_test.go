package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

func newGateApp(tm *TokenManager) *fiber.App {
	app := fiber.New()
	mw := NewMiddleware(tm)
	app.Use(mw.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(identity.Subject)
	})
	return app
}

func TestMiddlewareAnonymousPassThrough(t *testing.T) {
	tm, _ := newTestManager(t, time.Hour)
	app := newGateApp(tm)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "anonymous" {
		t.Errorf("body = %q, want anonymous", body)
	}
}

func TestMiddlewareValidToken(t *testing.T) {
	tm, _ := newTestManager(t, time.Hour)
	app := newGateApp(tm)

	tokenStr, _, err := tm.GenerateToken("bob", []domain.Role{domain.RoleClient})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "bob" {
		t.Errorf("body = %q, want bob", body)
	}
}

func TestMiddlewareExpiredToken(t *testing.T) {
	tm, base := newTestManager(t, 10*time.Minute)

	tokenStr, _, err := tm.GenerateToken("bob", []domain.Role{domain.RoleClient})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	tm.now = func() time.Time { return base.Add(time.Hour) }

	app := newGateApp(tm)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "Token has expired. Please log in again." {
		t.Errorf("body = %q", body)
	}
}

func TestMiddlewareInvalidToken(t *testing.T) {
	tm, _ := newTestManager(t, time.Hour)
	app := newGateApp(tm)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "Invalid token." {
		t.Errorf("body = %q", body)
	}
}

func TestMiddlewareNonBearerSchemePassesThrough(t *testing.T) {
	tm, _ := newTestManager(t, time.Hour)
	app := newGateApp(tm)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "anonymous" {
		t.Errorf("body = %q, want anonymous", body)
	}
}
