package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func adminTestApp(sessionUser string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if sessionUser != "" {
			c.Locals("username", sessionUser)
		}
		return c.Next()
	})
	app.Get("/admin/ping", RequireAdmin("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name        string
		sessionUser string
		wantStatus  int
	}{
		{"no session", "", fiber.StatusUnauthorized},
		{"non-admin session", "alice", fiber.StatusForbidden},
		{"admin session", "admin", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := adminTestApp(tt.sessionUser)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin/ping", nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	app := fiber.New()

	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = bearerToken(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer abc-123")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got != "abc-123" {
		t.Errorf("bearerToken = %q, want abc-123", got)
	}

	req = httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic xyz")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got != "" {
		t.Errorf("bearerToken = %q, want empty for non-bearer scheme", got)
	}
}
