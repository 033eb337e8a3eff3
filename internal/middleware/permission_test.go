package middleware

import (
	"net/http/httptest"
	"testing"

	"go-hrms/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

func guardedApp(permissions []string, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		func(c *fiber.Ctx) error {
			c.Locals(utils.UserClaimsKey, &utils.UserClaims{
				EmployeeID:  "E001",
				Permissions: permissions,
			})
			return c.Next()
		},
		guard,
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequireAnyPermission(t *testing.T) {
	tests := []struct {
		name        string
		permissions []string
		wantStatus  int
	}{
		{"view all grant", []string{"approval:view_all"}, fiber.StatusOK},
		{"manage all grant", []string{"approval:manage_all"}, fiber.StatusOK},
		{"both grants", []string{"approval:view_all", "approval:manage_all"}, fiber.StatusOK},
		{"unrelated grant", []string{"approval:approve"}, fiber.StatusForbidden},
		{"no grants", nil, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := guardedApp(tt.permissions, RequireAnyPermission("approval:view_all", "approval:manage_all"))

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/guarded", nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name        string
		permissions []string
		wantStatus  int
	}{
		{"exact grant", []string{"employee:manage"}, fiber.StatusOK},
		{"missing grant", []string{"approval:approve"}, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := guardedApp(tt.permissions, RequirePermission("employee:manage"))

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/guarded", nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
