package audit

import (
	"strconv"

	"go-hrms/internal/config"
	"go-hrms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	service AuditService
	config  *config.Config
}

func NewAuditApi(service AuditService, config *config.Config) *AuditApi {
	return &AuditApi{
		service: service,
		config:  config,
	}
}

func (h *AuditApi) Setup(app *fiber.App) {
	logs := app.Group("/api/audit", middleware.AuthMiddleware(h.config.SkipAuth), middleware.RequireAnyPermission("approval:view_all", "approval:manage_all"))

	logs.Get("/", func(ctx *fiber.Ctx) error {
		limit, _ := strconv.ParseInt(ctx.Query("limit", "100"), 10, 64)
		entries, err := h.service.ListRecent(ctx.UserContext(), limit)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.JSON(entries)
	})

	logs.Get("/:module/:id", func(ctx *fiber.Ctx) error {
		entries, err := h.service.GetRecordHistory(ctx.UserContext(), ctx.Params("module"), ctx.Params("id"))
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.JSON(entries)
	})
}
