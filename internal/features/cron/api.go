package cron_feature

import (
	"go-hrms/internal/config"
	"go-hrms/internal/features/approval"
	"go-hrms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CronApi struct {
	cronController *CronController
	config         *config.Config
}

func NewCronApi(cronController *CronController, config *config.Config) *CronApi {
	return &CronApi{
		cronController: cronController,
		config:         config,
	}
}

func (h *CronApi) Setup(app *fiber.App) {
	jobs := app.Group("/api/cron", middleware.AuthMiddleware(h.config.SkipAuth))

	jobs.Post("/overdue-digest", middleware.RequirePermission(approval.PermManageAll), h.cronController.RunOverdueDigest)
}
