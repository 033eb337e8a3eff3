package report

import (
	"go-hrms/internal/config"
	"go-hrms/internal/features/approval"
	"go-hrms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	controller *ReportController
	config     *config.Config
}

func NewReportApi(controller *ReportController, config *config.Config) *ReportApi {
	return &ReportApi{
		controller: controller,
		config:     config,
	}
}

func (h *ReportApi) Setup(app *fiber.App) {
	reports := app.Group("/api/reports", middleware.AuthMiddleware(h.config.SkipAuth))

	reports.Get("/approvals", middleware.RequireAnyPermission(approval.PermViewAll, approval.PermManageAll), h.controller.ExportApprovals)
}
