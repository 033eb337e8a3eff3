package leave

import (
	"go-hrms/internal/config"
	"go-hrms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type LeaveApi struct {
	controller *LeaveController
	config     *config.Config
}

func NewLeaveApi(controller *LeaveController, config *config.Config) *LeaveApi {
	return &LeaveApi{
		controller: controller,
		config:     config,
	}
}

func (h *LeaveApi) Setup(app *fiber.App) {
	leave := app.Group("/api/leave", middleware.AuthMiddleware(h.config.SkipAuth))

	leave.Post("/", h.controller.CreateLeaveRequest)
	leave.Get("/", h.controller.GetOwnRequests)
	leave.Get("/balance/:type", h.controller.GetBalance)
	leave.Put("/balance", middleware.RequirePermission("employee:manage"), h.controller.SetBalance)
}
