package overtime

import (
	"go-hrms/internal/config"
	"go-hrms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type OvertimeApi struct {
	controller *OvertimeController
	config     *config.Config
}

func NewOvertimeApi(controller *OvertimeController, config *config.Config) *OvertimeApi {
	return &OvertimeApi{
		controller: controller,
		config:     config,
	}
}

func (h *OvertimeApi) Setup(app *fiber.App) {
	overtime := app.Group("/api/overtime", middleware.AuthMiddleware(h.config.SkipAuth))

	overtime.Post("/", h.controller.CreateOvertimeRequest)
	overtime.Get("/", h.controller.GetOwnRequests)
}
