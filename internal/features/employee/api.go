package employee

import (
	"go-hrms/internal/config"
	"go-hrms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type EmployeeApi struct {
	controller *EmployeeController
	config     *config.Config
}

func NewEmployeeApi(controller *EmployeeController, config *config.Config) *EmployeeApi {
	return &EmployeeApi{
		controller: controller,
		config:     config,
	}
}

func (h *EmployeeApi) Setup(app *fiber.App) {
	employees := app.Group("/api/employees", middleware.AuthMiddleware(h.config.SkipAuth))

	employees.Post("/", middleware.RequirePermission("employee:manage"), h.controller.CreateEmployee)
	employees.Put("/:id", middleware.RequirePermission("employee:manage"), h.controller.UpdateEmployee)
	employees.Get("/", h.controller.ListEmployees)
	employees.Get("/:id", h.controller.GetEmployee)
}
