package auth

import (
	"go-hrms/internal/config"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, config *config.Config) *AuthApi {
	return &AuthApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the public auth routes
func (h *AuthApi) Setup(app *fiber.App) {
	app.Post("/api/login", h.controller.Login)
}
