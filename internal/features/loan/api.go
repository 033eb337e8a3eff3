package loan

import (
	"go-hrms/internal/config"
	"go-hrms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type LoanApi struct {
	controller *LoanController
	config     *config.Config
}

func NewLoanApi(controller *LoanController, config *config.Config) *LoanApi {
	return &LoanApi{
		controller: controller,
		config:     config,
	}
}

func (h *LoanApi) Setup(app *fiber.App) {
	loans := app.Group("/api/loans", middleware.AuthMiddleware(h.config.SkipAuth))

	loans.Post("/", h.controller.CreateLoanRequest)
	loans.Get("/", h.controller.GetOwnLoans)
	loans.Get("/:id", h.controller.GetLoan)
}
