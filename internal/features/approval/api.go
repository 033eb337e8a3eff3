package approval

import (
	"go-hrms/internal/config"
	"go-hrms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ApprovalApi struct {
	controller *ApprovalController
	config     *config.Config
}

func NewApprovalApi(controller *ApprovalController, config *config.Config) *ApprovalApi {
	return &ApprovalApi{
		controller: controller,
		config:     config,
	}
}

func (h *ApprovalApi) Setup(app *fiber.App) {
	approvals := app.Group("/api/approvals", middleware.AuthMiddleware(h.config.SkipAuth))

	approvals.Get("/", h.controller.GetAllRequests)
	approvals.Get("/pending", h.controller.GetPendingApprovals)
	approvals.Get("/:id", h.controller.GetRequest)

	approvals.Post("/:id/approve", h.controller.ApproveRequest)
	approvals.Post("/:id/reject", h.controller.RejectRequest)
	approvals.Post("/:id/cancel", h.controller.CancelRequest)
	approvals.Post("/:id/delegate", h.controller.DelegateStep)
	approvals.Post("/:id/escalate", h.controller.EscalateRequest)
}
