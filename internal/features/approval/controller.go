package approval

import (
	"errors"

	common_models "go-hrms/internal/common/models"
	"go-hrms/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ApprovalController struct {
	Service ApprovalService
}

func NewApprovalController(service ApprovalService) *ApprovalController {
	return &ApprovalController{Service: service}
}

func callerFromClaims(ctx *fiber.Ctx) common_models.CallerContext {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return common_models.CallerContext{
		EmployeeID:   claims.EmployeeID,
		EmployeeName: claims.EmployeeName,
		Permissions:  claims.Permissions,
	}
}

// renderError maps the typed error taxonomy onto HTTP statuses, always with
// a {success:false, error} body so the UI can render inline messages.
func renderError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var authErr *AuthorizationError
	var conflictErr *StateConflictError
	var storeErr *StoreError
	var validationErr *ValidationError

	switch {
	case errors.Is(err, ErrRequestNotFound):
		status = fiber.StatusNotFound
	case errors.As(err, &authErr):
		status = fiber.StatusForbidden
	case errors.As(err, &conflictErr):
		status = fiber.StatusConflict
	case errors.As(err, &validationErr):
		status = fiber.StatusBadRequest
	case errors.As(err, &storeErr):
		status = fiber.StatusServiceUnavailable
	}

	return ctx.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
}

// GetAllRequests godoc
// @Summary List approval requests visible to the caller
// @Tags approvals
// @Produce json
// @Router /api/approvals [get]
func (c *ApprovalController) GetAllRequests(ctx *fiber.Ctx) error {
	requests, err := c.Service.GetAllRequests(ctx.UserContext(), callerFromClaims(ctx))
	if err != nil {
		return renderError(ctx, err)
	}
	return ctx.JSON(requests)
}

// GetPendingApprovals godoc
// @Summary List requests awaiting the caller's decision
// @Tags approvals
// @Produce json
// @Router /api/approvals/pending [get]
func (c *ApprovalController) GetPendingApprovals(ctx *fiber.Ctx) error {
	caller := callerFromClaims(ctx)
	requests, err := c.Service.GetPendingApprovals(ctx.UserContext(), caller.EmployeeID)
	if err != nil {
		return renderError(ctx, err)
	}
	return ctx.JSON(requests)
}

// GetRequest godoc
// @Summary Get a single approval request
// @Tags approvals
// @Produce json
// @Router /api/approvals/{id} [get]
func (c *ApprovalController) GetRequest(ctx *fiber.Ctx) error {
	request, err := c.Service.GetRequest(ctx.UserContext(), ctx.Params("id"), callerFromClaims(ctx))
	if err != nil {
		return renderError(ctx, err)
	}
	return ctx.JSON(RequestWithOverdue{
		ApprovalRequest: *request,
		IsOverdue:       c.Service.IsOverdue(request),
	})
}

// ApproveRequest godoc
// @Summary Approve the current step of a request
// @Tags approvals
// @Accept json
// @Produce json
// @Router /api/approvals/{id}/approve [post]
func (c *ApprovalController) ApproveRequest(ctx *fiber.Ctx) error {
	var body struct {
		Notes string `json:"notes"`
	}
	_ = ctx.BodyParser(&body)

	updated, err := c.Service.Approve(ctx.UserContext(), ctx.Params("id"), callerFromClaims(ctx), body.Notes)
	if err != nil {
		return renderError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "status": updated.Status})
}

// RejectRequest godoc
// @Summary Reject the current step of a request
// @Tags approvals
// @Accept json
// @Produce json
// @Router /api/approvals/{id}/reject [post]
func (c *ApprovalController) RejectRequest(ctx *fiber.Ctx) error {
	var body struct {
		Notes string `json:"notes"`
	}
	_ = ctx.BodyParser(&body)

	updated, err := c.Service.Reject(ctx.UserContext(), ctx.Params("id"), callerFromClaims(ctx), body.Notes)
	if err != nil {
		return renderError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "status": updated.Status})
}

// CancelRequest godoc
// @Summary Cancel a request before any step is decided
// @Tags approvals
// @Produce json
// @Router /api/approvals/{id}/cancel [post]
func (c *ApprovalController) CancelRequest(ctx *fiber.Ctx) error {
	updated, err := c.Service.Cancel(ctx.UserContext(), ctx.Params("id"), callerFromClaims(ctx))
	if err != nil {
		return renderError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "status": updated.Status})
}

// DelegateStep godoc
// @Summary Delegate the current step to another employee
// @Tags approvals
// @Accept json
// @Produce json
// @Router /api/approvals/{id}/delegate [post]
func (c *ApprovalController) DelegateStep(ctx *fiber.Ctx) error {
	var body struct {
		StepIndex       int    `json:"step_index"`
		DelegatedTo     string `json:"delegated_to"`
		DelegatedToName string `json:"delegated_to_name"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	err := c.Service.Delegate(ctx.UserContext(), ctx.Params("id"), body.StepIndex, callerFromClaims(ctx), body.DelegatedTo, body.DelegatedToName)
	if err != nil {
		return renderError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true})
}

// EscalateRequest godoc
// @Summary Flag a stalled request as escalated
// @Tags approvals
// @Produce json
// @Router /api/approvals/{id}/escalate [post]
func (c *ApprovalController) EscalateRequest(ctx *fiber.Ctx) error {
	err := c.Service.Escalate(ctx.UserContext(), ctx.Params("id"), callerFromClaims(ctx))
	if err != nil {
		return renderError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true})
}
