package leave

import (
	common_models "go-hrms/internal/common/models"
	"go-hrms/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type LeaveController struct {
	Service LeaveService
}

func NewLeaveController(service LeaveService) *LeaveController {
	return &LeaveController{Service: service}
}

func caller(ctx *fiber.Ctx) common_models.CallerContext {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return common_models.CallerContext{
		EmployeeID:   claims.EmployeeID,
		EmployeeName: claims.EmployeeName,
		Permissions:  claims.Permissions,
	}
}

// CreateLeaveRequest godoc
// @Summary Submit a leave request
// @Tags leave
// @Accept json
// @Produce json
// @Router /api/leave [post]
func (c *LeaveController) CreateLeaveRequest(ctx *fiber.Ctx) error {
	var input CreateLeaveInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	request, err := c.Service.CreateLeaveRequest(ctx.UserContext(), caller(ctx), input)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "request": request})
}

// GetOwnRequests godoc
// @Summary List the caller's leave requests
// @Tags leave
// @Produce json
// @Router /api/leave [get]
func (c *LeaveController) GetOwnRequests(ctx *fiber.Ctx) error {
	requests, err := c.Service.GetOwnRequests(ctx.UserContext(), caller(ctx).EmployeeID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(requests)
}

// GetBalance godoc
// @Summary Get a leave balance
// @Tags leave
// @Produce json
// @Router /api/leave/balance/{type} [get]
func (c *LeaveController) GetBalance(ctx *fiber.Ctx) error {
	balance, err := c.Service.GetBalance(ctx.UserContext(), caller(ctx).EmployeeID, ctx.Params("type"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if balance == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No balance for this leave type"})
	}
	return ctx.JSON(balance)
}

// SetBalance godoc
// @Summary Set an employee's leave balance (HR)
// @Tags leave
// @Accept json
// @Produce json
// @Router /api/leave/balance [put]
func (c *LeaveController) SetBalance(ctx *fiber.Ctx) error {
	var body struct {
		EmployeeID string `json:"employee_id"`
		LeaveType  string `json:"leave_type"`
		Balance    int    `json:"balance"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.SetBalance(ctx.UserContext(), body.EmployeeID, body.LeaveType, body.Balance); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Balance updated"})
}
