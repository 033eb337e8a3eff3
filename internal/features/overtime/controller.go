package overtime

import (
	common_models "go-hrms/internal/common/models"
	"go-hrms/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type OvertimeController struct {
	Service OvertimeService
}

func NewOvertimeController(service OvertimeService) *OvertimeController {
	return &OvertimeController{Service: service}
}

func caller(ctx *fiber.Ctx) common_models.CallerContext {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return common_models.CallerContext{
		EmployeeID:   claims.EmployeeID,
		EmployeeName: claims.EmployeeName,
		Permissions:  claims.Permissions,
	}
}

// CreateOvertimeRequest godoc
// @Summary Submit an overtime request
// @Tags overtime
// @Accept json
// @Produce json
// @Router /api/overtime [post]
func (c *OvertimeController) CreateOvertimeRequest(ctx *fiber.Ctx) error {
	var input CreateOvertimeInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	request, err := c.Service.CreateOvertimeRequest(ctx.UserContext(), caller(ctx), input)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "request": request})
}

// GetOwnRequests godoc
// @Summary List the caller's overtime requests
// @Tags overtime
// @Produce json
// @Router /api/overtime [get]
func (c *OvertimeController) GetOwnRequests(ctx *fiber.Ctx) error {
	requests, err := c.Service.GetOwnRequests(ctx.UserContext(), caller(ctx).EmployeeID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(requests)
}
