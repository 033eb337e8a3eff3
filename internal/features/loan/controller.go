package loan

import (
	common_models "go-hrms/internal/common/models"
	"go-hrms/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type LoanController struct {
	Service LoanService
}

func NewLoanController(service LoanService) *LoanController {
	return &LoanController{Service: service}
}

func caller(ctx *fiber.Ctx) common_models.CallerContext {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return common_models.CallerContext{
		EmployeeID:   claims.EmployeeID,
		EmployeeName: claims.EmployeeName,
		Permissions:  claims.Permissions,
	}
}

// CreateLoanRequest godoc
// @Summary Submit a loan request
// @Tags loans
// @Accept json
// @Produce json
// @Router /api/loans [post]
func (c *LoanController) CreateLoanRequest(ctx *fiber.Ctx) error {
	var input CreateLoanInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	loan, err := c.Service.CreateLoanRequest(ctx.UserContext(), caller(ctx), input)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "loan": loan})
}

// GetLoan godoc
// @Summary Get a loan with its installment schedule
// @Tags loans
// @Produce json
// @Router /api/loans/{id} [get]
func (c *LoanController) GetLoan(ctx *fiber.Ctx) error {
	loan, err := c.Service.GetLoan(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if loan == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Loan not found"})
	}
	return ctx.JSON(loan)
}

// GetOwnLoans godoc
// @Summary List the caller's loans
// @Tags loans
// @Produce json
// @Router /api/loans [get]
func (c *LoanController) GetOwnLoans(ctx *fiber.Ctx) error {
	loans, err := c.Service.GetOwnLoans(ctx.UserContext(), caller(ctx).EmployeeID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(loans)
}
