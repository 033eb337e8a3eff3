package report

import (
	"fmt"

	common_models "go-hrms/internal/common/models"
	"go-hrms/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	Service ReportService
}

func NewReportController(service ReportService) *ReportController {
	return &ReportController{Service: service}
}

// ExportApprovals godoc
// @Summary Export approval requests as an xlsx workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /api/reports/approvals [get]
func (c *ReportController) ExportApprovals(ctx *fiber.Ctx) error {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	caller := common_models.CallerContext{
		EmployeeID:   claims.EmployeeID,
		EmployeeName: claims.EmployeeName,
		Permissions:  claims.Permissions,
	}

	data, filename, err := c.Service.ExportApprovals(ctx.UserContext(), caller)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Send(data)
}
