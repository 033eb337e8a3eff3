package cron_feature

import (
	"github.com/gofiber/fiber/v2"
)

type CronController struct {
	Service CronService
}

func NewCronController(service CronService) *CronController {
	return &CronController{
		Service: service,
	}
}

// RunOverdueDigest godoc
// @Summary Trigger the overdue digest immediately
// @Tags cron
// @Produce json
// @Router /api/cron/overdue-digest [post]
func (c *CronController) RunOverdueDigest(ctx *fiber.Ctx) error {
	count, err := c.Service.RunOverdueDigest(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true, "overdue_count": count})
}
