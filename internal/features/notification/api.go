package notification

import (
	"go-hrms/internal/config"
	"go-hrms/internal/middleware"
	"go-hrms/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	service NotificationService
	hub     *Hub
	config  *config.Config
}

func NewNotificationApi(service NotificationService, hub *Hub, config *config.Config) *NotificationApi {
	return &NotificationApi{
		service: service,
		hub:     hub,
		config:  config,
	}
}

func (h *NotificationApi) Setup(app *fiber.App) {
	notifications := app.Group("/api/notifications", middleware.AuthMiddleware(h.config.SkipAuth))

	notifications.Get("/", func(ctx *fiber.Ctx) error {
		claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		unreadOnly := ctx.Query("unread") == "true"

		list, err := h.service.ListForEmployee(ctx.UserContext(), claims.EmployeeID, unreadOnly)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.JSON(list)
	})

	notifications.Post("/:id/read", func(ctx *fiber.Ctx) error {
		if err := h.service.MarkRead(ctx.UserContext(), ctx.Params("id")); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.JSON(fiber.Map{"message": "Notification marked as read"})
	})

	// Live push channel. The claims are captured before the upgrade since
	// websocket handlers no longer see fiber locals set by middleware.
	app.Get("/api/notifications/ws", middleware.AuthMiddleware(h.config.SkipAuth), func(ctx *fiber.Ctx) error {
		claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		ctx.Locals("employee_id", claims.EmployeeID)
		if websocket.IsWebSocketUpgrade(ctx) {
			return websocket.New(h.handleWebSocket)(ctx)
		}
		return fiber.ErrUpgradeRequired
	})
}

func (h *NotificationApi) handleWebSocket(c *websocket.Conn) {
	employeeID, _ := c.Locals("employee_id").(string)
	if employeeID == "" {
		c.Close()
		return
	}

	h.hub.Register(employeeID, c)
	defer func() {
		h.hub.Unregister(employeeID, c)
		c.Close()
	}()

	// Reads keep the connection alive; pushes flow from the hub.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
