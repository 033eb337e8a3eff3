package employee

import (
	"github.com/gofiber/fiber/v2"
)

type EmployeeController struct {
	Service EmployeeService
}

func NewEmployeeController(service EmployeeService) *EmployeeController {
	return &EmployeeController{Service: service}
}

// CreateEmployee godoc
// @Summary Create an employee hierarchy record
// @Tags employees
// @Accept json
// @Produce json
// @Router /api/employees [post]
func (c *EmployeeController) CreateEmployee(ctx *fiber.Ctx) error {
	var input EmployeeHierarchy
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.Create(ctx.UserContext(), input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Employee created successfully"})
}

// GetEmployee godoc
// @Summary Get an employee by employee ID
// @Tags employees
// @Produce json
// @Router /api/employees/{id} [get]
func (c *EmployeeController) GetEmployee(ctx *fiber.Ctx) error {
	emp, err := c.Service.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if emp == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	return ctx.JSON(emp)
}

// ListEmployees godoc
// @Summary List the employee hierarchy snapshot
// @Tags employees
// @Produce json
// @Router /api/employees [get]
func (c *EmployeeController) ListEmployees(ctx *fiber.Ctx) error {
	employees, err := c.Service.List(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(employees)
}

// UpdateEmployee godoc
// @Summary Update an employee hierarchy record
// @Tags employees
// @Accept json
// @Produce json
// @Router /api/employees/{id} [put]
func (c *EmployeeController) UpdateEmployee(ctx *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := ctx.BodyParser(&updates); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.Update(ctx.UserContext(), ctx.Params("id"), updates); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Employee updated successfully"})
}
