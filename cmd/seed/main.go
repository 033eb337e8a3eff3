package main

import (
	"context"

	"go-hrms/internal/config"
	"go-hrms/internal/database"
	"go-hrms/internal/features/approval"
	"go-hrms/internal/features/auth"
	"go-hrms/internal/features/employee"
	"go-hrms/internal/features/leave"
	"go-hrms/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Seed loads a demo org hierarchy, leave balances and login accounts.
func Seed(
	lc fx.Lifecycle,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	userRepo auth.UserRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Seeding demo data...")

				ctx := context.Background()

				employees := []employee.EmployeeHierarchy{
					{EmployeeID: "E001", Name: "Asha Rao", ManagerID: "M001", DepartmentID: "ENG", JobPositionID: "SWE", JobTitle: "Software Engineer", JobLevel: 1},
					{EmployeeID: "E002", Name: "Tomas Eriksen", ManagerID: "M001", DepartmentID: "ENG", JobPositionID: "SWE", JobTitle: "Software Engineer", JobLevel: 1},
					{EmployeeID: "M001", Name: "Priya Nair", ManagerID: "M002", DepartmentID: "ENG", JobPositionID: "EM", JobTitle: "Engineering Manager", JobLevel: 2},
					{EmployeeID: "M002", Name: "Daniel Okafor", ManagerID: "D001", DepartmentID: "ENG", JobPositionID: "SEM", JobTitle: "Senior Engineering Manager", JobLevel: 3},
					{EmployeeID: "D001", Name: "Mei Chen", DepartmentID: "ENG", JobPositionID: "DIR", JobTitle: "Director of Engineering", JobLevel: 4},
					{EmployeeID: "HR01", Name: "Sofia Almeida", ManagerID: "D001", DepartmentID: "HR", JobPositionID: "HRM", JobTitle: "HR Manager", JobLevel: 2},
				}
				for i := range employees {
					if existing, _ := employeeRepo.FindByEmployeeID(ctx, employees[i].EmployeeID); existing != nil {
						continue
					}
					if err := employeeRepo.Create(ctx, &employees[i]); err != nil {
						logger.Error("failed to seed employee", zap.String("employee_id", employees[i].EmployeeID), zap.Error(err))
					}
				}

				for _, emp := range employees {
					for _, leaveType := range []string{"annual", "sick"} {
						if err := leaveRepo.SetBalance(ctx, emp.EmployeeID, leaveType, 20); err != nil {
							logger.Error("failed to seed balance", zap.String("employee_id", emp.EmployeeID), zap.Error(err))
						}
					}
				}

				users := []auth.User{
					{EmployeeID: "E001", EmployeeName: "Asha Rao", Password: "password", Status: "active", Permissions: []string{}},
					{EmployeeID: "E002", EmployeeName: "Tomas Eriksen", Password: "password", Status: "active", Permissions: []string{}},
					{EmployeeID: "M001", EmployeeName: "Priya Nair", Password: "password", Status: "active", Permissions: []string{approval.PermApprove}},
					{EmployeeID: "M002", EmployeeName: "Daniel Okafor", Password: "password", Status: "active", Permissions: []string{approval.PermApprove}},
					{EmployeeID: "D001", EmployeeName: "Mei Chen", Password: "password", Status: "active", Permissions: []string{approval.PermApprove, approval.PermViewAll, approval.PermManageAll, "employee:manage"}},
					{EmployeeID: "HR01", EmployeeName: "Sofia Almeida", Password: "password", Status: "active", Permissions: []string{approval.PermViewAll, "employee:manage"}},
				}
				for i := range users {
					if existing, _ := userRepo.FindByEmployeeID(ctx, users[i].EmployeeID); existing != nil {
						continue
					}
					if err := userRepo.Create(ctx, &users[i]); err != nil {
						logger.Error("failed to seed user", zap.String("employee_id", users[i].EmployeeID), zap.Error(err))
					}
				}

				if err := employeeRepo.EnsureIndexes(ctx); err != nil {
					logger.Error("failed to ensure employee indexes", zap.Error(err))
				}
				if err := leaveRepo.EnsureIndexes(ctx); err != nil {
					logger.Error("failed to ensure leave indexes", zap.Error(err))
				}

				logger.Info("Seeding complete")
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			employee.NewEmployeeRepository,
			leave.NewLeaveRepository,
			auth.NewUserRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
