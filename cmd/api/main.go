package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-hrms/internal/common/api"
	"go-hrms/internal/config"
	"go-hrms/internal/database"
	"go-hrms/internal/features/approval"
	"go-hrms/internal/features/audit"
	"go-hrms/internal/features/auth"
	cron_feature "go-hrms/internal/features/cron"
	"go-hrms/internal/features/employee"
	"go-hrms/internal/features/leave"
	"go-hrms/internal/features/loan"
	"go-hrms/internal/features/notification"
	"go-hrms/internal/features/overtime"
	"go-hrms/internal/features/report"
	"go-hrms/internal/logger"
	"go-hrms/internal/middleware"
	"go-hrms/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags the constructor so Fx adds it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures the unique indexes behind the idempotency and
// identity guarantees exist before traffic arrives.
func InitializeIndexes(
	lc fx.Lifecycle,
	employeeRepo employee.EmployeeRepository,
	approvalRepo approval.ApprovalRepository,
	dispatchRepo approval.DispatchRepository,
	leaveRepo leave.LeaveRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := employeeRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure employee indexes: %v", err)
				}
				if err := approvalRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure approval indexes: %v", err)
				}
				if err := dispatchRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure dispatch indexes: %v", err)
				}
				if err := leaveRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure leave indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			employee.NewEmployeeRepository,
			approval.NewApprovalRepository,
			approval.NewDispatchRepository,
			leave.NewLeaveRepository,
			loan.NewLoanRepository,
			overtime.NewOvertimeRepository,
			audit.NewAuditRepository,
			notification.NewNotificationRepository,
			auth.NewUserRepository,

			notification.NewHub,
			approval.NewChainPolicy,

			audit.NewAuditService,
			notification.NewNotificationService,
			employee.NewEmployeeService,
			approval.NewSideEffectDispatcher,
			approval.NewApprovalService,
			leave.NewLeaveService,
			loan.NewLoanService,
			overtime.NewOvertimeService,
			auth.NewAuthService,
			report.NewReportService,
			cron_feature.NewCronService,

			// Side effect implementations consumed by the dispatcher. These
			// depend on repositories only, which keeps the object graph
			// acyclic.
			leave.NewLeaveEffects,
			loan.NewLoanEffects,
			overtime.NewOvertimeEffects,

			// Initialize Controller
			employee.NewEmployeeController,
			approval.NewApprovalController,
			leave.NewLeaveController,
			loan.NewLoanController,
			overtime.NewOvertimeController,
			auth.NewAuthController,
			report.NewReportController,
			cron_feature.NewCronController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(employee.NewEmployeeApi),
			AsRoute(approval.NewApprovalApi),
			AsRoute(leave.NewLeaveApi),
			AsRoute(loan.NewLoanApi),
			AsRoute(overtime.NewOvertimeApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(report.NewReportApi),
			AsRoute(cron_feature.NewCronApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, cronService cron_feature.CronService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return cronService.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return cronService.StopScheduler()
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
