package cron_feature

import (
	"context"
	"fmt"

	"go-hrms/internal/config"
	"go-hrms/internal/features/approval"
	"go-hrms/internal/features/notification"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronService runs the overdue digest on a schedule. The digest only
// notifies; it never escalates or otherwise changes request state, which
// stays a manual administrative action.
type CronService interface {
	InitializeScheduler(ctx context.Context) error
	StopScheduler() error

	// RunOverdueDigest is also exposed for manual triggering.
	RunOverdueDigest(ctx context.Context) (int, error)
}

type CronServiceImpl struct {
	ApprovalService approval.ApprovalService
	Notifications   notification.NotificationService
	Logger          *zap.Logger
	Schedule        string

	scheduler *cron.Cron
}

func NewCronService(
	approvalService approval.ApprovalService,
	notifications notification.NotificationService,
	logger *zap.Logger,
	cfg *config.Config,
) CronService {
	return &CronServiceImpl{
		ApprovalService: approvalService,
		Notifications:   notifications,
		Logger:          logger,
		Schedule:        cfg.OverdueDigestSchedule,
	}
}

func (s *CronServiceImpl) InitializeScheduler(ctx context.Context) error {
	if s.Schedule == "" {
		s.Logger.Info("overdue digest disabled, no schedule configured")
		return nil
	}

	s.scheduler = cron.New()

	_, err := s.scheduler.AddFunc(s.Schedule, func() {
		count, err := s.RunOverdueDigest(context.Background())
		if err != nil {
			s.Logger.Error("overdue digest failed", zap.Error(err))
			return
		}
		s.Logger.Info("overdue digest completed", zap.Int("overdue_count", count))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule overdue digest: %w", err)
	}

	s.scheduler.Start()
	s.Logger.Info("cron scheduler started", zap.String("digest_schedule", s.Schedule))
	return nil
}

func (s *CronServiceImpl) StopScheduler() error {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}

func (s *CronServiceImpl) RunOverdueDigest(ctx context.Context) (int, error) {
	overdue, err := s.ApprovalService.OverdueRequests(ctx)
	if err != nil {
		return 0, err
	}

	for _, req := range overdue {
		step := req.CurrentChainStep()
		if step == nil {
			continue
		}
		target := step.ApproverEmployeeID
		if step.DelegatedTo != "" {
			target = step.DelegatedTo
		}
		_ = s.Notifications.Notify(ctx, target, "Approval overdue",
			fmt.Sprintf("A %s request from %s has been waiting past the SLA", req.RequestType, req.EmployeeName),
			notification.NotificationTypeOverdue, "/approvals/"+req.ID.Hex())
	}
	return len(overdue), nil
}
