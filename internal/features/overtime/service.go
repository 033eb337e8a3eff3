package overtime

import (
	"context"
	"errors"
	"strings"
	"time"

	common_models "go-hrms/internal/common/models"
	"go-hrms/internal/features/approval"
	"go-hrms/internal/features/employee"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type CreateOvertimeInput struct {
	Date   time.Time `json:"date"`
	Hours  float64   `json:"hours"`
	Reason string    `json:"reason"`
}

type OvertimeService interface {
	CreateOvertimeRequest(ctx context.Context, caller common_models.CallerContext, input CreateOvertimeInput) (*OvertimeRequest, error)
	GetOwnRequests(ctx context.Context, employeeID string) ([]OvertimeRequest, error)
}

type OvertimeServiceImpl struct {
	Repo            OvertimeRepository
	EmployeeService employee.EmployeeService
	ApprovalService approval.ApprovalService
	ChainPolicy     approval.ChainPolicy
	Logger          *zap.Logger
}

func NewOvertimeService(
	repo OvertimeRepository,
	employeeService employee.EmployeeService,
	approvalService approval.ApprovalService,
	chainPolicy approval.ChainPolicy,
	logger *zap.Logger,
) OvertimeService {
	return &OvertimeServiceImpl{
		Repo:            repo,
		EmployeeService: employeeService,
		ApprovalService: approvalService,
		ChainPolicy:     chainPolicy,
		Logger:          logger,
	}
}

func (s *OvertimeServiceImpl) CreateOvertimeRequest(ctx context.Context, caller common_models.CallerContext, input CreateOvertimeInput) (*OvertimeRequest, error) {
	if input.Hours <= 0 || input.Hours > 16 {
		return nil, errors.New("hours must be between 0 and 16")
	}
	if input.Date.IsZero() {
		return nil, errors.New("date is required")
	}

	subject, all, err := s.EmployeeService.Snapshot(ctx, caller.EmployeeID)
	if err != nil {
		return nil, err
	}

	chain, errs := approval.GenerateApprovalChain(*subject, all, approval.RequestTypeOvertime, s.ChainPolicy)
	if len(errs) > 0 {
		return nil, errors.New("cannot submit overtime request: " + strings.Join(errs, "; "))
	}

	request := &OvertimeRequest{
		EmployeeID:   caller.EmployeeID,
		EmployeeName: caller.EmployeeName,
		Date:         input.Date,
		Hours:        input.Hours,
		Reason:       input.Reason,
		Status:       OvertimeStatusPending,
	}
	if err := s.Repo.Create(ctx, request); err != nil {
		return nil, err
	}

	err = s.ApprovalService.CreateRequest(ctx, &approval.ApprovalRequest{
		RequestType:  approval.RequestTypeOvertime,
		EmployeeID:   caller.EmployeeID,
		EmployeeName: caller.EmployeeName,
		RequestData: bson.M{
			"date":   input.Date,
			"hours":  input.Hours,
			"reason": input.Reason,
		},
		ApprovalChain:   chain,
		SourceRequestID: request.ID.Hex(),
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("overtime request submitted",
		zap.String("employee_id", caller.EmployeeID),
		zap.Float64("hours", input.Hours))
	return request, nil
}

func (s *OvertimeServiceImpl) GetOwnRequests(ctx context.Context, employeeID string) ([]OvertimeRequest, error) {
	return s.Repo.FindByEmployee(ctx, employeeID)
}
