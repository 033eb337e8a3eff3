package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	common_models "go-hrms/internal/common/models"
	"go-hrms/internal/features/approval"
	"go-hrms/internal/features/employee"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type CreateLeaveInput struct {
	LeaveType string    `json:"leave_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
}

type LeaveService interface {
	// CreateLeaveRequest validates the input, generates the approval
	// chain from a fresh hierarchy snapshot and refuses creation when
	// chain generation reports errors.
	CreateLeaveRequest(ctx context.Context, caller common_models.CallerContext, input CreateLeaveInput) (*LeaveRequest, error)
	GetOwnRequests(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	GetBalance(ctx context.Context, employeeID, leaveType string) (*LeaveBalance, error)
	SetBalance(ctx context.Context, employeeID, leaveType string, balance int) error
}

type LeaveServiceImpl struct {
	Repo            LeaveRepository
	EmployeeService employee.EmployeeService
	ApprovalService approval.ApprovalService
	ChainPolicy     approval.ChainPolicy
	Logger          *zap.Logger
}

func NewLeaveService(
	repo LeaveRepository,
	employeeService employee.EmployeeService,
	approvalService approval.ApprovalService,
	chainPolicy approval.ChainPolicy,
	logger *zap.Logger,
) LeaveService {
	return &LeaveServiceImpl{
		Repo:            repo,
		EmployeeService: employeeService,
		ApprovalService: approvalService,
		ChainPolicy:     chainPolicy,
		Logger:          logger,
	}
}

func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, caller common_models.CallerContext, input CreateLeaveInput) (*LeaveRequest, error) {
	if input.LeaveType == "" {
		return nil, errors.New("leave_type is required")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, errors.New("end_date must not be before start_date")
	}
	totalDays := int(input.EndDate.Sub(input.StartDate).Hours()/24) + 1

	balance, err := s.Repo.GetBalance(ctx, caller.EmployeeID, input.LeaveType)
	if err != nil {
		return nil, err
	}
	if balance == nil || balance.Balance < totalDays {
		return nil, fmt.Errorf("insufficient %s leave balance for %d days", input.LeaveType, totalDays)
	}

	subject, all, err := s.EmployeeService.Snapshot(ctx, caller.EmployeeID)
	if err != nil {
		return nil, err
	}

	chain, errs := approval.GenerateApprovalChain(*subject, all, approval.RequestTypeLeave, s.ChainPolicy)
	if len(errs) > 0 {
		return nil, errors.New("cannot submit leave request: " + strings.Join(errs, "; "))
	}

	leaveRequest := &LeaveRequest{
		EmployeeID:   caller.EmployeeID,
		EmployeeName: caller.EmployeeName,
		LeaveType:    input.LeaveType,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		TotalDays:    totalDays,
		Reason:       input.Reason,
		Status:       LeaveStatusPending,
	}
	if err := s.Repo.Create(ctx, leaveRequest); err != nil {
		return nil, err
	}

	err = s.ApprovalService.CreateRequest(ctx, &approval.ApprovalRequest{
		RequestType:  approval.RequestTypeLeave,
		EmployeeID:   caller.EmployeeID,
		EmployeeName: caller.EmployeeName,
		RequestData: bson.M{
			"leave_type": input.LeaveType,
			"start_date": input.StartDate,
			"end_date":   input.EndDate,
			"total_days": totalDays,
			"reason":     input.Reason,
		},
		ApprovalChain:   chain,
		SourceRequestID: leaveRequest.ID.Hex(),
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("leave request submitted",
		zap.String("employee_id", caller.EmployeeID),
		zap.String("leave_type", input.LeaveType),
		zap.Int("total_days", totalDays))
	return leaveRequest, nil
}

func (s *LeaveServiceImpl) GetOwnRequests(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	return s.Repo.FindByEmployee(ctx, employeeID)
}

func (s *LeaveServiceImpl) GetBalance(ctx context.Context, employeeID, leaveType string) (*LeaveBalance, error) {
	return s.Repo.GetBalance(ctx, employeeID, leaveType)
}

func (s *LeaveServiceImpl) SetBalance(ctx context.Context, employeeID, leaveType string, balance int) error {
	return s.Repo.SetBalance(ctx, employeeID, leaveType, balance)
}
