package approval

import (
	"context"
	"fmt"
	"time"

	common_models "go-hrms/internal/common/models"
	"go-hrms/internal/config"
	"go-hrms/internal/features/audit"
	"go-hrms/internal/features/notification"

	"go.uber.org/zap"
)

type ApprovalService interface {
	// CreateRequest persists a freshly generated request. Domain modules
	// (leave, loan, overtime) call this after chain generation succeeds.
	CreateRequest(ctx context.Context, request *ApprovalRequest) error

	// Transition operations. All validation failures come back as typed
	// errors (AuthorizationError, StateConflictError, StoreError,
	// ValidationError, ErrRequestNotFound); nothing panics through here.
	Approve(ctx context.Context, requestID string, caller common_models.CallerContext, notes string) (*ApprovalRequest, error)
	Reject(ctx context.Context, requestID string, caller common_models.CallerContext, notes string) (*ApprovalRequest, error)
	Cancel(ctx context.Context, requestID string, caller common_models.CallerContext) (*ApprovalRequest, error)
	Delegate(ctx context.Context, requestID string, stepIndex int, caller common_models.CallerContext, delegatedTo, delegatedToName string) error
	Escalate(ctx context.Context, requestID string, caller common_models.CallerContext) error

	// Read side.
	GetAllRequests(ctx context.Context, caller common_models.CallerContext) ([]RequestWithOverdue, error)
	GetPendingApprovals(ctx context.Context, approverEmployeeID string) ([]RequestWithOverdue, error)
	GetRequest(ctx context.Context, requestID string, caller common_models.CallerContext) (*ApprovalRequest, error)
	OverdueRequests(ctx context.Context) ([]ApprovalRequest, error)
	IsOverdue(request *ApprovalRequest) bool
}

type ApprovalServiceImpl struct {
	Repo          ApprovalRepository
	Dispatcher    SideEffectDispatcher
	AuditService  audit.AuditService
	Notifications notification.NotificationService
	Logger        *zap.Logger
	SLA           time.Duration
}

func NewApprovalService(
	repo ApprovalRepository,
	dispatcher SideEffectDispatcher,
	auditService audit.AuditService,
	notifications notification.NotificationService,
	logger *zap.Logger,
	cfg *config.Config,
) ApprovalService {
	return &ApprovalServiceImpl{
		Repo:          repo,
		Dispatcher:    dispatcher,
		AuditService:  auditService,
		Notifications: notifications,
		Logger:        logger,
		SLA:           cfg.ApprovalSLA,
	}
}

func (s *ApprovalServiceImpl) CreateRequest(ctx context.Context, request *ApprovalRequest) error {
	switch request.RequestType {
	case RequestTypeLeave, RequestTypeLoan, RequestTypeOvertime:
	default:
		return &ValidationError{Reason: fmt.Sprintf("unknown request type %q", request.RequestType)}
	}

	lastLevel := 0
	for i, step := range request.ApprovalChain {
		if step.Status != StepStatusPending {
			return &ValidationError{Reason: "new request carries a decided step"}
		}
		if step.Level <= lastLevel {
			return &ValidationError{Reason: fmt.Sprintf("chain levels not strictly increasing at step %d", i)}
		}
		lastLevel = step.Level
	}

	request.Status = RequestStatusPending
	request.CurrentStep = 0

	if err := s.Repo.Create(ctx, request); err != nil {
		return &StoreError{Err: err}
	}

	if step := request.CurrentChainStep(); step != nil {
		s.notify(ctx, step.ApproverEmployeeID, "Approval requested",
			fmt.Sprintf("%s submitted a %s request awaiting your approval", request.EmployeeName, request.RequestType),
			request.ID.Hex())
	}
	return nil
}

func (s *ApprovalServiceImpl) Approve(ctx context.Context, requestID string, caller common_models.CallerContext, notes string) (*ApprovalRequest, error) {
	request, err := s.fetch(ctx, requestID)
	if err != nil {
		return nil, err
	}

	role := ResolveApprovalRole(caller.Permissions)

	if !request.Decidable() {
		return nil, &StateConflictError{Reason: "request already " + string(request.Status)}
	}

	// Empty chain: the requester had no managers. Decidable by admin
	// override only, never auto-approved.
	if len(request.ApprovalChain) == 0 {
		if role != RoleAdmin {
			return nil, &AuthorizationError{Reason: "only an admin may approve a request with no approval chain"}
		}
		updated, err := s.Repo.ApproveEmptyChain(ctx, requestID)
		if err != nil {
			return nil, &StoreError{Err: err}
		}
		if updated == nil {
			return nil, s.classifyMiss(ctx, requestID, request.CurrentStep)
		}
		s.afterDecision(ctx, updated, caller, StepStatusApproved, notes)
		return updated, nil
	}

	if !CanActOnStep(request, caller.EmployeeID, role) {
		if request.CurrentChainStep() == nil {
			return nil, &StateConflictError{Reason: "approval chain is exhausted"}
		}
		return nil, &AuthorizationError{Reason: "not your step to decide"}
	}

	updated, err := s.Repo.DecideStep(ctx, DecideStepParams{
		RequestID:       requestID,
		StepIndex:       request.CurrentStep,
		Decision:        StepStatusApproved,
		Notes:           notes,
		RequireApprover: requireApprover(caller.EmployeeID, role),
		FinalStep:       request.CurrentStep == len(request.ApprovalChain)-1,
	})
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	if updated == nil {
		return nil, s.classifyMiss(ctx, requestID, request.CurrentStep)
	}

	s.afterDecision(ctx, updated, caller, StepStatusApproved, notes)
	return updated, nil
}

func (s *ApprovalServiceImpl) Reject(ctx context.Context, requestID string, caller common_models.CallerContext, notes string) (*ApprovalRequest, error) {
	request, err := s.fetch(ctx, requestID)
	if err != nil {
		return nil, err
	}

	role := ResolveApprovalRole(caller.Permissions)

	if !request.Decidable() {
		return nil, &StateConflictError{Reason: "request already " + string(request.Status)}
	}
	if !CanActOnStep(request, caller.EmployeeID, role) {
		if request.CurrentChainStep() == nil {
			return nil, &StateConflictError{Reason: "no pending step to reject"}
		}
		return nil, &AuthorizationError{Reason: "not your step to decide"}
	}

	updated, err := s.Repo.DecideStep(ctx, DecideStepParams{
		RequestID:       requestID,
		StepIndex:       request.CurrentStep,
		Decision:        StepStatusRejected,
		Notes:           notes,
		RequireApprover: requireApprover(caller.EmployeeID, role),
	})
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	if updated == nil {
		return nil, s.classifyMiss(ctx, requestID, request.CurrentStep)
	}

	s.afterDecision(ctx, updated, caller, StepStatusRejected, notes)
	return updated, nil
}

func (s *ApprovalServiceImpl) Cancel(ctx context.Context, requestID string, caller common_models.CallerContext) (*ApprovalRequest, error) {
	request, err := s.fetch(ctx, requestID)
	if err != nil {
		return nil, err
	}

	role := ResolveApprovalRole(caller.Permissions)
	if caller.EmployeeID != request.EmployeeID && role != RoleAdmin {
		return nil, &AuthorizationError{Reason: "only the requester or an admin may cancel"}
	}

	updated, err := s.Repo.CancelRequest(ctx, requestID)
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	if updated == nil {
		if !request.Decidable() {
			return nil, &StateConflictError{Reason: "request already " + string(request.Status)}
		}
		return nil, &StateConflictError{Reason: "cannot cancel after a step has been decided"}
	}

	s.audit(ctx, updated, caller, map[string]common_models.Change{
		"status": {Old: string(request.Status), New: string(RequestStatusCancelled)},
	})
	return updated, nil
}

func (s *ApprovalServiceImpl) Delegate(ctx context.Context, requestID string, stepIndex int, caller common_models.CallerContext, delegatedTo, delegatedToName string) error {
	if delegatedTo == "" {
		return &ValidationError{Reason: "delegated_to is required"}
	}

	request, err := s.fetch(ctx, requestID)
	if err != nil {
		return err
	}

	if stepIndex < 0 || stepIndex >= len(request.ApprovalChain) {
		return &ValidationError{Reason: "step index out of range"}
	}
	if !request.Decidable() {
		return &StateConflictError{Reason: "request already " + string(request.Status)}
	}
	if stepIndex != request.CurrentStep {
		return &StateConflictError{Reason: "only the current step can be delegated"}
	}

	role := ResolveApprovalRole(caller.Permissions)
	step := request.ApprovalChain[stepIndex]
	if role != RoleAdmin && caller.EmployeeID != step.ApproverEmployeeID {
		return &AuthorizationError{Reason: "only the step's approver or an admin may delegate"}
	}

	updated, err := s.Repo.DelegateStep(ctx, requestID, stepIndex, requireApprover(caller.EmployeeID, role), delegatedTo, delegatedToName)
	if err != nil {
		return &StoreError{Err: err}
	}
	if updated == nil {
		return s.classifyMiss(ctx, requestID, stepIndex)
	}

	s.audit(ctx, updated, caller, map[string]common_models.Change{
		"delegated_to": {Old: step.DelegatedTo, New: delegatedTo},
	})
	s.notify(ctx, delegatedTo, "Approval delegated to you",
		fmt.Sprintf("%s delegated a %s approval step to you", step.ApproverName, updated.RequestType),
		updated.ID.Hex())
	return nil
}

// Escalate is a manual administrative action taken after the dashboard
// surfaces the overdue predicate. No scheduler drives this transition.
func (s *ApprovalServiceImpl) Escalate(ctx context.Context, requestID string, caller common_models.CallerContext) error {
	role := ResolveApprovalRole(caller.Permissions)
	if role != RoleAdmin && role != RoleHR {
		return &AuthorizationError{Reason: "only HR or an admin may escalate"}
	}

	request, err := s.fetch(ctx, requestID)
	if err != nil {
		return err
	}

	updated, err := s.Repo.EscalateRequest(ctx, requestID)
	if err != nil {
		return &StoreError{Err: err}
	}
	if updated == nil {
		return &StateConflictError{Reason: "request is " + string(request.Status) + " and cannot be escalated"}
	}

	s.audit(ctx, updated, caller, map[string]common_models.Change{
		"status": {Old: string(request.Status), New: string(RequestStatusEscalated)},
	})
	if step := updated.CurrentChainStep(); step != nil {
		s.notify(ctx, step.ApproverEmployeeID, "Approval escalated",
			fmt.Sprintf("A %s request from %s has been escalated", updated.RequestType, updated.EmployeeName),
			updated.ID.Hex())
	}
	return nil
}

func (s *ApprovalServiceImpl) GetAllRequests(ctx context.Context, caller common_models.CallerContext) ([]RequestWithOverdue, error) {
	if CanViewAllRequests(caller.Permissions) {
		requests, err := s.Repo.FindAll(ctx)
		if err != nil {
			return nil, &StoreError{Err: err}
		}
		return s.withOverdue(requests), nil
	}

	// Everyone else sees their own requests plus the ones waiting on them.
	own, err := s.Repo.FindByEmployee(ctx, caller.EmployeeID)
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	pending, err := s.Repo.FindPendingForApprover(ctx, caller.EmployeeID)
	if err != nil {
		return nil, &StoreError{Err: err}
	}

	seen := make(map[string]bool, len(own))
	merged := own
	for _, req := range own {
		seen[req.ID.Hex()] = true
	}
	for _, req := range pending {
		if !seen[req.ID.Hex()] {
			merged = append(merged, req)
		}
	}
	return s.withOverdue(merged), nil
}

func (s *ApprovalServiceImpl) GetPendingApprovals(ctx context.Context, approverEmployeeID string) ([]RequestWithOverdue, error) {
	requests, err := s.Repo.FindPendingForApprover(ctx, approverEmployeeID)
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	return s.withOverdue(requests), nil
}

func (s *ApprovalServiceImpl) GetRequest(ctx context.Context, requestID string, caller common_models.CallerContext) (*ApprovalRequest, error) {
	request, err := s.fetch(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !CanViewRequest(request, caller.EmployeeID, caller.Permissions) {
		return nil, &AuthorizationError{Reason: "request not visible to this caller"}
	}
	return request, nil
}

func (s *ApprovalServiceImpl) OverdueRequests(ctx context.Context) ([]ApprovalRequest, error) {
	active, err := s.Repo.FindActive(ctx)
	if err != nil {
		return nil, &StoreError{Err: err}
	}

	now := time.Now()
	var overdue []ApprovalRequest
	for _, req := range active {
		if IsRequestOverdue(&req, s.SLA, now) {
			overdue = append(overdue, req)
		}
	}
	return overdue, nil
}

func (s *ApprovalServiceImpl) IsOverdue(request *ApprovalRequest) bool {
	return IsRequestOverdue(request, s.SLA, time.Now())
}

func (s *ApprovalServiceImpl) fetch(ctx context.Context, requestID string) (*ApprovalRequest, error) {
	request, err := s.Repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

// classifyMiss runs after a conditional update matched nothing: re-fetch
// once and decide whether the caller lost a race or was never entitled.
func (s *ApprovalServiceImpl) classifyMiss(ctx context.Context, requestID string, wantStep int) error {
	request, err := s.Repo.FindByID(ctx, requestID)
	if err != nil {
		return &StoreError{Err: err}
	}
	if request == nil {
		return ErrRequestNotFound
	}
	if !request.Decidable() {
		return &StateConflictError{Reason: "request already " + string(request.Status)}
	}
	if request.CurrentStep != wantStep {
		return &StateConflictError{Reason: "step already decided by another actor"}
	}
	if step := request.CurrentChainStep(); step != nil && step.Status != StepStatusPending {
		return &StateConflictError{Reason: "step already decided by another actor"}
	}
	return &AuthorizationError{Reason: "not your step to decide"}
}

func (s *ApprovalServiceImpl) afterDecision(ctx context.Context, updated *ApprovalRequest, caller common_models.CallerContext, decision StepStatus, notes string) {
	s.audit(ctx, updated, caller, map[string]common_models.Change{
		"decision": {Old: string(StepStatusPending), New: string(decision)},
		"status":   {Old: "", New: string(updated.Status)},
		"notes":    {Old: nil, New: notes},
	})

	switch updated.Status {
	case RequestStatusApproved:
		if err := s.Dispatcher.Dispatch(ctx, updated); err != nil {
			// State already committed; reconciliation retries the dispatch.
			s.Logger.Error("side effect dispatch failed after approval",
				zap.String("request_id", updated.ID.Hex()), zap.Error(err))
		}
		s.notify(ctx, updated.EmployeeID, "Request approved",
			fmt.Sprintf("Your %s request has been fully approved", updated.RequestType),
			updated.ID.Hex())
	case RequestStatusRejected:
		s.notify(ctx, updated.EmployeeID, "Request rejected",
			fmt.Sprintf("Your %s request was rejected", updated.RequestType),
			updated.ID.Hex())
	default:
		if step := updated.CurrentChainStep(); step != nil {
			s.notify(ctx, step.ApproverEmployeeID, "Approval requested",
				fmt.Sprintf("A %s request from %s awaits your approval", updated.RequestType, updated.EmployeeName),
				updated.ID.Hex())
		}
	}
}

func (s *ApprovalServiceImpl) withOverdue(requests []ApprovalRequest) []RequestWithOverdue {
	now := time.Now()
	result := make([]RequestWithOverdue, 0, len(requests))
	for _, req := range requests {
		result = append(result, RequestWithOverdue{
			ApprovalRequest: req,
			IsOverdue:       IsRequestOverdue(&req, s.SLA, now),
		})
	}
	return result
}

func (s *ApprovalServiceImpl) audit(ctx context.Context, request *ApprovalRequest, caller common_models.CallerContext, changes map[string]common_models.Change) {
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionApproval, "approval_requests",
		request.ID.Hex(), caller.EmployeeID, caller.EmployeeName, changes)
}

func (s *ApprovalServiceImpl) notify(ctx context.Context, employeeID, title, message, requestID string) {
	_ = s.Notifications.Notify(ctx, employeeID, title, message,
		notification.NotificationTypeApproval, "/approvals/"+requestID)
}

func requireApprover(callerEmployeeID string, role Role) string {
	if role == RoleAdmin {
		return ""
	}
	return callerEmployeeID
}
