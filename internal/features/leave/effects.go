package leave

import (
	"context"

	"go-hrms/internal/features/approval"

	"go.uber.org/zap"
)

// LeaveEffects applies the post-approval side effect for leave requests.
// It depends only on the repository so the dispatcher can be constructed
// without pulling in the request-creating service.
type LeaveEffects struct {
	Repo   LeaveRepository
	Logger *zap.Logger
}

func NewLeaveEffects(repo LeaveRepository, logger *zap.Logger) approval.LeaveDeductor {
	return &LeaveEffects{
		Repo:   repo,
		Logger: logger,
	}
}

// DeductBalanceForRequest debits the ledger exactly once per approval
// request id. A replayed dispatch finds the ledger entry already recorded
// and leaves the balance untouched.
func (e *LeaveEffects) DeductBalanceForRequest(ctx context.Context, requestID, sourceRequestID, employeeID, leaveType string, days int) error {
	recorded, err := e.Repo.RecordDeduction(ctx, &LedgerEntry{
		RequestID:  requestID,
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		Days:       days,
	})
	if err != nil {
		return err
	}
	if !recorded {
		e.Logger.Info("leave deduction already applied, skipping",
			zap.String("request_id", requestID))
		return e.Repo.MarkApproved(ctx, sourceRequestID)
	}

	if err := e.Repo.DecrementBalance(ctx, employeeID, leaveType, days); err != nil {
		return err
	}
	return e.Repo.MarkApproved(ctx, sourceRequestID)
}
