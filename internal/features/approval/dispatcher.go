package approval

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// LeaveDeductor debits the leave balance ledger after final approval and
// marks the source leave document approved. The implementation must be
// idempotent per request id.
type LeaveDeductor interface {
	DeductBalanceForRequest(ctx context.Context, requestID, sourceRequestID, employeeID, leaveType string, days int) error
}

// LoanActivator flips an approved loan to active and seeds its installment
// schedule. Idempotent per loan.
type LoanActivator interface {
	Activate(ctx context.Context, loanID string) error
}

// OvertimeCompleter marks the source overtime record approved. Marking an
// already approved record again is harmless.
type OvertimeCompleter interface {
	CompleteOvertime(ctx context.Context, overtimeID string) error
}

// SideEffectDispatcher performs the domain completion action for a
// terminally approved request, exactly once per request id.
type SideEffectDispatcher interface {
	Dispatch(ctx context.Context, request *ApprovalRequest) error
}

type SideEffectDispatcherImpl struct {
	Repo              DispatchRepository
	LeaveDeductor     LeaveDeductor
	LoanActivator     LoanActivator
	OvertimeCompleter OvertimeCompleter
	Logger            *zap.Logger
}

func NewSideEffectDispatcher(
	repo DispatchRepository,
	leaveDeductor LeaveDeductor,
	loanActivator LoanActivator,
	overtimeCompleter OvertimeCompleter,
	logger *zap.Logger,
) SideEffectDispatcher {
	return &SideEffectDispatcherImpl{
		Repo:              repo,
		LeaveDeductor:     leaveDeductor,
		LoanActivator:     loanActivator,
		OvertimeCompleter: overtimeCompleter,
		Logger:            logger,
	}
}

// Dispatch reserves the idempotency slot, applies the domain effect, then
// marks the slot completed. A replay that finds a completed slot is a
// no-op; a replay that finds a pending slot (crash between effect and
// completion) re-applies the effect, which the effect implementations
// tolerate because they are themselves keyed by request id.
func (d *SideEffectDispatcherImpl) Dispatch(ctx context.Context, request *ApprovalRequest) error {
	if request.Status != RequestStatusApproved {
		return fmt.Errorf("dispatch refused: request %s is %s, not approved", request.ID.Hex(), request.Status)
	}

	requestID := request.ID.Hex()

	record, err := d.Repo.Reserve(ctx, requestID, request.RequestType)
	if err != nil {
		return &StoreError{Err: err}
	}
	if record.Status == DispatchStatusCompleted {
		d.Logger.Info("side effect already dispatched, skipping",
			zap.String("request_id", requestID))
		return nil
	}

	switch request.RequestType {
	case RequestTypeLeave:
		leaveType, _ := request.RequestData["leave_type"].(string)
		days := asInt(request.RequestData["total_days"])
		if leaveType == "" || days <= 0 {
			return fmt.Errorf("request %s has malformed leave payload", requestID)
		}
		if request.SourceRequestID == "" {
			return fmt.Errorf("request %s has no source leave reference", requestID)
		}
		if err := d.LeaveDeductor.DeductBalanceForRequest(ctx, requestID, request.SourceRequestID, request.EmployeeID, leaveType, days); err != nil {
			return err
		}
	case RequestTypeLoan:
		if request.SourceRequestID == "" {
			return fmt.Errorf("request %s has no source loan reference", requestID)
		}
		if err := d.LoanActivator.Activate(ctx, request.SourceRequestID); err != nil {
			return err
		}
	case RequestTypeOvertime:
		if request.SourceRequestID == "" {
			return fmt.Errorf("request %s has no source overtime reference", requestID)
		}
		if err := d.OvertimeCompleter.CompleteOvertime(ctx, request.SourceRequestID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown request type %q", request.RequestType)
	}

	if err := d.Repo.MarkCompleted(ctx, requestID); err != nil {
		// Effect applied but slot still pending: the next replay re-applies
		// idempotently and completes the slot.
		d.Logger.Error("failed to mark dispatch completed",
			zap.String("request_id", requestID), zap.Error(err))
		return &StoreError{Err: err}
	}

	d.Logger.Info("side effect dispatched",
		zap.String("request_id", requestID),
		zap.String("request_type", string(request.RequestType)))
	return nil
}

// asInt copes with BSON round trips turning numbers into int32/int64/float64
func asInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
