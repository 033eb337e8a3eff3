package leave

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

type fakeLeaveRepo struct {
	LeaveRepository

	balances map[string]int
	ledger   map[string]bool
	approved map[string]bool
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{
		balances: make(map[string]int),
		ledger:   make(map[string]bool),
		approved: make(map[string]bool),
	}
}

func (f *fakeLeaveRepo) RecordDeduction(ctx context.Context, entry *LedgerEntry) (bool, error) {
	if f.ledger[entry.RequestID] {
		return false, nil
	}
	f.ledger[entry.RequestID] = true
	return true, nil
}

func (f *fakeLeaveRepo) DecrementBalance(ctx context.Context, employeeID, leaveType string, days int) error {
	key := employeeID + "/" + leaveType
	if f.balances[key] < days {
		return ErrInsufficientBalance
	}
	f.balances[key] -= days
	return nil
}

func (f *fakeLeaveRepo) MarkApproved(ctx context.Context, id string) error {
	f.approved[id] = true
	return nil
}

func TestDeductBalanceForRequestIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLeaveRepo()
	repo.balances["E001/annual"] = 20

	effects := &LeaveEffects{Repo: repo, Logger: zap.NewNop()}

	if err := effects.DeductBalanceForRequest(ctx, "req-1", "leave-1", "E001", "annual", 3); err != nil {
		t.Fatalf("first deduction error = %v", err)
	}
	if got := repo.balances["E001/annual"]; got != 17 {
		t.Fatalf("balance = %d, want 17", got)
	}
	if !repo.approved["leave-1"] {
		t.Error("source leave request not marked approved")
	}

	// Replayed dispatch: ledger entry already exists, balance untouched.
	if err := effects.DeductBalanceForRequest(ctx, "req-1", "leave-1", "E001", "annual", 3); err != nil {
		t.Fatalf("replayed deduction error = %v", err)
	}
	if got := repo.balances["E001/annual"]; got != 17 {
		t.Fatalf("balance after replay = %d, want 17 (debited once)", got)
	}
}

func TestDeductBalanceForRequestInsufficient(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLeaveRepo()
	repo.balances["E001/annual"] = 1

	effects := &LeaveEffects{Repo: repo, Logger: zap.NewNop()}

	err := effects.DeductBalanceForRequest(ctx, "req-2", "leave-2", "E001", "annual", 5)
	if err != ErrInsufficientBalance {
		t.Fatalf("error = %v, want ErrInsufficientBalance", err)
	}
	if repo.approved["leave-2"] {
		t.Error("source marked approved despite failed deduction")
	}
}
