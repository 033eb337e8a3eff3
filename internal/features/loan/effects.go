package loan

import (
	"context"
	"fmt"
	"math"
	"time"

	"go-hrms/internal/features/approval"

	"go.uber.org/zap"
)

// LoanEffects applies the post-approval side effect for loan requests.
// It depends only on the repository so the dispatcher can be constructed
// without pulling in the request-creating service.
type LoanEffects struct {
	Repo   LoanRepository
	Logger *zap.Logger
}

func NewLoanEffects(repo LoanRepository, logger *zap.Logger) approval.LoanActivator {
	return &LoanEffects{
		Repo:   repo,
		Logger: logger,
	}
}

// Activate flips the loan to active and seeds equal monthly installments.
// Re-activation of an already active loan is a no-op, so a replayed
// dispatch cannot double-seed the schedule.
func (e *LoanEffects) Activate(ctx context.Context, loanID string) error {
	loan, err := e.Repo.FindByID(ctx, loanID)
	if err != nil {
		return err
	}
	if loan == nil {
		return fmt.Errorf("loan %s not found", loanID)
	}

	activated, err := e.Repo.ActivatePending(ctx, loanID, buildSchedule(loan.Amount, loan.TermMonths, time.Now()))
	if err != nil {
		return err
	}
	if !activated {
		e.Logger.Info("loan already activated, skipping",
			zap.String("loan_id", loanID))
		return nil
	}

	e.Logger.Info("loan activated",
		zap.String("loan_id", loanID),
		zap.Int("term_months", loan.TermMonths))
	return nil
}

// buildSchedule splits the principal into equal monthly installments,
// rounding to cents and putting the remainder on the last installment.
func buildSchedule(amount float64, termMonths int, start time.Time) []Installment {
	monthly := math.Round(amount/float64(termMonths)*100) / 100

	installments := make([]Installment, termMonths)
	allocated := 0.0
	for i := 0; i < termMonths; i++ {
		due := start.AddDate(0, i+1, 0)
		amt := monthly
		if i == termMonths-1 {
			amt = math.Round((amount-allocated)*100) / 100
		}
		installments[i] = Installment{
			Seq:     i + 1,
			DueDate: due,
			Amount:  amt,
		}
		allocated += monthly
	}
	return installments
}
