package overtime

import (
	"context"

	"go-hrms/internal/features/approval"
)

// OvertimeEffects marks the source overtime record approved after the
// approval chain completes.
type OvertimeEffects struct {
	Repo OvertimeRepository
}

func NewOvertimeEffects(repo OvertimeRepository) approval.OvertimeCompleter {
	return &OvertimeEffects{Repo: repo}
}

func (e *OvertimeEffects) CompleteOvertime(ctx context.Context, overtimeID string) error {
	return e.Repo.MarkApproved(ctx, overtimeID)
}
