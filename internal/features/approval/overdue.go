package approval

import "time"

// IsRequestOverdue reports whether the request's current step has exceeded
// the per-step SLA. Pure read-side predicate: there is no timer anywhere
// that transitions state, dashboards evaluate this on fetch.
//
// The clock for a step starts when it becomes current: the predecessor's
// decision time, or the request's creation time for step 0. Elapsed time
// exactly equal to the SLA is not yet overdue.
func IsRequestOverdue(request *ApprovalRequest, sla time.Duration, now time.Time) bool {
	if request.Status != RequestStatusPending && request.Status != RequestStatusInProgress {
		return false
	}
	if request.CurrentStep >= len(request.ApprovalChain) {
		return false
	}

	reference := request.CreatedAt
	if request.CurrentStep > 0 {
		prev := request.ApprovalChain[request.CurrentStep-1]
		if prev.DecidedAt != nil {
			reference = *prev.DecidedAt
		}
	}

	return now.Sub(reference) > sla
}
