package approval

import (
	"testing"
	"time"
)

func TestIsRequestOverdue(t *testing.T) {
	sla := 48 * time.Hour
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	firstDecision := created.Add(10 * time.Hour)

	pendingRequest := func(status RequestStatus) *ApprovalRequest {
		return &ApprovalRequest{
			Status:      status,
			CurrentStep: 0,
			CreatedAt:   created,
			ApprovalChain: []ApprovalChainStep{
				{Level: 2, ApproverEmployeeID: "M001", Status: StepStatusPending},
			},
		}
	}

	tests := []struct {
		name    string
		request *ApprovalRequest
		now     time.Time
		want    bool
	}{
		{
			name:    "just over the SLA",
			request: pendingRequest(RequestStatusPending),
			now:     created.Add(sla + time.Second),
			want:    true,
		},
		{
			name:    "exactly at the SLA is not overdue",
			request: pendingRequest(RequestStatusPending),
			now:     created.Add(sla),
			want:    false,
		},
		{
			name:    "well within the SLA",
			request: pendingRequest(RequestStatusPending),
			now:     created.Add(time.Hour),
			want:    false,
		},
		{
			name:    "approved request is never overdue",
			request: pendingRequest(RequestStatusApproved),
			now:     created.Add(30 * 24 * time.Hour),
			want:    false,
		},
		{
			name:    "escalated request is not counted again",
			request: pendingRequest(RequestStatusEscalated),
			now:     created.Add(30 * 24 * time.Hour),
			want:    false,
		},
		{
			name: "clock restarts at the previous step's decision",
			request: &ApprovalRequest{
				Status:      RequestStatusInProgress,
				CurrentStep: 1,
				CreatedAt:   created,
				ApprovalChain: []ApprovalChainStep{
					{Level: 2, ApproverEmployeeID: "M001", Status: StepStatusApproved, DecidedAt: &firstDecision},
					{Level: 3, ApproverEmployeeID: "M002", Status: StepStatusPending},
				},
			},
			now:  firstDecision.Add(sla - time.Minute),
			want: false,
		},
		{
			name: "second step past its own SLA window",
			request: &ApprovalRequest{
				Status:      RequestStatusInProgress,
				CurrentStep: 1,
				CreatedAt:   created,
				ApprovalChain: []ApprovalChainStep{
					{Level: 2, ApproverEmployeeID: "M001", Status: StepStatusApproved, DecidedAt: &firstDecision},
					{Level: 3, ApproverEmployeeID: "M002", Status: StepStatusPending},
				},
			},
			now:  firstDecision.Add(sla + time.Minute),
			want: true,
		},
		{
			name: "empty chain never goes overdue",
			request: &ApprovalRequest{
				Status:        RequestStatusPending,
				CurrentStep:   0,
				CreatedAt:     created,
				ApprovalChain: []ApprovalChainStep{},
			},
			now:  created.Add(100 * sla),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRequestOverdue(tt.request, sla, tt.now); got != tt.want {
				t.Errorf("IsRequestOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}
