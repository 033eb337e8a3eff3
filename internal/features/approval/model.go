package approval

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestType string

const (
	RequestTypeOvertime RequestType = "overtime"
	RequestTypeLeave    RequestType = "leave"
	RequestTypeLoan     RequestType = "loan"
)

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusApproved   RequestStatus = "approved"
	RequestStatusRejected   RequestStatus = "rejected"
	RequestStatusCancelled  RequestStatus = "cancelled"
	RequestStatusEscalated  RequestStatus = "escalated"
)

type StepStatus string

const (
	StepStatusPending  StepStatus = "pending"
	StepStatusApproved StepStatus = "approved"
	StepStatusRejected StepStatus = "rejected"
	StepStatusSkipped  StepStatus = "skipped"
)

// ApprovalChainStep is one rung of the approval chain embedded in a request.
// The chain is immutable once the request is pending, except for delegation.
// ApproverEmployeeID is the approver of record and never changes; DelegatedTo
// only redirects decision authority.
type ApprovalChainStep struct {
	ID                 string     `bson:"id" json:"id"`
	Level              int        `bson:"level" json:"level"`
	ApproverEmployeeID string     `bson:"approver_employee_id" json:"approver_employee_id"`
	ApproverName       string     `bson:"approver_name" json:"approver_name"`
	ApproverJobTitle   string     `bson:"approver_job_title" json:"approver_job_title"`
	Status             StepStatus `bson:"status" json:"status"`
	Notes              string     `bson:"notes,omitempty" json:"notes,omitempty"`
	DelegatedTo        string     `bson:"delegated_to,omitempty" json:"delegated_to,omitempty"`
	DelegatedToName    string     `bson:"delegated_to_name,omitempty" json:"delegated_to_name,omitempty"`
	DecidedAt          *time.Time `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
}

// ApprovalRequest is the root entity. One document per request, chain
// denormalized into it so every transition is a single atomic document
// update. Requests are never deleted; terminal statuses are the audit trail.
type ApprovalRequest struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RequestType     RequestType         `bson:"request_type" json:"request_type"`
	EmployeeID      string              `bson:"employee_id" json:"employee_id"`
	EmployeeName    string              `bson:"employee_name" json:"employee_name"`
	RequestData     bson.M              `bson:"request_data" json:"request_data"`
	ApprovalChain   []ApprovalChainStep `bson:"approval_chain" json:"approval_chain"`
	CurrentStep     int                 `bson:"current_step" json:"current_step"`
	Status          RequestStatus       `bson:"status" json:"status"`
	SourceRequestID string              `bson:"source_request_id,omitempty" json:"source_request_id,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}

// IsTerminal reports whether no further decision can change the request.
func (r *ApprovalRequest) IsTerminal() bool {
	switch r.Status {
	case RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled:
		return true
	}
	return false
}

// Decidable reports whether the current step may still be approved or
// rejected. Escalated requests remain decidable: escalation flags a stall,
// it does not close the request.
func (r *ApprovalRequest) Decidable() bool {
	switch r.Status {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusEscalated:
		return true
	}
	return false
}

// CurrentChainStep returns the step awaiting decision, or nil if the chain
// is exhausted or empty.
func (r *ApprovalRequest) CurrentChainStep() *ApprovalChainStep {
	if r.CurrentStep < 0 || r.CurrentStep >= len(r.ApprovalChain) {
		return nil
	}
	return &r.ApprovalChain[r.CurrentStep]
}

// RequestWithOverdue is the read-side shape handed to dashboards: the raw
// request plus the computed overdue flag.
type RequestWithOverdue struct {
	ApprovalRequest `bson:",inline"`
	IsOverdue       bool `json:"is_overdue"`
}
