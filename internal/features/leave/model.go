package leave

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
)

// LeaveRequest is the domain document; its approval lifecycle lives in the
// linked ApprovalRequest.
type LeaveRequest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID   string             `bson:"employee_id" json:"employee_id"`
	EmployeeName string             `bson:"employee_name" json:"employee_name"`
	LeaveType    string             `bson:"leave_type" json:"leave_type"`
	StartDate    time.Time          `bson:"start_date" json:"start_date"`
	EndDate      time.Time          `bson:"end_date" json:"end_date"`
	TotalDays    int                `bson:"total_days" json:"total_days"`
	Reason       string             `bson:"reason" json:"reason"`
	Status       LeaveStatus        `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// LeaveBalance tracks remaining days per employee and leave type.
type LeaveBalance struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID string             `bson:"employee_id" json:"employee_id"`
	LeaveType  string             `bson:"leave_type" json:"leave_type"`
	Balance    int                `bson:"balance" json:"balance"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// LedgerEntry records one applied deduction, keyed uniquely by the approval
// request id. The unique index is what makes the deduction idempotent.
type LedgerEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID  string             `bson:"request_id" json:"request_id"`
	EmployeeID string             `bson:"employee_id" json:"employee_id"`
	LeaveType  string             `bson:"leave_type" json:"leave_type"`
	Days       int                `bson:"days" json:"days"`
	AppliedAt  time.Time          `bson:"applied_at" json:"applied_at"`
}
