package overtime

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OvertimeStatus string

const (
	OvertimeStatusPending  OvertimeStatus = "pending"
	OvertimeStatusApproved OvertimeStatus = "approved"
)

type OvertimeRequest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID   string             `bson:"employee_id" json:"employee_id"`
	EmployeeName string             `bson:"employee_name" json:"employee_name"`
	Date         time.Time          `bson:"date" json:"date"`
	Hours        float64            `bson:"hours" json:"hours"`
	Reason       string             `bson:"reason" json:"reason"`
	Status       OvertimeStatus     `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
