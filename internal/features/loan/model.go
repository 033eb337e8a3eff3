package loan

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LoanStatus string

const (
	LoanStatusPending LoanStatus = "pending"
	LoanStatusActive  LoanStatus = "active"
	LoanStatusClosed  LoanStatus = "closed"
)

type Installment struct {
	Seq     int       `bson:"seq" json:"seq"`
	DueDate time.Time `bson:"due_date" json:"due_date"`
	Amount  float64   `bson:"amount" json:"amount"`
	Paid    bool      `bson:"paid" json:"paid"`
}

// Loan is the domain document. It stays pending until the linked approval
// request reaches terminal approval, at which point activation seeds the
// installment schedule.
type Loan struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID   string             `bson:"employee_id" json:"employee_id"`
	EmployeeName string             `bson:"employee_name" json:"employee_name"`
	Amount       float64            `bson:"amount" json:"amount"`
	TermMonths   int                `bson:"term_months" json:"term_months"`
	Purpose      string             `bson:"purpose" json:"purpose"`
	Status       LoanStatus         `bson:"status" json:"status"`
	Installments []Installment      `bson:"installments,omitempty" json:"installments,omitempty"`
	ActivatedAt  *time.Time         `bson:"activated_at,omitempty" json:"activated_at,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
