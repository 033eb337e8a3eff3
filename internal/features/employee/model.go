package employee

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmployeeHierarchy is the HR-owned read model the approval engine consumes.
// JobLevel is a small bounded integer: 1 = individual contributor, higher
// values are more senior management.
type EmployeeHierarchy struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID    string             `bson:"employee_id" json:"employee_id"`
	Name          string             `bson:"name" json:"name"`
	ManagerID     string             `bson:"manager_id,omitempty" json:"manager_id,omitempty"`
	DepartmentID  string             `bson:"department_id" json:"department_id"`
	JobPositionID string             `bson:"job_position_id" json:"job_position_id"`
	JobTitle      string             `bson:"job_title" json:"job_title"`
	JobLevel      int                `bson:"job_level" json:"job_level"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// HierarchyNode is one rung of a resolved manager chain
type HierarchyNode struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	JobTitle   string `json:"job_title"`
	JobLevel   int    `json:"job_level"`
}
