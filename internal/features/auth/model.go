package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the login account linked to an employee record. Permissions are
// configurable codes; the approval role is derived from them at request
// time rather than stored.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID   string             `bson:"employee_id" json:"employee_id"`
	EmployeeName string             `bson:"employee_name" json:"employee_name"`
	Password     string             `bson:"password" json:"-"`
	Permissions  []string           `bson:"permissions" json:"permissions"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
