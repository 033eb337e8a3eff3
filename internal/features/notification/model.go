package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeInfo     NotificationType = "info"
	NotificationTypeApproval NotificationType = "approval"
	NotificationTypeOverdue  NotificationType = "overdue"
)

type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID string             `bson:"employee_id" json:"employee_id"`
	Title      string             `bson:"title" json:"title"`
	Message    string             `bson:"message" json:"message"`
	Type       NotificationType   `bson:"type" json:"type"`
	Link       string             `bson:"link,omitempty" json:"link,omitempty"`
	IsRead     bool               `bson:"is_read" json:"is_read"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	ReadAt     *time.Time         `bson:"read_at,omitempty" json:"read_at,omitempty"`
}
