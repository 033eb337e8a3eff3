package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionUpdate   AuditAction = "UPDATE"
	AuditActionApproval AuditAction = "APPROVAL"
	AuditActionDispatch AuditAction = "DISPATCH"
	AuditActionLogin    AuditAction = "LOGIN"
	AuditActionCron     AuditAction = "CRON"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`       // The feature/collection name
	RecordID  string             `bson:"record_id" json:"record_id"` // The ID of the record being modified
	ActorID   string             `bson:"actor_id" json:"actor_id"`   // Employee ID who performed the action
	ActorName string             `bson:"actor_name,omitempty" json:"actor_name,omitempty"`
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"` // field -> {old, new}
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// CallerContext identifies the acting employee on every mutating call.
// It is built at the HTTP boundary from the JWT claims; the core never
// reads session state on its own.
type CallerContext struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Permissions  []string `json:"permissions"`
}

// Log is the persisted shape of a mirrored zap entry
type Log struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppId        string             `bson:"app_id" json:"app_id"`
	Message      string             `bson:"message" json:"message"`
	EmployeeID   string             `bson:"employee_id,omitempty" json:"employee_id,omitempty"`
	RequestID    string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Caller       string             `bson:"caller,omitempty" json:"caller,omitempty"`
	LogLevelId   int                `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time          `bson:"created_on_utc" json:"created_on_utc"`
}
