package leave

import (
	"context"
	"errors"
	"time"

	"go-hrms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInsufficientBalance is returned when a deduction would take the
// balance negative.
var ErrInsufficientBalance = errors.New("insufficient leave balance")

type LeaveRepository interface {
	Create(ctx context.Context, request *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	MarkApproved(ctx context.Context, id string) error

	GetBalance(ctx context.Context, employeeID, leaveType string) (*LeaveBalance, error)
	SetBalance(ctx context.Context, employeeID, leaveType string, balance int) error

	// RecordDeduction inserts the ledger entry for a request. Returns
	// false without error when the entry already exists (replayed
	// dispatch).
	RecordDeduction(ctx context.Context, entry *LedgerEntry) (bool, error)
	// DecrementBalance conditionally subtracts days, failing with
	// ErrInsufficientBalance rather than going negative.
	DecrementBalance(ctx context.Context, employeeID, leaveType string, days int) error

	EnsureIndexes(ctx context.Context) error
}

type LeaveRepositoryImpl struct {
	Requests *mongo.Collection
	Balances *mongo.Collection
	Ledger   *mongo.Collection
}

func NewLeaveRepository(mongodb *database.MongodbDB) LeaveRepository {
	return &LeaveRepositoryImpl{
		Requests: mongodb.DB.Collection("leave_requests"),
		Balances: mongodb.DB.Collection("leave_balances"),
		Ledger:   mongodb.DB.Collection("leave_ledger"),
	}
}

func (r *LeaveRepositoryImpl) Create(ctx context.Context, request *LeaveRequest) error {
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	_, err := r.Requests.InsertOne(ctx, request)
	return err
}

func (r *LeaveRepositoryImpl) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var request LeaveRequest
	err = r.Requests.FindOne(ctx, bson.M{"_id": oid}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *LeaveRepositoryImpl) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	cursor, err := r.Requests.Find(ctx, bson.M{"employee_id": employeeID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []LeaveRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *LeaveRepositoryImpl) MarkApproved(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Requests.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": LeaveStatusApproved, "updated_at": time.Now()}})
	return err
}

func (r *LeaveRepositoryImpl) GetBalance(ctx context.Context, employeeID, leaveType string) (*LeaveBalance, error) {
	var balance LeaveBalance
	err := r.Balances.FindOne(ctx, bson.M{"employee_id": employeeID, "leave_type": leaveType}).Decode(&balance)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &balance, nil
}

func (r *LeaveRepositoryImpl) SetBalance(ctx context.Context, employeeID, leaveType string, balance int) error {
	_, err := r.Balances.UpdateOne(ctx,
		bson.M{"employee_id": employeeID, "leave_type": leaveType},
		bson.M{"$set": bson.M{"balance": balance, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *LeaveRepositoryImpl) RecordDeduction(ctx context.Context, entry *LedgerEntry) (bool, error) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.AppliedAt = time.Now()

	_, err := r.Ledger.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *LeaveRepositoryImpl) DecrementBalance(ctx context.Context, employeeID, leaveType string, days int) error {
	result, err := r.Balances.UpdateOne(ctx,
		bson.M{
			"employee_id": employeeID,
			"leave_type":  leaveType,
			"balance":     bson.M{"$gte": days},
		},
		bson.M{
			"$inc": bson.M{"balance": -days},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

func (r *LeaveRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	if _, err := r.Ledger.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "request_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	_, err := r.Balances.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "leave_type", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
