package approval

import (
	"context"
	"time"

	"go-hrms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DispatchStatus string

const (
	DispatchStatusPending   DispatchStatus = "pending"
	DispatchStatusCompleted DispatchStatus = "completed"
)

// DispatchRecord is the idempotency ledger entry for one terminal approval.
// The unique index on request_id is what makes "exactly once" hold across
// retries and crashed dispatch attempts.
type DispatchRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID   string             `bson:"request_id" json:"request_id"`
	RequestType RequestType        `bson:"request_type" json:"request_type"`
	Status      DispatchStatus     `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

type DispatchRepository interface {
	// Reserve claims the dispatch slot for a request. If a record already
	// exists it is returned as-is, so callers can tell a fresh claim from
	// a replay.
	Reserve(ctx context.Context, requestID string, requestType RequestType) (*DispatchRecord, error)
	MarkCompleted(ctx context.Context, requestID string) error
	ListPending(ctx context.Context) ([]DispatchRecord, error)
	EnsureIndexes(ctx context.Context) error
}

type DispatchRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDispatchRepository(mongodb *database.MongodbDB) DispatchRepository {
	return &DispatchRepositoryImpl{
		Collection: mongodb.DB.Collection("approval_dispatches"),
	}
}

func (r *DispatchRepositoryImpl) Reserve(ctx context.Context, requestID string, requestType RequestType) (*DispatchRecord, error) {
	record := DispatchRecord{
		ID:          primitive.NewObjectID(),
		RequestID:   requestID,
		RequestType: requestType,
		Status:      DispatchStatusPending,
		CreatedAt:   time.Now(),
	}

	_, err := r.Collection.InsertOne(ctx, record)
	if err == nil {
		return &record, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, err
	}

	// Someone already holds the slot; hand back their record.
	var existing DispatchRecord
	if err := r.Collection.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&existing); err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *DispatchRepositoryImpl) MarkCompleted(ctx context.Context, requestID string) error {
	now := time.Now()
	_, err := r.Collection.UpdateOne(ctx,
		bson.M{"request_id": requestID},
		bson.M{"$set": bson.M{"status": DispatchStatusCompleted, "completed_at": now}},
	)
	return err
}

// ListPending surfaces "approved but not dispatched" records for an
// external reconciliation pass.
func (r *DispatchRepositoryImpl) ListPending(ctx context.Context) ([]DispatchRecord, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"status": DispatchStatusPending})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []DispatchRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *DispatchRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "request_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
