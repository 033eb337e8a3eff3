package overtime

import (
	"context"
	"time"

	"go-hrms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OvertimeRepository interface {
	Create(ctx context.Context, request *OvertimeRequest) error
	FindByEmployee(ctx context.Context, employeeID string) ([]OvertimeRequest, error)
	MarkApproved(ctx context.Context, id string) error
}

type OvertimeRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewOvertimeRepository(mongodb *database.MongodbDB) OvertimeRepository {
	return &OvertimeRepositoryImpl{
		Collection: mongodb.DB.Collection("overtime_requests"),
	}
}

func (r *OvertimeRepositoryImpl) Create(ctx context.Context, request *OvertimeRequest) error {
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, request)
	return err
}

func (r *OvertimeRepositoryImpl) FindByEmployee(ctx context.Context, employeeID string) ([]OvertimeRequest, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"employee_id": employeeID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []OvertimeRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *OvertimeRepositoryImpl) MarkApproved(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = r.Collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": OvertimeStatusApproved, "updated_at": time.Now()}},
	)
	return err
}
