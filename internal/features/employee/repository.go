package employee

import (
	"context"
	"time"

	"go-hrms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EmployeeRepository interface {
	Create(ctx context.Context, emp *EmployeeHierarchy) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*EmployeeHierarchy, error)
	ListAll(ctx context.Context) ([]EmployeeHierarchy, error)
	Update(ctx context.Context, employeeID string, updates bson.M) error
	EnsureIndexes(ctx context.Context) error
}

type EmployeeRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewEmployeeRepository(mongodb *database.MongodbDB) EmployeeRepository {
	return &EmployeeRepositoryImpl{
		Collection: mongodb.DB.Collection("employees"),
	}
}

func (r *EmployeeRepositoryImpl) Create(ctx context.Context, emp *EmployeeHierarchy) error {
	emp.CreatedAt = time.Now()
	emp.UpdatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, emp)
	return err
}

func (r *EmployeeRepositoryImpl) FindByEmployeeID(ctx context.Context, employeeID string) (*EmployeeHierarchy, error) {
	var emp EmployeeHierarchy
	err := r.Collection.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&emp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

// ListAll returns the full hierarchy snapshot. Callers re-read it before each
// chain generation; nothing is cached here.
func (r *EmployeeRepositoryImpl) ListAll(ctx context.Context) ([]EmployeeHierarchy, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []EmployeeHierarchy
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepositoryImpl) Update(ctx context.Context, employeeID string, updates bson.M) error {
	updates["updated_at"] = time.Now()
	_, err := r.Collection.UpdateOne(ctx, bson.M{"employee_id": employeeID}, bson.M{"$set": updates})
	return err
}

func (r *EmployeeRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "employee_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
