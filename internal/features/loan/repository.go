package loan

import (
	"context"
	"time"

	"go-hrms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LoanRepository interface {
	Create(ctx context.Context, loan *Loan) error
	FindByID(ctx context.Context, id string) (*Loan, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Loan, error)

	// ActivatePending flips a pending loan to active and seeds its
	// installments in one conditional update. Returns false when the loan
	// was not pending (already activated or closed), which callers treat
	// as an idempotent no-op.
	ActivatePending(ctx context.Context, id string, installments []Installment) (bool, error)
}

type LoanRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewLoanRepository(mongodb *database.MongodbDB) LoanRepository {
	return &LoanRepositoryImpl{
		Collection: mongodb.DB.Collection("loans"),
	}
}

func (r *LoanRepositoryImpl) Create(ctx context.Context, loan *Loan) error {
	if loan.ID.IsZero() {
		loan.ID = primitive.NewObjectID()
	}
	loan.CreatedAt = time.Now()
	loan.UpdatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, loan)
	return err
}

func (r *LoanRepositoryImpl) FindByID(ctx context.Context, id string) (*Loan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var loan Loan
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&loan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepositoryImpl) FindByEmployee(ctx context.Context, employeeID string) ([]Loan, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"employee_id": employeeID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var loans []Loan
	if err = cursor.All(ctx, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *LoanRepositoryImpl) ActivatePending(ctx context.Context, id string, installments []Installment) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	now := time.Now()
	result, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": oid, "status": LoanStatusPending},
		bson.M{"$set": bson.M{
			"status":       LoanStatusActive,
			"installments": installments,
			"activated_at": now,
			"updated_at":   now,
		}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}
