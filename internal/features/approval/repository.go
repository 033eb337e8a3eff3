package approval

import (
	"context"
	"fmt"
	"time"

	"go-hrms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DecideStepParams carries one conditional step decision. RequireApprover
// is empty for admin overrides; otherwise the filter also pins the current
// step to that approver or its delegate, so the precondition check and the
// mutation are one atomic document update.
type DecideStepParams struct {
	RequestID       string
	StepIndex       int
	Decision        StepStatus // StepStatusApproved or StepStatusRejected
	Notes           string
	RequireApprover string
	FinalStep       bool
}

type ApprovalRepository interface {
	Create(ctx context.Context, request *ApprovalRequest) error
	FindByID(ctx context.Context, id string) (*ApprovalRequest, error)
	FindAll(ctx context.Context) ([]ApprovalRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]ApprovalRequest, error)
	FindPendingForApprover(ctx context.Context, approverEmployeeID string) ([]ApprovalRequest, error)
	FindActive(ctx context.Context) ([]ApprovalRequest, error)

	// Conditional transitions. Each returns the updated document, or nil
	// when no document matched the precondition filter (caller classifies
	// the miss by re-fetching).
	DecideStep(ctx context.Context, params DecideStepParams) (*ApprovalRequest, error)
	ApproveEmptyChain(ctx context.Context, id string) (*ApprovalRequest, error)
	CancelRequest(ctx context.Context, id string) (*ApprovalRequest, error)
	DelegateStep(ctx context.Context, id string, stepIndex int, requireApprover, delegatedTo, delegatedToName string) (*ApprovalRequest, error)
	EscalateRequest(ctx context.Context, id string) (*ApprovalRequest, error)

	EnsureIndexes(ctx context.Context) error
}

type ApprovalRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewApprovalRepository(mongodb *database.MongodbDB) ApprovalRepository {
	return &ApprovalRepositoryImpl{
		Collection: mongodb.DB.Collection("approval_requests"),
	}
}

func (r *ApprovalRepositoryImpl) Create(ctx context.Context, request *ApprovalRequest) error {
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, request)
	return err
}

func (r *ApprovalRepositoryImpl) FindByID(ctx context.Context, id string) (*ApprovalRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var request ApprovalRequest
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *ApprovalRepositoryImpl) FindAll(ctx context.Context) ([]ApprovalRequest, error) {
	return r.find(ctx, bson.M{})
}

func (r *ApprovalRepositoryImpl) FindByEmployee(ctx context.Context, employeeID string) ([]ApprovalRequest, error) {
	return r.find(ctx, bson.M{"employee_id": employeeID})
}

// FindPendingForApprover returns decidable requests whose current step names
// the given employee as approver or delegate. The index-agnostic $elemMatch
// is narrowed in memory to the current step.
func (r *ApprovalRepositoryImpl) FindPendingForApprover(ctx context.Context, approverEmployeeID string) ([]ApprovalRequest, error) {
	candidates, err := r.find(ctx, bson.M{
		"status": bson.M{"$in": decidableStatuses()},
		"approval_chain": bson.M{"$elemMatch": bson.M{
			"status": StepStatusPending,
			"$or": []bson.M{
				{"approver_employee_id": approverEmployeeID},
				{"delegated_to": approverEmployeeID},
			},
		}},
	})
	if err != nil {
		return nil, err
	}

	var result []ApprovalRequest
	for _, req := range candidates {
		step := req.CurrentChainStep()
		if step == nil {
			continue
		}
		if step.ApproverEmployeeID == approverEmployeeID || step.DelegatedTo == approverEmployeeID {
			result = append(result, req)
		}
	}
	return result, nil
}

func (r *ApprovalRepositoryImpl) FindActive(ctx context.Context) ([]ApprovalRequest, error) {
	return r.find(ctx, bson.M{
		"status": bson.M{"$in": []RequestStatus{RequestStatusPending, RequestStatusInProgress}},
	})
}

func (r *ApprovalRepositoryImpl) find(ctx context.Context, filter bson.M) ([]ApprovalRequest, error) {
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []ApprovalRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *ApprovalRepositoryImpl) DecideStep(ctx context.Context, params DecideStepParams) (*ApprovalRequest, error) {
	oid, err := primitive.ObjectIDFromHex(params.RequestID)
	if err != nil {
		return nil, nil
	}

	stepPath := fmt.Sprintf("approval_chain.%d", params.StepIndex)

	filter := bson.M{
		"_id":                oid,
		"status":             bson.M{"$in": decidableStatuses()},
		"current_step":       params.StepIndex,
		stepPath + ".status": StepStatusPending,
	}
	if params.RequireApprover != "" {
		filter["$or"] = []bson.M{
			{stepPath + ".approver_employee_id": params.RequireApprover},
			{stepPath + ".delegated_to": params.RequireApprover},
		}
	}

	now := time.Now()
	set := bson.M{
		stepPath + ".status":     params.Decision,
		stepPath + ".notes":      params.Notes,
		stepPath + ".decided_at": now,
		"updated_at":             now,
	}

	switch {
	case params.Decision == StepStatusRejected:
		// Rejection terminates immediately; later steps stay pending,
		// recording that they were never reached.
		set["status"] = RequestStatusRejected
	case params.FinalStep:
		set["status"] = RequestStatusApproved
		set["current_step"] = params.StepIndex + 1
	default:
		set["status"] = RequestStatusInProgress
		set["current_step"] = params.StepIndex + 1
	}

	return r.findOneAndUpdate(ctx, filter, bson.M{"$set": set})
}

// ApproveEmptyChain finalizes a request whose subject had no managers. Only
// reachable through an admin override; a zero-length chain never approves
// itself.
func (r *ApprovalRepositoryImpl) ApproveEmptyChain(ctx context.Context, id string) (*ApprovalRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	filter := bson.M{
		"_id":            oid,
		"status":         bson.M{"$in": decidableStatuses()},
		"approval_chain": bson.M{"$size": 0},
	}
	update := bson.M{"$set": bson.M{
		"status":     RequestStatusApproved,
		"updated_at": time.Now(),
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

// CancelRequest flips a request to cancelled, but only while no step has
// been decided. current_step is still 0 and the status still pending in
// that window, so the filter is exact and races with a concurrent first
// approval resolve to exactly one winner.
func (r *ApprovalRepositoryImpl) CancelRequest(ctx context.Context, id string) (*ApprovalRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	filter := bson.M{
		"_id":          oid,
		"status":       RequestStatusPending,
		"current_step": 0,
	}
	update := bson.M{"$set": bson.M{
		"status":     RequestStatusCancelled,
		"updated_at": time.Now(),
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *ApprovalRepositoryImpl) DelegateStep(ctx context.Context, id string, stepIndex int, requireApprover, delegatedTo, delegatedToName string) (*ApprovalRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	stepPath := fmt.Sprintf("approval_chain.%d", stepIndex)

	filter := bson.M{
		"_id":                oid,
		"status":             bson.M{"$in": decidableStatuses()},
		"current_step":       stepIndex,
		stepPath + ".status": StepStatusPending,
	}
	if requireApprover != "" {
		filter[stepPath+".approver_employee_id"] = requireApprover
	}

	update := bson.M{"$set": bson.M{
		stepPath + ".delegated_to":      delegatedTo,
		stepPath + ".delegated_to_name": delegatedToName,
		"updated_at":                    time.Now(),
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *ApprovalRepositoryImpl) EscalateRequest(ctx context.Context, id string) (*ApprovalRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	filter := bson.M{
		"_id":    oid,
		"status": bson.M{"$in": []RequestStatus{RequestStatusPending, RequestStatusInProgress}},
	}
	update := bson.M{"$set": bson.M{
		"status":     RequestStatusEscalated,
		"updated_at": time.Now(),
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *ApprovalRepositoryImpl) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*ApprovalRequest, error) {
	var updated ApprovalRequest
	err := r.Collection.FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

func (r *ApprovalRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "approval_chain.approver_employee_id", Value: 1}}},
	})
	return err
}

func decidableStatuses() []RequestStatus {
	return []RequestStatus{RequestStatusPending, RequestStatusInProgress, RequestStatusEscalated}
}
