package employee

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

type EmployeeService interface {
	Create(ctx context.Context, emp EmployeeHierarchy) error
	Get(ctx context.Context, employeeID string) (*EmployeeHierarchy, error)
	List(ctx context.Context) ([]EmployeeHierarchy, error)
	Update(ctx context.Context, employeeID string, updates map[string]interface{}) error

	// Snapshot returns the subject plus the full hierarchy read model,
	// loaded fresh for chain generation.
	Snapshot(ctx context.Context, employeeID string) (*EmployeeHierarchy, []EmployeeHierarchy, error)
}

type EmployeeServiceImpl struct {
	Repo EmployeeRepository
}

func NewEmployeeService(repo EmployeeRepository) EmployeeService {
	return &EmployeeServiceImpl{Repo: repo}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, emp EmployeeHierarchy) error {
	if emp.EmployeeID == "" {
		return errors.New("employee_id is required")
	}
	if emp.JobLevel < 1 {
		return errors.New("job_level must be at least 1")
	}
	if emp.ManagerID == emp.EmployeeID {
		return errors.New("employee cannot be their own manager")
	}
	return s.Repo.Create(ctx, &emp)
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, employeeID string) (*EmployeeHierarchy, error) {
	return s.Repo.FindByEmployeeID(ctx, employeeID)
}

func (s *EmployeeServiceImpl) List(ctx context.Context) ([]EmployeeHierarchy, error) {
	return s.Repo.ListAll(ctx)
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, employeeID string, updates map[string]interface{}) error {
	bsonUpdates := bson.M{}
	for k, v := range updates {
		bsonUpdates[k] = v
	}
	return s.Repo.Update(ctx, employeeID, bsonUpdates)
}

func (s *EmployeeServiceImpl) Snapshot(ctx context.Context, employeeID string) (*EmployeeHierarchy, []EmployeeHierarchy, error) {
	subject, err := s.Repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, nil, err
	}
	if subject == nil {
		return nil, nil, errors.New("employee not found: " + employeeID)
	}

	all, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return subject, all, nil
}
