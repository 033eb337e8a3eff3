package loan

import (
	"context"
	"errors"
	"strings"

	common_models "go-hrms/internal/common/models"
	"go-hrms/internal/features/approval"
	"go-hrms/internal/features/employee"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type CreateLoanInput struct {
	Amount     float64 `json:"amount"`
	TermMonths int     `json:"term_months"`
	Purpose    string  `json:"purpose"`
}

type LoanService interface {
	CreateLoanRequest(ctx context.Context, caller common_models.CallerContext, input CreateLoanInput) (*Loan, error)
	GetLoan(ctx context.Context, id string) (*Loan, error)
	GetOwnLoans(ctx context.Context, employeeID string) ([]Loan, error)
}

type LoanServiceImpl struct {
	Repo            LoanRepository
	EmployeeService employee.EmployeeService
	ApprovalService approval.ApprovalService
	ChainPolicy     approval.ChainPolicy
	Logger          *zap.Logger
}

func NewLoanService(
	repo LoanRepository,
	employeeService employee.EmployeeService,
	approvalService approval.ApprovalService,
	chainPolicy approval.ChainPolicy,
	logger *zap.Logger,
) LoanService {
	return &LoanServiceImpl{
		Repo:            repo,
		EmployeeService: employeeService,
		ApprovalService: approvalService,
		ChainPolicy:     chainPolicy,
		Logger:          logger,
	}
}

func (s *LoanServiceImpl) CreateLoanRequest(ctx context.Context, caller common_models.CallerContext, input CreateLoanInput) (*Loan, error) {
	if input.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if input.TermMonths < 1 || input.TermMonths > 60 {
		return nil, errors.New("term_months must be between 1 and 60")
	}

	subject, all, err := s.EmployeeService.Snapshot(ctx, caller.EmployeeID)
	if err != nil {
		return nil, err
	}

	chain, errs := approval.GenerateApprovalChain(*subject, all, approval.RequestTypeLoan, s.ChainPolicy)
	if len(errs) > 0 {
		return nil, errors.New("cannot submit loan request: " + strings.Join(errs, "; "))
	}

	loan := &Loan{
		EmployeeID:   caller.EmployeeID,
		EmployeeName: caller.EmployeeName,
		Amount:       input.Amount,
		TermMonths:   input.TermMonths,
		Purpose:      input.Purpose,
		Status:       LoanStatusPending,
	}
	if err := s.Repo.Create(ctx, loan); err != nil {
		return nil, err
	}

	err = s.ApprovalService.CreateRequest(ctx, &approval.ApprovalRequest{
		RequestType:  approval.RequestTypeLoan,
		EmployeeID:   caller.EmployeeID,
		EmployeeName: caller.EmployeeName,
		RequestData: bson.M{
			"amount":      input.Amount,
			"term_months": input.TermMonths,
			"purpose":     input.Purpose,
		},
		ApprovalChain:   chain,
		SourceRequestID: loan.ID.Hex(),
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("loan request submitted",
		zap.String("employee_id", caller.EmployeeID),
		zap.Float64("amount", input.Amount))
	return loan, nil
}

func (s *LoanServiceImpl) GetLoan(ctx context.Context, id string) (*Loan, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *LoanServiceImpl) GetOwnLoans(ctx context.Context, employeeID string) ([]Loan, error) {
	return s.Repo.FindByEmployee(ctx, employeeID)
}
