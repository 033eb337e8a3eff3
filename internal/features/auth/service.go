package auth

import (
	"context"
	"errors"

	"go-hrms/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, employeeID, password string) (string, error)
}

type AuthServiceImpl struct {
	UserRepo UserRepository
	Logger   *zap.Logger
}

func NewAuthService(userRepo UserRepository, logger *zap.Logger) AuthService {
	return &AuthServiceImpl{
		UserRepo: userRepo,
		Logger:   logger,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, employeeID, password string) (string, error) {
	user, err := s.UserRepo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errors.New("invalid credentials")
	}

	// Check password (TODO: use bcrypt)
	if user.Password != password {
		return "", errors.New("invalid credentials")
	}

	if user.Status == "suspended" || user.Status == "inactive" {
		return "", errors.New("account " + user.Status)
	}

	permissions := user.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	token, err := utils.GenerateToken(user.EmployeeID, user.EmployeeName, permissions)
	if err != nil {
		return "", err
	}

	s.Logger.Info("login", zap.String("employee_id", user.EmployeeID))
	return token, nil
}
