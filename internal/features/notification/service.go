package notification

import (
	"context"
)

type NotificationService interface {
	Notify(ctx context.Context, employeeID, title, message string, notifType NotificationType, link string) error
	ListForEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type NotificationServiceImpl struct {
	Repo NotificationRepository
	Hub  *Hub
}

func NewNotificationService(repo NotificationRepository, hub *Hub) NotificationService {
	return &NotificationServiceImpl{
		Repo: repo,
		Hub:  hub,
	}
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, employeeID, title, message string, notifType NotificationType, link string) error {
	n := &Notification{
		EmployeeID: employeeID,
		Title:      title,
		Message:    message,
		Type:       notifType,
		Link:       link,
	}

	if err := s.Repo.Create(ctx, n); err != nil {
		return err
	}

	s.Hub.Push(employeeID, n)
	return nil
}

func (s *NotificationServiceImpl) ListForEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]Notification, error) {
	return s.Repo.FindByEmployee(ctx, employeeID, unreadOnly)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id string) error {
	return s.Repo.MarkRead(ctx, id)
}
