package audit

import (
	"context"
	"time"

	common_models "go-hrms/internal/common/models"
)

type AuditService interface {
	LogChange(ctx context.Context, action common_models.AuditAction, module, recordID, actorID, actorName string, changes map[string]common_models.Change) error
	GetRecordHistory(ctx context.Context, module, recordID string) ([]common_models.AuditLog, error)
	ListRecent(ctx context.Context, limit int64) ([]common_models.AuditLog, error)
}

type AuditServiceImpl struct {
	Repo AuditRepository
}

func NewAuditService(repo AuditRepository) AuditService {
	return &AuditServiceImpl{Repo: repo}
}

func (s *AuditServiceImpl) LogChange(ctx context.Context, action common_models.AuditAction, module, recordID, actorID, actorName string, changes map[string]common_models.Change) error {
	return s.Repo.Create(ctx, &common_models.AuditLog{
		Action:    action,
		Module:    module,
		RecordID:  recordID,
		ActorID:   actorID,
		ActorName: actorName,
		Changes:   changes,
		Timestamp: time.Now(),
	})
}

func (s *AuditServiceImpl) GetRecordHistory(ctx context.Context, module, recordID string) ([]common_models.AuditLog, error) {
	return s.Repo.FindByRecord(ctx, module, recordID)
}

func (s *AuditServiceImpl) ListRecent(ctx context.Context, limit int64) ([]common_models.AuditLog, error) {
	return s.Repo.List(ctx, limit)
}
