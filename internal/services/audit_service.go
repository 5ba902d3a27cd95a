package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/sjperalta/billing-api/internal/jobs"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
)

type AuditService struct {
	repo   repository.AuditRepository
	worker *jobs.Worker
}

func NewAuditService(repo repository.AuditRepository, worker *jobs.Worker) *AuditService {
	return &AuditService{repo: repo, worker: worker}
}

// Log records an audit entry
func (s *AuditService) Log(ctx context.Context, actor Actor, action, entity string, entityID uint, details string) error {
	return s.repo.Create(ctx, &models.AuditLog{
		UserID:    actor.UserID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: actor.IP,
		UserAgent: truncate(actor.UserAgent, models.UserAgentMaxLen),
	})
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// LogAsync queues an audit entry on the background worker so the request
// does not wait for it.
func (s *AuditService) LogAsync(actor Actor, action, entity string, entityID uint, details string) {
	if actor.UserID == 0 {
		return
	}
	s.worker.Enqueue(fmt.Sprintf("audit:%s:%s", entity, action), func(ctx context.Context) error {
		return s.Log(ctx, actor, action, entity, entityID, details)
	})
}

// List retrieves audit logs, newest first
func (s *AuditService) List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
