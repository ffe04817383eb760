package core

import (
	"context"

	"go.uber.org/zap"

	"matchday-backend-go/internal/db"
	"matchday-backend-go/internal/models"
)

type activityService struct {
	repo   db.ActivityRepository
	logger *zap.Logger
}

// NewActivityService creates an ActivityService writing to the activity-log
// collection.
func NewActivityService(repo db.ActivityRepository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

// Record appends an entry. A failed write is logged and swallowed; the
// triggering operation must not fail because its log entry did.
func (s *activityService) Record(ctx context.Context, entry models.ActivityLog) {
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log entry",
			zap.String("action", entry.Action),
			zap.String("targetId", entry.TargetID),
			zap.Error(err),
		)
	}
}
