package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yukikurage/volunteer-scheduling-api/internal/logging"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ActivityService appends audit entries. Nothing reads them back besides listing.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	logger       *zap.Logger
}

func NewActivityService(activityRepo repository.ActivityRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		logger:       logging.OrNop(logger),
	}
}

// Record stores one entry. Failures are logged and returned; callers treat
// them as non-fatal.
func (s *ActivityService) Record(ctx context.Context, userID uint64, action, objectType string, objectID uint64, meta map[string]interface{}) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode activity meta: %w", err)
	}

	entry := &models.ActivityLog{
		UserID:     &userID,
		Action:     action,
		ObjectType: objectType,
		ObjectID:   fmt.Sprintf("%d", objectID),
		Meta:       datatypes.JSON(payload),
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to record activity", zap.String("action", action), zap.Error(err))
		return fmt.Errorf("failed to record activity: %w", err)
	}

	return nil
}

// Recent returns the user's latest entries
func (s *ActivityService) Recent(ctx context.Context, userID uint64, limit int) ([]models.ActivityLog, error) {
	entries, err := s.activityRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}
