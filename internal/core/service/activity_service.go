package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/postwall/social-api/internal/pkg/metrics"
	"github.com/postwall/social-api/internal/core/domain"
	"github.com/postwall/social-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService writing to repo.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Record persists a single activity to the audit trail.
func (s *activityService) Record(ctx context.Context, in ports.ActivityInput) error {
	if in.ActorID == "" || in.Kind == "" {
		metrics.ActivitiesErrorsTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("record activity: missing actor or kind")
	}

	err := s.repo.Insert(ctx, &domain.Activity{
		Kind:       in.Kind,
		ActorID:    in.ActorID,
		PostID:     in.PostID,
		OccurredAt: in.OccurredAt,
	})
	if err != nil {
		metrics.ActivitiesErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("record activity: %w", err)
	}

	metrics.ActivitiesRecordedTotal.WithLabelValues(string(in.Kind)).Inc()
	s.log.Debug().
		Str("kind", string(in.Kind)).
		Str("actor", in.ActorID).
		Str("post_id", in.PostID).
		Msg("activity recorded")

	return nil
}
