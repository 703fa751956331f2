package ports

import (
	"context"
	"time"

	"github.com/postwall/social-api/internal/core/domain"
)

// ActivityInput is the DTO handed from services to the activity dispatcher.
type ActivityInput struct {
	Kind       domain.ActivityKind
	ActorID    string
	PostID     string
	OccurredAt time.Time
}

// ActivityPublisher enqueues activities for asynchronous recording.
type ActivityPublisher interface {
	Publish(activity ActivityInput)
}

// ActivityService records a single activity.
type ActivityService interface {
	Record(ctx context.Context, activity ActivityInput) error
}

// ActivityRepository persists activities to the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
}
