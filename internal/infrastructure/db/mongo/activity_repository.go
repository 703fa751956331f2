package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/postwall/social-api/internal/core/domain"
	"github.com/postwall/social-api/internal/core/ports"
)

const activitiesCollection = "activities"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{col: db.Collection(activitiesCollection)}
}

// Insert persists an activity to the audit collection.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	doc := bson.M{
		"kind":         string(a.Kind),
		"actor":        a.ActorID,
		"occurred_at":  a.OccurredAt.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if a.PostID != "" {
		doc["post"] = a.PostID
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
