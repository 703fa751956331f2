package ports

import (
	"context"

	"github.com/postwall/social-api/internal/core/domain"
)

// ProfileDetail is a public profile together with the user's posts.
type ProfileDetail struct {
	User  *domain.User
	Posts []PostDetail
}

// UpdateProfileInput is a partial profile edit requested by ActorID.
type UpdateProfileInput struct {
	ActorID string
	UserID  string
	Name    *string
	Bio     *string
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*ProfileDetail, error)
	GetSelf(ctx context.Context, actorID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error)
}
