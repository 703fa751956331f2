package ports

import (
	"context"
	"time"

	"github.com/postwall/social-api/internal/core/domain"
)

// PostFilter narrows List. The zero value lists every post.
type PostFilter struct {
	AuthorID string // optional: only posts written by this user
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns matching posts ordered newest first.
	List(ctx context.Context, filter PostFilter) ([]*domain.Post, error)
	UpdateText(ctx context.Context, id, text string, at time.Time) (*domain.Post, error)
	// AddLike adds actorID to the likers unless already present and returns
	// the updated post. RemoveLike removes every occurrence of actorID.
	// Both apply to the stored set atomically, so concurrent likes by
	// different actors never overwrite each other.
	AddLike(ctx context.Context, id, actorID string) (*domain.Post, error)
	RemoveLike(ctx context.Context, id, actorID string) (*domain.Post, error)
	// AddComment appends a comment and returns the updated post.
	AddComment(ctx context.Context, id string, c domain.Comment) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// IdempotencyStore remembers which post a (actor, key) pair already created.
type IdempotencyStore interface {
	Lookup(ctx context.Context, actorID, key string) (postID string, found bool, err error)
	Remember(ctx context.Context, actorID, key, postID string) error
}
