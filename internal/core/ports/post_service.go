package ports

import (
	"context"
	"time"
)

// UserRef is the minimal author/commenter projection embedded in posts.
type UserRef struct {
	ID   string
	Name string
}

// CommentDetail is a comment with its author resolved.
type CommentDetail struct {
	ID        string
	User      UserRef
	Text      string
	CreatedAt time.Time
}

// PostDetail is the full post view returned to clients.
type PostDetail struct {
	ID        string
	Text      string
	Author    UserRef
	Likes     []string
	Comments  []CommentDetail
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePostInput carries the data needed to publish a post.
type CreatePostInput struct {
	ActorID        string
	Text           string
	IdempotencyKey string
}

// LikeResult reports the state of a post after a like toggle.
type LikeResult struct {
	Likes int
	Liked bool
}

// PostService defines use-case operations for posts. Every method takes the
// authenticated actor id; none of them trust ids from request bodies.
type PostService interface {
	Create(ctx context.Context, input CreatePostInput) (*PostDetail, error)
	List(ctx context.Context) ([]PostDetail, error)
	ToggleLike(ctx context.Context, actorID, postID string) (*LikeResult, error)
	Comment(ctx context.Context, actorID, postID, text string) ([]CommentDetail, error)
	Update(ctx context.Context, actorID, postID, text string) (*PostDetail, error)
	Delete(ctx context.Context, actorID, postID string) error
}
