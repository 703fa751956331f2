package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/postwall/social-api/internal/pkg/metrics"
	"github.com/postwall/social-api/internal/core/domain"
	"github.com/postwall/social-api/internal/core/ports"
)

type PostService struct {
	posts       ports.PostRepository
	views       postViews
	idempotency ports.IdempotencyStore
	activity    ports.ActivityPublisher
	logger      zerolog.Logger
}

// NewPostService wires the post use cases. idempotency may be nil, in which
// case Idempotency-Key headers are ignored.
func NewPostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	idempotency ports.IdempotencyStore,
	activity ports.ActivityPublisher,
	logger zerolog.Logger,
) *PostService {
	if activity == nil {
		activity = discardActivity{}
	}
	return &PostService{
		posts:       posts,
		views:       postViews{users: users},
		idempotency: idempotency,
		activity:    activity,
		logger:      logger,
	}
}

// Create publishes a new post authored by the actor. When an idempotency key
// was already used by the same actor, the earlier post is returned instead.
func (s *PostService) Create(ctx context.Context, in ports.CreatePostInput) (*ports.PostDetail, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, domain.NewValidationError("Post text cannot be empty")
	}

	if existing := s.replay(ctx, in.ActorID, in.IdempotencyKey); existing != nil {
		return s.views.one(ctx, existing)
	}

	now := time.Now().UTC()
	post, err := s.posts.Create(ctx, &domain.Post{
		AuthorID:  in.ActorID,
		Text:      in.Text,
		Likes:     []string{},
		Comments:  []domain.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("author", in.ActorID).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	if in.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Remember(ctx, in.ActorID, in.IdempotencyKey, post.ID); err != nil {
			s.logger.Warn().Err(err).Str("post_id", post.ID).Msg("failed to store idempotency key")
		}
	}

	metrics.PostsCreatedTotal.Inc()
	s.publish(domain.ActivityPostCreated, in.ActorID, post.ID)
	s.logger.Info().Str("post_id", post.ID).Str("author", in.ActorID).Msg("post created")

	return s.views.one(ctx, post)
}

// replay returns the post previously created under key, or nil.
func (s *PostService) replay(ctx context.Context, actorID, key string) *domain.Post {
	if key == "" || s.idempotency == nil {
		return nil
	}

	postID, found, err := s.idempotency.Lookup(ctx, actorID, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("post_id", postID).Msg("idempotent replay")
	return post
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]ports.PostDetail, error) {
	posts, err := s.posts.List(ctx, ports.PostFilter{})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return s.views.build(ctx, posts)
}

// ToggleLike likes the post for the actor, or unlikes it when already liked.
func (s *PostService) ToggleLike(ctx context.Context, actorID, postID string) (*ports.LikeResult, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	_, liked := domain.ToggleLike(post.Likes, actorID)
	if liked {
		post, err = s.posts.AddLike(ctx, post.ID, actorID)
	} else {
		post, err = s.posts.RemoveLike(ctx, post.ID, actorID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	kind := domain.ActivityPostUnliked
	action := "unlike"
	if liked {
		kind = domain.ActivityPostLiked
		action = "like"
	}
	metrics.LikesToggledTotal.WithLabelValues(action).Inc()
	s.publish(kind, actorID, post.ID)

	return &ports.LikeResult{Likes: len(post.Likes), Liked: liked}, nil
}

// Comment appends a comment by the actor and returns the post's comment list.
func (s *PostService) Comment(ctx context.Context, actorID, postID, text string) ([]ports.CommentDetail, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("Comment text cannot be empty")
	}

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	post, err := s.posts.AddComment(ctx, postID, domain.Comment{
		UserID:    actorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("add comment: %w", err)
	}

	metrics.CommentsCreatedTotal.Inc()
	s.publish(domain.ActivityCommented, actorID, post.ID)

	return s.views.comments(ctx, post)
}

// Update replaces the post text. Only the author may edit; the checks run
// in order: existence, ownership, then text presence.
func (s *PostService) Update(ctx context.Context, actorID, postID, text string) (*ports.PostDetail, error) {
	post, err := s.owned(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("Post text cannot be empty")
	}

	updated, err := s.posts.UpdateText(ctx, post.ID, text, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.publish(domain.ActivityPostEdited, actorID, post.ID)
	return s.views.one(ctx, updated)
}

// Delete removes a post owned by the actor.
func (s *PostService) Delete(ctx context.Context, actorID, postID string) error {
	post, err := s.owned(ctx, actorID, postID)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return err
		}
		return fmt.Errorf("delete post: %w", err)
	}

	s.publish(domain.ActivityPostDeleted, actorID, post.ID)
	s.logger.Info().Str("post_id", post.ID).Str("author", actorID).Msg("post deleted")
	return nil
}

// owned loads the post and applies the ownership policy against its author.
func (s *PostService) owned(ctx context.Context, actorID, postID string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !domain.CanModify(actorID, post.AuthorID) {
		return nil, domain.ErrForbidden
	}
	return post, nil
}

func (s *PostService) publish(kind domain.ActivityKind, actorID, postID string) {
	s.activity.Publish(ports.ActivityInput{
		Kind:       kind,
		ActorID:    actorID,
		PostID:     postID,
		OccurredAt: time.Now().UTC(),
	})
}

type discardActivity struct{}

func (discardActivity) Publish(ports.ActivityInput) {}
