package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/postwall/social-api/internal/core/domain"
	"github.com/postwall/social-api/internal/core/ports"
)

type UserService struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	views    postViews
	activity ports.ActivityPublisher
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, posts ports.PostRepository, activity ports.ActivityPublisher, logger zerolog.Logger) *UserService {
	if activity == nil {
		activity = discardActivity{}
	}
	return &UserService{
		users:    users,
		posts:    posts,
		views:    postViews{users: users},
		activity: activity,
		logger:   logger,
	}
}

// GetProfile returns a public profile and the user's posts, newest first.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*ports.ProfileDetail, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.List(ctx, ports.PostFilter{AuthorID: user.ID})
	if err != nil {
		return nil, fmt.Errorf("list profile posts: %w", err)
	}

	details, err := s.views.build(ctx, posts)
	if err != nil {
		return nil, err
	}
	return &ports.ProfileDetail{User: user, Posts: details}, nil
}

// GetSelf returns the profile of the authenticated actor.
func (s *UserService) GetSelf(ctx context.Context, actorID string) (*domain.User, error) {
	return s.users.FindByID(ctx, actorID)
}

// UpdateProfile edits name and/or bio. Users may only edit themselves.
func (s *UserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error) {
	if !domain.CanModify(in.ActorID, in.UserID) {
		return nil, domain.ErrForbidden
	}

	update := domain.UserUpdate{Name: in.Name, Bio: in.Bio}
	if update.Empty() {
		return s.users.FindByID(ctx, in.UserID)
	}

	user, err := s.users.Update(ctx, in.UserID, update)
	if err != nil {
		return nil, err
	}

	s.activity.Publish(ports.ActivityInput{
		Kind:       domain.ActivityProfileEdit,
		ActorID:    in.ActorID,
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}
