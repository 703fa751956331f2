package service

import (
	"context"
	"fmt"

	"github.com/postwall/social-api/internal/core/domain"
	"github.com/postwall/social-api/internal/core/ports"
)

// postViews resolves author and commenter names for post listings, the way
// a populate step would, using one batched user lookup per call.
type postViews struct {
	users ports.UserRepository
}

func (v postViews) build(ctx context.Context, posts []*domain.Post) ([]ports.PostDetail, error) {
	var ids []string
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
		for _, c := range p.Comments {
			ids = append(ids, c.UserID)
		}
	}

	names, err := v.names(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.PostDetail, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDetail(p, names))
	}
	return out, nil
}

func (v postViews) one(ctx context.Context, p *domain.Post) (*ports.PostDetail, error) {
	details, err := v.build(ctx, []*domain.Post{p})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (v postViews) comments(ctx context.Context, p *domain.Post) ([]ports.CommentDetail, error) {
	ids := make([]string, 0, len(p.Comments))
	for _, c := range p.Comments {
		ids = append(ids, c.UserID)
	}
	names, err := v.names(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toCommentDetails(p.Comments, names), nil
}

func (v postViews) names(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		key := domain.NormalizeID(id)
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, id)
	}

	users, err := v.users.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	for _, u := range users {
		names[domain.NormalizeID(u.ID)] = u.Name
	}
	return names, nil
}

func toPostDetail(p *domain.Post, names map[string]string) ports.PostDetail {
	likes := make([]string, len(p.Likes))
	copy(likes, p.Likes)

	return ports.PostDetail{
		ID:        p.ID,
		Text:      p.Text,
		Author:    ports.UserRef{ID: p.AuthorID, Name: names[domain.NormalizeID(p.AuthorID)]},
		Likes:     likes,
		Comments:  toCommentDetails(p.Comments, names),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toCommentDetails(comments []domain.Comment, names map[string]string) []ports.CommentDetail {
	out := make([]ports.CommentDetail, len(comments))
	for i, c := range comments {
		out[i] = ports.CommentDetail{
			ID:        c.ID,
			User:      ports.UserRef{ID: c.UserID, Name: names[domain.NormalizeID(c.UserID)]},
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
	}
	return out
}
