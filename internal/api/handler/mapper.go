package handler

import (
	"github.com/postwall/social-api/internal/core/domain"
	"github.com/postwall/social-api/internal/core/ports"
)

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Bio:   u.Bio,
	}
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{Token: r.Token, User: toUserResponse(r.User)}
}

func toUserRef(r ports.UserRef) userRefResponse {
	return userRefResponse{ID: r.ID, Name: r.Name}
}

func toCommentResponses(comments []ports.CommentDetail) []commentResponse {
	out := make([]commentResponse, len(comments))
	for i, c := range comments {
		out[i] = commentResponse{
			ID:        c.ID,
			User:      toUserRef(c.User),
			Text:      c.Text,
			CreatedAt: c.CreatedAt.UTC(),
		}
	}
	return out
}

func toPostResponse(p *ports.PostDetail) postResponse {
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}
	return postResponse{
		ID:        p.ID,
		Text:      p.Text,
		Author:    toUserRef(p.Author),
		Likes:     likes,
		Comments:  toCommentResponses(p.Comments),
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func toPostResponses(posts []ports.PostDetail) []postResponse {
	out := make([]postResponse, len(posts))
	for i := range posts {
		out[i] = toPostResponse(&posts[i])
	}
	return out
}

func toProfileResponse(p *ports.ProfileDetail) profileResponse {
	return profileResponse{
		User:  toUserResponse(p.User),
		Posts: toPostResponses(p.Posts),
	}
}
