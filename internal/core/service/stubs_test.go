package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/postwall/social-api/internal/core/domain"
	"github.com/postwall/social-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	seq       int
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("%024x", r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[domain.NormalizeID(id)]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	u, ok := r.users[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	return cloneUser(u), nil
}

type stubPostRepo struct {
	posts map[string]*domain.Post
	seq   int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	clone.Likes = append([]string(nil), p.Likes...)
	clone.Comments = append([]domain.Comment(nil), p.Comments...)
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.seq++
	clone := clonePost(p)
	clone.ID = fmt.Sprintf("%024x", 1000+r.seq)
	// Ensure strictly increasing creation times for ordering assertions.
	clone.CreatedAt = clone.CreatedAt.Add(time.Duration(r.seq) * time.Millisecond)
	r.posts[clone.ID] = clone
	return clonePost(clone), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(_ context.Context, f ports.PostFilter) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, p := range r.posts {
		if f.AuthorID != "" && !domain.CanModify(f.AuthorID, p.AuthorID) {
			continue
		}
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubPostRepo) UpdateText(_ context.Context, id, text string, at time.Time) (*domain.Post, error) {
	p, ok := r.posts[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Text = text
	p.UpdatedAt = at
	return clonePost(p), nil
}

func (r *stubPostRepo) AddLike(_ context.Context, id, actorID string) (*domain.Post, error) {
	p, ok := r.posts[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if !p.HasLike(actorID) {
		p.ToggleLike(actorID)
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) RemoveLike(_ context.Context, id, actorID string) (*domain.Post, error) {
	p, ok := r.posts[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if p.HasLike(actorID) {
		p.ToggleLike(actorID)
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) AddComment(_ context.Context, id string, c domain.Comment) (*domain.Post, error) {
	p, ok := r.posts[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	c.ID = fmt.Sprintf("c%d", len(p.Comments)+1)
	p.Comments = append(p.Comments, c)
	return clonePost(p), nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[domain.NormalizeID(id)]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, domain.NormalizeID(id))
	return nil
}

type stubIdempotency struct {
	keys      map[string]string
	lookupErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, actorID, key string) (string, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	id, ok := s.keys[actorID+"|"+key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, actorID, key, postID string) error {
	s.keys[actorID+"|"+key] = postID
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.ActivityInput
}

func (p *recordingPublisher) Publish(a ports.ActivityInput) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, a)
}

func (p *recordingPublisher) kinds() []domain.ActivityKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ActivityKind, len(p.events))
	for i, e := range p.events {
		out[i] = e.Kind
	}
	return out
}
