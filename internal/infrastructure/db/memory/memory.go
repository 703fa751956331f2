// Package memory provides process-local implementations of the storage
// ports. They back STORE_DRIVER=memory and the end-to-end router tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/postwall/social-api/internal/core/domain"
	"github.com/postwall/social-api/internal/core/ports"
)

func newID() string { return primitive.NewObjectID().Hex() }

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return nil, domain.ErrUserExists
	}

	u := *user
	u.ID = newID()
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[domain.NormalizeID(id)]; ok {
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	u.UpdatedAt = time.Now().UTC()
	r.byID[u.ID] = u
	return &u, nil
}

// PostRepository implements ports.PostRepository.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[string]*domain.Post
	seq   int64
	order map[string]int64
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[string]*domain.Post),
		order: make(map[string]int64),
	}
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.Likes = append([]string{}, p.Likes...)
	c.Comments = append([]domain.Comment{}, p.Comments...)
	return &c
}

func (r *PostRepository) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clonePost(p)
	stored.ID = newID()
	r.seq++
	r.posts[stored.ID] = stored
	r.order[stored.ID] = r.seq
	return clonePost(stored), nil
}

func (r *PostRepository) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

// List orders by creation time, breaking ties by insertion order.
func (r *PostRepository) List(_ context.Context, filter ports.PostFilter) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if filter.AuthorID != "" && !domain.CanModify(filter.AuthorID, p.AuthorID) {
			continue
		}
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.order[out[i].ID] > r.order[out[j].ID]
	})
	return out, nil
}

func (r *PostRepository) UpdateText(_ context.Context, id, text string, at time.Time) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Text = text
	p.UpdatedAt = at
	return clonePost(p), nil
}

func (r *PostRepository) AddLike(_ context.Context, id, actorID string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if !p.HasLike(actorID) {
		p.ToggleLike(actorID)
	}
	return clonePost(p), nil
}

func (r *PostRepository) RemoveLike(_ context.Context, id, actorID string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if p.HasLike(actorID) {
		p.ToggleLike(actorID)
	}
	return clonePost(p), nil
}

func (r *PostRepository) AddComment(_ context.Context, id string, c domain.Comment) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[domain.NormalizeID(id)]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	c.ID = newID()
	p.Comments = append(p.Comments, c)
	return clonePost(p), nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := domain.NormalizeID(id)
	if _, ok := r.posts[key]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, key)
	delete(r.order, key)
	return nil
}

// ActivityRepository implements ports.ActivityRepository.
type ActivityRepository struct {
	mu         sync.Mutex
	activities []domain.Activity
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) Insert(_ context.Context, a *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities = append(r.activities, *a)
	return nil
}

// All returns a snapshot of the recorded activities in insertion order.
func (r *ActivityRepository) All() []domain.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Activity(nil), r.activities...)
}

// IdempotencyStore implements ports.IdempotencyStore without expiry.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{entries: make(map[string]string)}
}

func (s *IdempotencyStore) Lookup(_ context.Context, actorID, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	postID, ok := s.entries[actorID+":"+key]
	return postID, ok, nil
}

func (s *IdempotencyStore) Remember(_ context.Context, actorID, key, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[actorID+":"+key]; !ok {
		s.entries[actorID+":"+key] = postID
	}
	return nil
}

var (
	_ ports.UserRepository     = (*UserRepository)(nil)
	_ ports.PostRepository     = (*PostRepository)(nil)
	_ ports.ActivityRepository = (*ActivityRepository)(nil)
	_ ports.IdempotencyStore   = (*IdempotencyStore)(nil)
)
