package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/postwall/social-api/internal/core/domain"
	"github.com/postwall/social-api/internal/core/ports"
)

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.User{Name: "a", Email: "a@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Name: "b", Email: "a@x.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserRepository_FindByIDNormalizes(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	u, _ := repo.Create(ctx, &domain.User{Name: "a", Email: "a@x.com"})

	got, err := repo.FindByID(ctx, strings.ToUpper(u.ID))
	if err != nil || got.ID != u.ID {
		t.Fatalf("expected to find %s, got %v %v", u.ID, got, err)
	}
	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()
	now := time.Now()

	first, _ := repo.Create(ctx, &domain.Post{AuthorID: "a", Text: "1", CreatedAt: now})
	second, _ := repo.Create(ctx, &domain.Post{AuthorID: "b", Text: "2", CreatedAt: now})
	third, _ := repo.Create(ctx, &domain.Post{AuthorID: "a", Text: "3", CreatedAt: now.Add(time.Second)})

	all, _ := repo.List(ctx, ports.PostFilter{})
	if len(all) != 3 || all[0].ID != third.ID || all[1].ID != second.ID || all[2].ID != first.ID {
		t.Fatalf("unexpected order: %v", texts(all))
	}

	mine, _ := repo.List(ctx, ports.PostFilter{AuthorID: "a"})
	if len(mine) != 2 || mine[0].ID != third.ID {
		t.Fatalf("unexpected filtered list: %v", texts(mine))
	}
}

func TestPostRepository_ReturnsCopies(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	p, _ := repo.Create(ctx, &domain.Post{AuthorID: "a", Text: "x"})
	p.Likes = append(p.Likes, "intruder")

	stored, _ := repo.FindByID(ctx, p.ID)
	if len(stored.Likes) != 0 {
		t.Fatalf("caller mutation leaked into store: %v", stored.Likes)
	}
}

func TestPostRepository_AddRemoveLike(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	p, _ := repo.Create(ctx, &domain.Post{AuthorID: "a", Text: "x"})

	updated, err := repo.AddLike(ctx, p.ID, "b")
	if err != nil || len(updated.Likes) != 1 {
		t.Fatalf("unexpected like result: %+v %v", updated, err)
	}
	updated, _ = repo.AddLike(ctx, p.ID, "b")
	if len(updated.Likes) != 1 {
		t.Fatalf("repeated AddLike duplicated the actor: %v", updated.Likes)
	}
	updated, _ = repo.RemoveLike(ctx, p.ID, "b")
	if len(updated.Likes) != 0 {
		t.Fatalf("expected no likes after RemoveLike, got %v", updated.Likes)
	}

	if _, err := repo.AddLike(ctx, "missing", "b"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostRepository_ConcurrentLikesAreKept(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	p, _ := repo.Create(ctx, &domain.Post{AuthorID: "a", Text: "x"})

	const actors = 50
	var wg sync.WaitGroup
	for i := 0; i < actors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := repo.AddLike(ctx, p.ID, fmt.Sprintf("actor-%d", i)); err != nil {
				t.Errorf("like %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	stored, _ := repo.FindByID(ctx, p.ID)
	if len(stored.Likes) != actors {
		t.Fatalf("expected %d likes, got %d", actors, len(stored.Likes))
	}
}

func TestPostRepository_CommentAndDelete(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	p, _ := repo.Create(ctx, &domain.Post{AuthorID: "a", Text: "x"})

	updated, err := repo.AddComment(ctx, p.ID, domain.Comment{UserID: "b", Text: "hi"})
	if err != nil || len(updated.Comments) != 1 || updated.Comments[0].ID == "" {
		t.Fatalf("unexpected comment result: %+v %v", updated, err)
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, p.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound on second delete, got %v", err)
	}
}

func TestIdempotencyStore_FirstWriteWins(t *testing.T) {
	s := NewIdempotencyStore()
	ctx := context.Background()

	_ = s.Remember(ctx, "a", "k", "p1")
	_ = s.Remember(ctx, "a", "k", "p2")

	got, found, _ := s.Lookup(ctx, "a", "k")
	if !found || got != "p1" {
		t.Fatalf("expected p1, got %q", got)
	}
	if _, found, _ := s.Lookup(ctx, "b", "k"); found {
		t.Fatalf("key must be scoped per actor")
	}
}

func texts(posts []*domain.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Text
	}
	return out
}
