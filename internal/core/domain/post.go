package domain

import "time"

// Comment is a single reply attached to a post.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is the main content aggregate. AuthorID is fixed at creation.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToggleLike flips actorID's membership in the post's likes and reports
// whether the actor now likes the post.
func (p *Post) ToggleLike(actorID string) bool {
	var liked bool
	p.Likes, liked = ToggleLike(p.Likes, actorID)
	return liked
}

// ToggleLike removes every occurrence of actorID from likes when present,
// otherwise appends it once. The result never contains duplicates of actorID
// and the input slice is not modified.
func ToggleLike(likes []string, actorID string) ([]string, bool) {
	actor := NormalizeID(actorID)

	next := make([]string, 0, len(likes)+1)
	present := false
	for _, id := range likes {
		if NormalizeID(id) == actor {
			present = true
			continue
		}
		next = append(next, id)
	}
	if present {
		return next, false
	}
	return append(next, actor), true
}

// HasLike reports whether actorID is among the post's likers.
func (p *Post) HasLike(actorID string) bool {
	actor := NormalizeID(actorID)
	for _, id := range p.Likes {
		if NormalizeID(id) == actor {
			return true
		}
	}
	return false
}
