package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/postwall/social-api/internal/core/domain"
	"github.com/postwall/social-api/internal/core/ports"
)

const postsCollection = "posts"

// PostRepository implements ports.PostRepository. Author, liker and
// commenter ids are stored as ObjectIDs referencing the users collection.
type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(postsCollection)}
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id"`
	User      primitive.ObjectID `bson:"user"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"created_at"`
}

type mongoPost struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Author    primitive.ObjectID   `bson:"author"`
	Text      string               `bson:"text"`
	Likes     []primitive.ObjectID `bson:"likes"`
	Comments  []mongoComment       `bson:"comments"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

func (mp mongoPost) toDomain() *domain.Post {
	comments := make([]domain.Comment, len(mp.Comments))
	for i, c := range mp.Comments {
		comments[i] = domain.Comment{
			ID:        c.ID.Hex(),
			UserID:    c.User.Hex(),
			Text:      c.Text,
			CreatedAt: c.CreatedAt.UTC(),
		}
	}
	return &domain.Post{
		ID:        mp.ID.Hex(),
		AuthorID:  mp.Author.Hex(),
		Text:      mp.Text,
		Likes:     hexIDs(mp.Likes),
		Comments:  comments,
		CreatedAt: mp.CreatedAt.UTC(),
		UpdatedAt: mp.UpdatedAt.UTC(),
	}
}

// likeIDs converts liker ids for storage, dropping any that are not ObjectIDs.
func likeIDs(likes []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(likes))
	for _, id := range likes {
		if oid, ok := objectID(id); ok {
			out = append(out, oid)
		}
	}
	return out
}

// Create inserts a new post document.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	author, ok := objectID(p.AuthorID)
	if !ok {
		return nil, fmt.Errorf("create post: invalid author id %q", p.AuthorID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPost{
		ID:        primitive.NewObjectID(),
		Author:    author,
		Text:      p.Text,
		Likes:     likeIDs(p.Likes),
		Comments:  []mongoComment{},
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID retrieves a post by id.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return mp.toDomain(), nil
}

// List returns posts matching filter, newest first.
func (r *PostRepository) List(ctx context.Context, filter ports.PostFilter) ([]*domain.Post, error) {
	q := bson.M{}
	if filter.AuthorID != "" {
		oid, ok := objectID(filter.AuthorID)
		if !ok {
			return []*domain.Post{}, nil
		}
		q["author"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]*domain.Post, len(docs))
	for i, d := range docs {
		posts[i] = d.toDomain()
	}
	return posts, nil
}

// UpdateText sets the post text and returns the updated post.
func (r *PostRepository) UpdateText(ctx context.Context, id, text string, at time.Time) (*domain.Post, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$set": bson.M{"text": text, "updated_at": at.UTC()}})
}

// AddLike adds the actor to the likers with $addToSet, leaving other
// actors' concurrent likes untouched.
func (r *PostRepository) AddLike(ctx context.Context, id, actorID string) (*domain.Post, error) {
	update, err := likeUpdate("$addToSet", actorID)
	if err != nil {
		return nil, err
	}
	return r.findAndUpdate(ctx, id, update)
}

// RemoveLike pulls every occurrence of the actor from the likers.
func (r *PostRepository) RemoveLike(ctx context.Context, id, actorID string) (*domain.Post, error) {
	update, err := likeUpdate("$pull", actorID)
	if err != nil {
		return nil, err
	}
	return r.findAndUpdate(ctx, id, update)
}

// likeUpdate builds a single-actor update on the likes array.
func likeUpdate(op, actorID string) (bson.M, error) {
	actor, ok := objectID(actorID)
	if !ok {
		return nil, fmt.Errorf("like: invalid actor id %q", actorID)
	}
	return bson.M{op: bson.M{"likes": actor}}, nil
}

// AddComment pushes a comment onto the post and returns the updated post.
func (r *PostRepository) AddComment(ctx context.Context, id string, c domain.Comment) (*domain.Post, error) {
	user, ok := objectID(c.UserID)
	if !ok {
		return nil, fmt.Errorf("add comment: invalid user id %q", c.UserID)
	}
	comment := mongoComment{
		ID:        primitive.NewObjectID(),
		User:      user,
		Text:      c.Text,
		CreatedAt: c.CreatedAt.UTC(),
	}
	return r.findAndUpdate(ctx, id, bson.M{"$push": bson.M{"comments": comment}})
}

// Delete removes the post.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the posts collection.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *PostRepository) findAndUpdate(ctx context.Context, id string, update bson.M) (*domain.Post, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return mp.toDomain(), nil
}
