package mongodb

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/internal/utils/functional"
	"github.com/siahsang/blogapi/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type postDocument struct {
	ID         string    `bson:"_id"`
	Title      string    `bson:"title"`
	Caption    string    `bson:"caption"`
	Slug       string    `bson:"slug"`
	Body       string    `bson:"body"`
	Photo      string    `bson:"photo"`
	User       string    `bson:"user"`
	Tags       []string  `bson:"tags"`
	Categories []string  `bson:"categories"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func newPostDocument(p *models.Post) postDocument {
	return postDocument{
		ID:         p.ID,
		Title:      p.Title,
		Caption:    p.Caption,
		Slug:       p.Slug,
		Body:       string(p.Body),
		Photo:      p.Photo,
		User:       p.UserID,
		Tags:       nonNil(p.Tags),
		Categories: nonNil(p.CategoryIDs),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (d postDocument) toModel() *models.Post {
	return &models.Post{
		ID:          d.ID,
		Title:       d.Title,
		Caption:     d.Caption,
		Slug:        d.Slug,
		Body:        json.RawMessage(d.Body),
		Photo:       d.Photo,
		UserID:      d.User,
		Tags:        d.Tags,
		CategoryIDs: d.Categories,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// containsRegex matches keyword literally and case-insensitively.
func containsRegex(keyword string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(keyword), "$options": "i"}
}

// postFilter renders the listing filter as a query document.
func postFilter(f filter.Filter) bson.M {
	query := bson.M{}
	if f.HasSearch() {
		query["$or"] = bson.A{
			bson.M{"title": containsRegex(f.SearchKeyword)},
			bson.M{"caption": containsRegex(f.SearchKeyword)},
		}
	}
	if f.HasCategories() {
		query["categories"] = bson.M{"$in": f.Categories}
	}
	return query
}

var newestFirst = bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}}

func (s *Store) ListPosts(ctx context.Context, f filter.Filter) ([]*models.Post, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	docs, err := findAll[postDocument](ctx, s.posts, postFilter(f), pageOptions(newestFirst, f.Offset(), f.Limit))
	if err != nil {
		return nil, err
	}
	return functional.Map(docs, postDocument.toModel), nil
}

func (s *Store) CountPosts(ctx context.Context, f filter.Filter) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	count, err := s.posts.CountDocuments(ctx, postFilter(f))
	if err != nil {
		return 0, xerrors.New(err)
	}
	return count, nil
}

func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var doc postDocument
	if err := s.posts.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.posts.InsertOne(ctx, newPostDocument(post)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return xerrors.New(core.ErrDuplicatedSlug)
		}
		return xerrors.New(err)
	}
	return nil
}

func (s *Store) UpdatePost(ctx context.Context, post *models.Post) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.posts.ReplaceOne(ctx, bson.M{"_id": post.ID}, newPostDocument(post))
	if err != nil {
		return xerrors.New(err)
	}
	return requireMatched(res.MatchedCount)
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return xerrors.New(err)
	}
	return requireMatched(res.DeletedCount)
}

func (s *Store) RemoveCategory(ctx context.Context, categoryID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.posts.UpdateMany(ctx,
		bson.M{"categories": categoryID},
		bson.M{"$pull": bson.M{"categories": categoryID}})
	if err != nil {
		return xerrors.New(err)
	}
	return nil
}
