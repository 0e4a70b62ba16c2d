package mongodb

import (
	"context"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/internal/utils/functional"
	"github.com/siahsang/blogapi/models"
	"go.mongodb.org/mongo-driver/bson"
)

type categoryDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func newCategoryDocument(c *models.Category) categoryDocument {
	return categoryDocument{ID: c.ID, Title: c.Title, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (d categoryDocument) toModel() *models.Category {
	return &models.Category{ID: d.ID, Title: d.Title, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

func categoryFilter(f filter.Filter) bson.M {
	if !f.HasSearch() {
		return bson.M{}
	}
	return bson.M{"title": containsRegex(f.SearchKeyword)}
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.categories.InsertOne(ctx, newCategoryDocument(category)); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var doc categoryDocument
	if err := s.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

func (s *Store) GetCategoriesByIDList(ctx context.Context, ids []string) ([]*models.Category, error) {
	if len(ids) == 0 {
		return []*models.Category{}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	docs, err := findAll[categoryDocument](ctx, s.categories, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return functional.Map(docs, categoryDocument.toModel), nil
}

func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.categories.UpdateOne(ctx,
		bson.M{"_id": category.ID},
		bson.M{"$set": bson.M{"title": category.Title, "updatedAt": category.UpdatedAt}})
	if err != nil {
		return xerrors.New(err)
	}
	return requireMatched(res.MatchedCount)
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return xerrors.New(err)
	}
	return requireMatched(res.DeletedCount)
}

func (s *Store) ListCategories(ctx context.Context, f filter.Filter) ([]*models.Category, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	docs, err := findAll[categoryDocument](ctx, s.categories, categoryFilter(f), pageOptions(newestCreatedFirst, f.Offset(), f.Limit))
	if err != nil {
		return nil, err
	}
	return functional.Map(docs, categoryDocument.toModel), nil
}

func (s *Store) CountCategories(ctx context.Context, f filter.Filter) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	count, err := s.categories.CountDocuments(ctx, categoryFilter(f))
	if err != nil {
		return 0, xerrors.New(err)
	}
	return count, nil
}
