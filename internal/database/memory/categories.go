package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/internal/utils/functional"
	"github.com/siahsang/blogapi/models"
)

func cloneCategory(c *models.Category) *models.Category {
	cp := *c
	return &cp
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	s.categories.Store(category.ID, cloneCategory(category))
	return nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	c, ok := s.categories.Get(id)
	if !ok {
		return nil, xerrors.New(core.NoRecordFound)
	}
	return cloneCategory(c), nil
}

func (s *Store) GetCategoriesByIDList(ctx context.Context, ids []string) ([]*models.Category, error) {
	categories := make([]*models.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.categories.Get(id); ok {
			categories = append(categories, cloneCategory(c))
		}
	}
	return categories, nil
}

func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	if !s.categories.Update(category.ID, func(*models.Category) *models.Category { return cloneCategory(category) }) {
		return xerrors.New(core.NoRecordFound)
	}
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := s.categories.Get(id); !ok {
		return xerrors.New(core.NoRecordFound)
	}
	s.categories.Delete(id)
	return nil
}

func (s *Store) matchingCategories(f filter.Filter) []*models.Category {
	categories := functional.Filter(s.categories.Values(), func(c *models.Category) bool {
		return !f.HasSearch() || containsFold(c.Title, f.SearchKeyword)
	})
	slices.SortFunc(categories, func(a, b *models.Category) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return categories
}

func (s *Store) ListCategories(ctx context.Context, f filter.Filter) ([]*models.Category, error) {
	return functional.Map(window(s.matchingCategories(f), f.Offset(), f.Limit), cloneCategory), nil
}

func (s *Store) CountCategories(ctx context.Context, f filter.Filter) (int64, error) {
	return int64(len(s.matchingCategories(f))), nil
}
