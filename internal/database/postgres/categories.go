package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/internal/utils/databaseutils"
	"github.com/siahsang/blogapi/internal/utils/stringutils"
	"github.com/siahsang/blogapi/models"
)

const categoryColumns = `id, title, created_at, updated_at`

func scanCategory(rows *sql.Rows) (*models.Category, error) {
	var category models.Category
	if err := rows.Scan(&category.ID, &category.Title, &category.CreatedAt, &category.UpdatedAt); err != nil {
		return nil, xerrors.New(err)
	}
	return &category, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `INSERT INTO categories (id, title, created_at, updated_at) VALUES ($1, $2, $3, $4)`

	if _, err := databaseutils.Exec(s.sqlTemplate, ctx, query,
		category.ID, category.Title, category.CreatedAt, category.UpdatedAt); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	category, err := databaseutils.ExecuteSingleQuery(s.sqlTemplate, ctx, query, scanCategory, id)
	if err != nil {
		return nil, notFound(err)
	}
	return category, nil
}

func (s *Store) GetCategoriesByIDList(ctx context.Context, ids []string) ([]*models.Category, error) {
	if len(ids) == 0 {
		return []*models.Category{}, nil
	}

	placeholders, args := idList(ids)
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id IN (%s)`, categoryColumns, placeholders)

	categories, err := databaseutils.ExecuteQuery(s.sqlTemplate, ctx, query, scanCategory, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return categories, nil
}

func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	query := `UPDATE categories SET title = $1, updated_at = $2 WHERE id = $3`

	return requireAffected(databaseutils.Exec(s.sqlTemplate, ctx, query, category.Title, category.UpdatedAt, category.ID))
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return requireAffected(databaseutils.Exec(s.sqlTemplate, ctx, `DELETE FROM categories WHERE id = $1`, id))
}

func categoryWhereClause(f filter.Filter) (string, []any) {
	if !f.HasSearch() {
		return "", nil
	}
	return "WHERE title ILIKE $1", []any{"%" + stringutils.EscapeLike(f.SearchKeyword) + "%"}
}

func (s *Store) ListCategories(ctx context.Context, f filter.Filter) ([]*models.Category, error) {
	where, args := categoryWhereClause(f)
	query := fmt.Sprintf(`
		SELECT %s
		FROM categories
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, categoryColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	categories, err := databaseutils.ExecuteQuery(s.sqlTemplate, ctx, query, scanCategory, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return categories, nil
}

func (s *Store) CountCategories(ctx context.Context, f filter.Filter) (int64, error) {
	where, args := categoryWhereClause(f)
	count, err := databaseutils.Count(s.sqlTemplate, ctx, "SELECT COUNT(*) FROM categories "+where, args...)
	if err != nil {
		return 0, xerrors.New(err)
	}
	return count, nil
}
