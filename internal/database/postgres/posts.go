package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/internal/utils/databaseutils"
	"github.com/siahsang/blogapi/internal/utils/stringutils"
	"github.com/siahsang/blogapi/models"
)

const postColumns = `id, title, caption, slug, body, photo, user_id, tags, categories, created_at, updated_at`

func scanPost(rows *sql.Rows) (*models.Post, error) {
	var post models.Post
	var body []byte
	if err := rows.Scan(
		&post.ID,
		&post.Title,
		&post.Caption,
		&post.Slug,
		&body,
		&post.Photo,
		&post.UserID,
		(*pq.StringArray)(&post.Tags),
		(*pq.StringArray)(&post.CategoryIDs),
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	post.Body = body
	return &post, nil
}

// postWhereClause renders the listing filter as a WHERE clause whose
// placeholders are numbered from 1.
func postWhereClause(f filter.Filter) (string, []any) {
	var conditions []string
	var args []any

	if f.HasSearch() {
		args = append(args, "%"+stringutils.EscapeLike(f.SearchKeyword)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR caption ILIKE $%d)", n, n))
	}
	if f.HasCategories() {
		args = append(args, pq.Array(f.Categories))
		conditions = append(conditions, fmt.Sprintf("categories && $%d::uuid[]", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (s *Store) ListPosts(ctx context.Context, f filter.Filter) ([]*models.Post, error) {
	where, args := postWhereClause(f)
	query := fmt.Sprintf(`
		SELECT %s
		FROM posts
		%s
		ORDER BY updated_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, postColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	posts, err := databaseutils.ExecuteQuery(s.sqlTemplate, ctx, query, scanPost, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return posts, nil
}

func (s *Store) CountPosts(ctx context.Context, f filter.Filter) (int64, error) {
	where, args := postWhereClause(f)
	count, err := databaseutils.Count(s.sqlTemplate, ctx, "SELECT COUNT(*) FROM posts "+where, args...)
	if err != nil {
		return 0, xerrors.New(err)
	}
	return count, nil
}

func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`

	post, err := databaseutils.ExecuteSingleQuery(s.sqlTemplate, ctx, query, scanPost, slug)
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, title, caption, slug, body, photo, user_id, tags, categories, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::uuid[], $10, $11)
	`

	_, err := databaseutils.Exec(s.sqlTemplate, ctx, query,
		post.ID, post.Title, post.Caption, post.Slug, string(post.Body), post.Photo, post.UserID,
		pq.Array(post.Tags), pq.Array(post.CategoryIDs), post.CreatedAt, post.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "posts_slug_key") {
			return xerrors.New(core.ErrDuplicatedSlug)
		}
		return xerrors.New(err)
	}
	return nil
}

func (s *Store) UpdatePost(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $1, caption = $2, body = $3, photo = $4, tags = $5, categories = $6::uuid[], updated_at = $7
		WHERE id = $8
	`

	return requireAffected(databaseutils.Exec(s.sqlTemplate, ctx, query,
		post.Title, post.Caption, string(post.Body), post.Photo,
		pq.Array(post.Tags), pq.Array(post.CategoryIDs), post.UpdatedAt, post.ID))
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	return requireAffected(databaseutils.Exec(s.sqlTemplate, ctx, `DELETE FROM posts WHERE id = $1`, id))
}

func (s *Store) RemoveCategory(ctx context.Context, categoryID string) error {
	query := `
		UPDATE posts
		SET categories = array_remove(categories, $1::uuid)
		WHERE $1::uuid = ANY (categories)
	`

	if _, err := databaseutils.Exec(s.sqlTemplate, ctx, query, categoryID); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func idList(ids []string) (string, []any) {
	placeholders, args := stringutils.INCluse(ids, 1)
	return strings.Join(placeholders, ", "), args
}
