package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/internal/utils/databaseutils"
	"github.com/siahsang/blogapi/internal/utils/stringutils"
	"github.com/siahsang/blogapi/models"
)

const userColumns = `id, avatar, name, email, password, verified, admin, created_at, updated_at`

func scanUser(rows *sql.Rows) (*models.User, error) {
	var user = &models.User{}

	if err := rows.Scan(
		&user.ID,
		&user.Avatar,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Verified,
		&user.Admin,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, avatar, name, email, password, verified, admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := databaseutils.Exec(s.sqlTemplate, ctx, query,
		user.ID, user.Avatar, user.Name, user.Email, user.Password, user.Verified, user.Admin, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return xerrors.New(core.ErrDuplicateEmail)
		}
		return xerrors.New(err)
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := databaseutils.ExecuteSingleQuery(s.sqlTemplate, ctx, query, scanUser, id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := databaseutils.ExecuteSingleQuery(s.sqlTemplate, ctx, query, scanUser, email)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *Store) GetUsersByIDList(ctx context.Context, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	placeholders, args := idList(ids)
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id IN (%s)`, userColumns, placeholders)

	users, err := databaseutils.ExecuteQuery(s.sqlTemplate, ctx, query, scanUser, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET avatar = $1, name = $2, email = $3, password = $4, verified = $5, admin = $6, updated_at = $7
		WHERE id = $8
	`

	err := requireAffected(databaseutils.Exec(s.sqlTemplate, ctx, query,
		user.Avatar, user.Name, user.Email, user.Password, user.Verified, user.Admin, user.UpdatedAt, user.ID))
	if isUniqueViolation(err, "users_email_key") {
		return xerrors.New(core.ErrDuplicateEmail)
	}
	return err
}

func userWhereClause(f filter.Filter) (string, []any) {
	if !f.HasSearch() {
		return "", nil
	}
	return "WHERE (name ILIKE $1 OR email ILIKE $1)", []any{"%" + stringutils.EscapeLike(f.SearchKeyword) + "%"}
}

func (s *Store) ListUsers(ctx context.Context, f filter.Filter) ([]*models.User, error) {
	where, args := userWhereClause(f)
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, userColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	users, err := databaseutils.ExecuteQuery(s.sqlTemplate, ctx, query, scanUser, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return users, nil
}

func (s *Store) CountUsers(ctx context.Context, f filter.Filter) (int64, error) {
	where, args := userWhereClause(f)
	count, err := databaseutils.Count(s.sqlTemplate, ctx, "SELECT COUNT(*) FROM users "+where, args...)
	if err != nil {
		return 0, xerrors.New(err)
	}
	return count, nil
}
