package postgres

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/utils/databaseutils"
	"github.com/siahsang/blogapi/models"
)

const commentColumns = `id, user_id, post_id, description, checked, parent_id, reply_on_user_id, created_at, updated_at`

func scanComment(rows *sql.Rows) (*models.Comment, error) {
	var comment models.Comment
	var parentID, replyOnUserID sql.NullString
	if err := rows.Scan(
		&comment.ID,
		&comment.UserID,
		&comment.PostID,
		&comment.Desc,
		&comment.Check,
		&parentID,
		&replyOnUserID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	if parentID.Valid {
		comment.ParentID = &parentID.String
	}
	if replyOnUserID.Valid {
		comment.ReplyOnUserID = &replyOnUserID.String
	}
	return &comment, nil
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, user_id, post_id, description, checked, parent_id, reply_on_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if _, err := databaseutils.Exec(s.sqlTemplate, ctx, query,
		comment.ID, comment.UserID, comment.PostID, comment.Desc, comment.Check,
		comment.ParentID, comment.ReplyOnUserID, comment.CreatedAt, comment.UpdatedAt); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (s *Store) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := databaseutils.ExecuteSingleQuery(s.sqlTemplate, ctx, query, scanComment, id)
	if err != nil {
		return nil, notFound(err)
	}
	return comment, nil
}

func (s *Store) UpdateComment(ctx context.Context, comment *models.Comment) error {
	query := `UPDATE comments SET description = $1, checked = $2, updated_at = $3 WHERE id = $4`

	return requireAffected(databaseutils.Exec(s.sqlTemplate, ctx, query,
		comment.Desc, comment.Check, comment.UpdatedAt, comment.ID))
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	return requireAffected(databaseutils.Exec(s.sqlTemplate, ctx,
		`DELETE FROM comments WHERE id = $1 OR parent_id = $1`, id))
}

func (s *Store) ListCommentsByPost(ctx context.Context, postID string, checkedOnly bool) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE post_id = $1 AND (checked OR NOT $2)
		ORDER BY created_at, id
	`

	comments, err := databaseutils.ExecuteQuery(s.sqlTemplate, ctx, query, scanComment, postID, checkedOnly)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return comments, nil
}

func (s *Store) DeleteCommentsByPost(ctx context.Context, postID string) error {
	if _, err := databaseutils.Exec(s.sqlTemplate, ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return xerrors.New(err)
	}
	return nil
}
