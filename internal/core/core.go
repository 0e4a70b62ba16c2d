package core

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
	"github.com/microcosm-cc/bluemonday"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/models"
)

var (
	NoRecordFound         = xerrors.Message("No record found")
	ErrDuplicatedSlug     = xerrors.Message("Duplicate slug")
	ErrDuplicateEmail     = xerrors.Message("Duplicate email")
	ErrInvalidCredentials = xerrors.Message("Invalid email or password")
	ErrForbidden          = xerrors.Message("Forbidden resource")
	ErrUnknownCategory    = xerrors.Message("Unknown category")
	ErrInvalidParent      = xerrors.Message("Parent comment does not belong to this post")
)

type PostRepository interface {
	ListPosts(ctx context.Context, f filter.Filter) ([]*models.Post, error)
	CountPosts(ctx context.Context, f filter.Filter) (int64, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) error
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	// RemoveCategory drops categoryID from every post that references it.
	RemoveCategory(ctx context.Context, categoryID string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDList(ctx context.Context, ids []string) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context, f filter.Filter) ([]*models.User, error)
	CountUsers(ctx context.Context, f filter.Filter) (int64, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	GetCategoriesByIDList(ctx context.Context, ids []string) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context, f filter.Filter) ([]*models.Category, error)
	CountCategories(ctx context.Context, f filter.Filter) (int64, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	// DeleteComment removes the comment and its direct replies.
	DeleteComment(ctx context.Context, id string) error
	// ListCommentsByPost returns comments oldest first.
	ListCommentsByPost(ctx context.Context, postID string, checkedOnly bool) ([]*models.Comment, error)
	DeleteCommentsByPost(ctx context.Context, postID string) error
}

type Transactor interface {
	DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) error
}

type Repositories struct {
	Posts      PostRepository
	Users      UserRepository
	Categories CategoryRepository
	Comments   CommentRepository
	Tx         Transactor
}

type Core struct {
	log       *slog.Logger
	repos     Repositories
	sanitizer *bluemonday.Policy
	newID     func() string
	now       func() time.Time
}

func NewCore(repos Repositories, log *slog.Logger) *Core {
	return &Core{
		log:       log,
		repos:     repos,
		sanitizer: bluemonday.StrictPolicy(),
		newID:     uuid.NewString,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// maxSanitizeRounds bounds how many layers of entity encoding are peeled off.
const maxSanitizeRounds = 8

// BlankFieldError reports a required field that is empty once markup is removed.
type BlankFieldError struct {
	Field string
}

func (e *BlankFieldError) Error() string {
	return e.Field + " must not be empty"
}

// sanitize strips any markup from user supplied text. Entity encoded markup is
// decoded and stripped again until the text stops changing.
func (c *Core) sanitize(s string) string {
	for i := 0; i < maxSanitizeRounds; i++ {
		next := html.UnescapeString(c.sanitizer.Sanitize(s))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// Still changing: keep the escaped form so nothing decodes back into markup.
	return strings.TrimSpace(c.sanitizer.Sanitize(s))
}

// sanitizeRequired is sanitize for fields that must keep some text.
func (c *Core) sanitizeRequired(field, s string) (string, error) {
	clean := c.sanitize(s)
	if clean == "" {
		return "", xerrors.New(&BlankFieldError{Field: field})
	}
	return clean, nil
}

func listPage[T any](ctx context.Context, f filter.Filter,
	list func(context.Context, filter.Filter) ([]T, error),
	count func(context.Context, filter.Filter) (int64, error)) (*models.Page[T], error) {

	// Count and fetch are separate reads; under concurrent writes they may disagree slightly.
	total, err := count(ctx, f)
	if err != nil {
		return nil, xerrors.New(err)
	}

	items, err := list(ctx, f)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return &models.Page[T]{Items: items, TotalCount: total}, nil
}
