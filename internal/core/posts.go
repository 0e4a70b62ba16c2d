package core

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/internal/utils/collectionutils"
	"github.com/siahsang/blogapi/internal/utils/databaseutils"
	"github.com/siahsang/blogapi/internal/utils/functional"
	"github.com/siahsang/blogapi/models"
)

var emptyDocument = json.RawMessage(`{"type":"doc","content":[]}`)

type PostInput struct {
	Title      string
	Caption    string
	Body       json.RawMessage
	Photo      string
	Tags       []string
	Categories []string
}

// PostUpdate carries only the fields the client sent.
type PostUpdate struct {
	Title      *string
	Caption    *string
	Body       json.RawMessage
	Photo      *string
	Tags       *[]string
	Categories *[]string
}

func (c *Core) ListPosts(ctx context.Context, f filter.Filter) (*models.Page[*models.Post], error) {
	page, err := listPage(ctx, f, c.repos.Posts.ListPosts, c.repos.Posts.CountPosts)
	if err != nil {
		return nil, err
	}

	if err := c.populatePosts(ctx, page.Items); err != nil {
		return nil, err
	}
	return page, nil
}

// GetPostBySlug returns the post with its approved comments threaded under their parents.
func (c *Core) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := c.repos.Posts.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, xerrors.New(err)
	}

	if err := c.populatePosts(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}

	comments, err := c.repos.Comments.ListCommentsByPost(ctx, post.ID, true)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if err := c.populateCommentAuthors(ctx, comments); err != nil {
		return nil, err
	}
	post.Comments = threadComments(comments)

	return post, nil
}

func (c *Core) CreatePost(ctx context.Context, author *models.User, input PostInput) (*models.Post, error) {
	title, err := c.sanitizeRequired("title", input.Title)
	if err != nil {
		return nil, err
	}
	caption, err := c.sanitizeRequired("caption", input.Caption)
	if err != nil {
		return nil, err
	}

	now := c.now()
	post := &models.Post{
		ID:          c.newID(),
		Title:       title,
		Caption:     caption,
		Body:        input.Body,
		Photo:       strings.TrimSpace(input.Photo),
		UserID:      author.ID,
		Tags:        c.cleanTags(input.Tags),
		CategoryIDs: uniqueStrings(input.Categories),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if len(post.Body) == 0 || string(post.Body) == "null" {
		post.Body = emptyDocument
	}
	post.Slug = c.CreateSlug(post.Title)

	err = c.repos.Tx.DoTransactionally(ctx, func(txCtx context.Context) error {
		if err := c.checkCategoriesExist(txCtx, post.CategoryIDs); err != nil {
			return err
		}
		return c.repos.Posts.CreatePost(txCtx, post)
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("Post created", "post_id", post.ID, "slug", post.Slug, "user_id", author.ID)

	if err := c.populatePosts(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies update to the post identified by slug. The slug never changes.
func (c *Core) UpdatePost(ctx context.Context, slug string, update PostUpdate) (*models.Post, error) {
	post, err := databaseutils.DoTransactionally(ctx, c.repos.Tx, func(txCtx context.Context) (*models.Post, error) {
		post, err := c.repos.Posts.GetPostBySlug(txCtx, slug)
		if err != nil {
			return nil, err
		}

		if update.Title != nil {
			if post.Title, err = c.sanitizeRequired("title", *update.Title); err != nil {
				return nil, err
			}
		}
		if update.Caption != nil {
			if post.Caption, err = c.sanitizeRequired("caption", *update.Caption); err != nil {
				return nil, err
			}
		}
		if len(update.Body) > 0 && string(update.Body) != "null" {
			post.Body = update.Body
		}
		if update.Photo != nil {
			post.Photo = strings.TrimSpace(*update.Photo)
		}
		if update.Tags != nil {
			post.Tags = c.cleanTags(*update.Tags)
		}
		if update.Categories != nil {
			post.CategoryIDs = uniqueStrings(*update.Categories)
			if err := c.checkCategoriesExist(txCtx, post.CategoryIDs); err != nil {
				return nil, err
			}
		}
		post.UpdatedAt = c.now()

		if err := c.repos.Posts.UpdatePost(txCtx, post); err != nil {
			return nil, err
		}
		return post, nil
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	if err := c.populatePosts(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and returns it. Its comments are left to DeletePostComments.
func (c *Core) DeletePost(ctx context.Context, slug string) (*models.Post, error) {
	post, err := c.repos.Posts.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, xerrors.New(err)
	}

	if err := c.repos.Posts.DeletePost(ctx, post.ID); err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("Post deleted", "post_id", post.ID, "slug", post.Slug)
	return post, nil
}

func (c *Core) DeletePostComments(ctx context.Context, postID string) error {
	if err := c.repos.Comments.DeleteCommentsByPost(ctx, postID); err != nil {
		return xerrors.New(err)
	}
	return nil
}

// CreateSlug turns a title into a URL-safe slug with a random suffix so
// equal titles do not collide.
func (c *Core) CreateSlug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}

	slug := b.String()
	// Replace multiple consecutive hyphens with single hyphen
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")

	suffix := strings.ReplaceAll(c.newID(), "-", "")[:8]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}

func (c *Core) populatePosts(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	userIDs := collectionutils.Uniq(posts, func(p *models.Post) string { return p.UserID })
	users, err := c.repos.Users.GetUsersByIDList(ctx, userIDs)
	if err != nil {
		return xerrors.New(err)
	}
	userByID := collectionutils.Associate(users, func(u *models.User) (string, *models.User) {
		return u.ID, u
	})

	var categoryIDs []string
	for _, p := range posts {
		categoryIDs = append(categoryIDs, p.CategoryIDs...)
	}
	categories, err := c.repos.Categories.GetCategoriesByIDList(ctx, uniqueStrings(categoryIDs))
	if err != nil {
		return xerrors.New(err)
	}
	categoryByID := collectionutils.Associate(categories, func(cat *models.Category) (string, *models.Category) {
		return cat.ID, cat
	})

	for _, p := range posts {
		p.User = userByID[p.UserID].Author()
		p.Categories = make([]*models.Category, 0, len(p.CategoryIDs))
		for _, id := range p.CategoryIDs {
			if cat, ok := categoryByID[id]; ok {
				p.Categories = append(p.Categories, cat)
			}
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
	}
	return nil
}

func (c *Core) checkCategoriesExist(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := c.repos.Categories.GetCategoriesByIDList(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return xerrors.New(ErrUnknownCategory)
	}
	return nil
}

func (c *Core) cleanTags(tags []string) []string {
	return uniqueStrings(functional.Map(tags, c.sanitize))
}

func uniqueStrings(values []string) []string {
	trimmed := functional.Filter(functional.Map(values, strings.TrimSpace), func(s string) bool { return s != "" })
	return collectionutils.Uniq(trimmed, func(s string) string { return s })
}

func IsNotFound(err error) bool {
	return errors.Is(err, NoRecordFound)
}
