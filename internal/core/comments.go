package core

import (
	"context"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/utils/collectionutils"
	"github.com/siahsang/blogapi/models"
)

type CommentInput struct {
	Desc          string
	Slug          string
	ParentID      string
	ReplyOnUserID string
}

// CommentUpdate holds the editable fields. Check is applied only for admins.
type CommentUpdate struct {
	Desc  *string
	Check *bool
}

// CreateComment attaches a new unchecked comment to the post identified by input.Slug.
// A reply to a reply is re-parented to the top-level comment so threads stay one level deep.
func (c *Core) CreateComment(ctx context.Context, author *models.User, input CommentInput) (*models.Comment, error) {
	desc, err := c.sanitizeRequired("desc", input.Desc)
	if err != nil {
		return nil, err
	}

	post, err := c.repos.Posts.GetPostBySlug(ctx, input.Slug)
	if err != nil {
		return nil, xerrors.New(err)
	}

	now := c.now()
	comment := &models.Comment{
		ID:        c.newID(),
		UserID:    author.ID,
		PostID:    post.ID,
		Desc:      desc,
		Check:     false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if parentID := strings.TrimSpace(input.ParentID); parentID != "" {
		parent, err := c.repos.Comments.GetCommentByID(ctx, parentID)
		if err != nil {
			if IsNotFound(err) {
				return nil, xerrors.New(ErrInvalidParent)
			}
			return nil, xerrors.New(err)
		}
		if parent.PostID != post.ID {
			return nil, xerrors.New(ErrInvalidParent)
		}
		if parent.ParentID != nil {
			parentID = *parent.ParentID
		}
		comment.ParentID = &parentID

		replyOn := strings.TrimSpace(input.ReplyOnUserID)
		if replyOn == "" {
			replyOn = parent.UserID
		}
		comment.ReplyOnUserID = &replyOn
	}

	if err := c.repos.Comments.CreateComment(ctx, comment); err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("Comment created", "comment_id", comment.ID, "post_id", post.ID, "user_id", author.ID)
	comment.User = author.Author()
	return comment, nil
}

func (c *Core) UpdateComment(ctx context.Context, actor *models.User, commentID string, update CommentUpdate) (*models.Comment, error) {
	comment, err := c.repos.Comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	isOwner := comment.UserID == actor.ID
	if !isOwner && !actor.Admin {
		return nil, xerrors.New(ErrForbidden)
	}

	if update.Desc != nil {
		if comment.Desc, err = c.sanitizeRequired("desc", *update.Desc); err != nil {
			return nil, err
		}
	}
	if update.Check != nil {
		if !actor.Admin {
			return nil, xerrors.New(ErrForbidden)
		}
		comment.Check = *update.Check
	}
	comment.UpdatedAt = c.now()

	if err := c.repos.Comments.UpdateComment(ctx, comment); err != nil {
		return nil, xerrors.New(err)
	}

	if err := c.populateCommentAuthors(ctx, []*models.Comment{comment}); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes the comment and its direct replies. Only the owner or an admin may do it.
func (c *Core) DeleteComment(ctx context.Context, actor *models.User, commentID string) (*models.Comment, error) {
	comment, err := c.repos.Comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	if comment.UserID != actor.ID && !actor.Admin {
		return nil, xerrors.New(ErrForbidden)
	}

	if err := c.repos.Comments.DeleteComment(ctx, comment.ID); err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("Comment deleted", "comment_id", comment.ID, "user_id", actor.ID)
	return comment, nil
}

func (c *Core) populateCommentAuthors(ctx context.Context, comments []*models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	userIDs := collectionutils.Uniq(comments, func(cm *models.Comment) string { return cm.UserID })
	users, err := c.repos.Users.GetUsersByIDList(ctx, userIDs)
	if err != nil {
		return xerrors.New(err)
	}
	userByID := collectionutils.Associate(users, func(u *models.User) (string, *models.User) {
		return u.ID, u
	})

	for _, cm := range comments {
		cm.User = userByID[cm.UserID].Author()
	}
	return nil
}

// threadComments nests replies under their top-level comment. Replies whose parent
// is missing from comments are dropped.
func threadComments(comments []*models.Comment) []*models.Comment {
	repliesByParent := collectionutils.GroupBy(
		comments,
		func(cm *models.Comment) string {
			if cm.ParentID == nil {
				return ""
			}
			return *cm.ParentID
		},
	)

	roots := collectionutils.GetOrDefault(repliesByParent, "", []*models.Comment{})
	for _, root := range roots {
		root.Replies = collectionutils.GetOrDefault(repliesByParent, root.ID, []*models.Comment{})
	}
	return roots
}
