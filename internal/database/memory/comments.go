package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/utils/functional"
	"github.com/siahsang/blogapi/models"
)

func cloneComment(c *models.Comment) *models.Comment {
	cp := *c
	cp.User = nil
	cp.Replies = nil
	return &cp
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.comments.Store(comment.ID, cloneComment(comment))
	return nil
}

func (s *Store) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	c, ok := s.comments.Get(id)
	if !ok {
		return nil, xerrors.New(core.NoRecordFound)
	}
	return cloneComment(c), nil
}

func (s *Store) UpdateComment(ctx context.Context, comment *models.Comment) error {
	if !s.comments.Update(comment.ID, func(*models.Comment) *models.Comment { return cloneComment(comment) }) {
		return xerrors.New(core.NoRecordFound)
	}
	return nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	if _, ok := s.comments.Get(id); !ok {
		return xerrors.New(core.NoRecordFound)
	}
	for _, c := range s.comments.Values() {
		if c.ParentID != nil && *c.ParentID == id {
			s.comments.Delete(c.ID)
		}
	}
	s.comments.Delete(id)
	return nil
}

func (s *Store) ListCommentsByPost(ctx context.Context, postID string, checkedOnly bool) ([]*models.Comment, error) {
	comments := functional.Filter(s.comments.Values(), func(c *models.Comment) bool {
		return c.PostID == postID && (!checkedOnly || c.Check)
	})
	slices.SortFunc(comments, func(a, b *models.Comment) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return functional.Map(comments, cloneComment), nil
}

func (s *Store) DeleteCommentsByPost(ctx context.Context, postID string) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	for _, c := range s.comments.Values() {
		if c.PostID == postID {
			s.comments.Delete(c.ID)
		}
	}
	return nil
}
