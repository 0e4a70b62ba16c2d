package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/internal/utils/collectionutils"
	"github.com/siahsang/blogapi/internal/utils/functional"
	"github.com/siahsang/blogapi/models"
)

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Tags = slices.Clone(p.Tags)
	c.CategoryIDs = slices.Clone(p.CategoryIDs)
	c.Body = slices.Clone(p.Body)
	c.User = nil
	c.Categories = nil
	c.Comments = nil
	return &c
}

func postMatches(p *models.Post, f filter.Filter) bool {
	if f.HasSearch() && !containsFold(p.Title, f.SearchKeyword) && !containsFold(p.Caption, f.SearchKeyword) {
		return false
	}
	if f.HasCategories() && !collectionutils.Intersects(p.CategoryIDs, f.Categories) {
		return false
	}
	return true
}

func (s *Store) matchingPosts(f filter.Filter) []*models.Post {
	posts := functional.Filter(s.posts.Values(), func(p *models.Post) bool { return postMatches(p, f) })
	slices.SortFunc(posts, func(a, b *models.Post) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return posts
}

func (s *Store) ListPosts(ctx context.Context, f filter.Filter) ([]*models.Post, error) {
	return functional.Map(window(s.matchingPosts(f), f.Offset(), f.Limit), clonePost), nil
}

func (s *Store) CountPosts(ctx context.Context, f filter.Filter) (int64, error) {
	return int64(len(s.matchingPosts(f))), nil
}

func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	for _, p := range s.posts.Values() {
		if p.Slug == slug {
			return clonePost(p), nil
		}
	}
	return nil, xerrors.New(core.NoRecordFound)
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	for _, p := range s.posts.Values() {
		if p.Slug == post.Slug {
			return xerrors.New(core.ErrDuplicatedSlug)
		}
	}
	s.posts.Store(post.ID, clonePost(post))
	return nil
}

func (s *Store) UpdatePost(ctx context.Context, post *models.Post) error {
	if !s.posts.Update(post.ID, func(*models.Post) *models.Post { return clonePost(post) }) {
		return xerrors.New(core.NoRecordFound)
	}
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	if _, ok := s.posts.Get(id); !ok {
		return xerrors.New(core.NoRecordFound)
	}
	s.posts.Delete(id)
	return nil
}

func (s *Store) RemoveCategory(ctx context.Context, categoryID string) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	for _, p := range s.posts.Values() {
		if !slices.Contains(p.CategoryIDs, categoryID) {
			continue
		}
		s.posts.Update(p.ID, func(old *models.Post) *models.Post {
			updated := clonePost(old)
			updated.CategoryIDs = slices.DeleteFunc(updated.CategoryIDs, func(id string) bool { return id == categoryID })
			return updated
		})
	}
	return nil
}
