// Package memory keeps every record in process. It backs DB_DRIVER=memory and the handler tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/utils/collectionutils"
	"github.com/siahsang/blogapi/models"
)

type Store struct {
	// writeLock serialises writes that check uniqueness or touch several maps.
	writeLock  sync.Mutex
	posts      *collectionutils.SafeMap[string, *models.Post]
	users      *collectionutils.SafeMap[string, *models.User]
	categories *collectionutils.SafeMap[string, *models.Category]
	comments   *collectionutils.SafeMap[string, *models.Comment]
}

func New() *Store {
	return &Store{
		posts:      collectionutils.New[string, *models.Post](),
		users:      collectionutils.New[string, *models.User](),
		categories: collectionutils.New[string, *models.Category](),
		comments:   collectionutils.New[string, *models.Comment](),
	}
}

func (s *Store) Repositories() core.Repositories {
	return core.Repositories{
		Posts:      s,
		Users:      s,
		Categories: s,
		Comments:   s,
		Tx:         s,
	}
}

// DoTransactionally runs fn directly; the memory store offers no rollback.
func (s *Store) DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// window returns items[offset:offset+limit], clipped to the slice bounds.
func window[T any](items []T, offset, limit int64) []T {
	size := int64(len(items))
	if offset >= size {
		return []T{}
	}
	end := min(offset+limit, size)
	return slices.Clone(items[offset:end])
}
