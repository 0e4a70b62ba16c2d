package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/internal/utils/functional"
	"github.com/siahsang/blogapi/models"
)

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Password = slices.Clone(u.Password)
	return &c
}

func (s *Store) emailTaken(email, exceptID string) bool {
	for _, u := range s.users.Values() {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	if s.emailTaken(user.Email, "") {
		return xerrors.New(core.ErrDuplicateEmail)
	}
	s.users.Store(user.ID, cloneUser(user))
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := s.users.Get(id)
	if !ok {
		return nil, xerrors.New(core.NoRecordFound)
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users.Values() {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, xerrors.New(core.NoRecordFound)
}

func (s *Store) GetUsersByIDList(ctx context.Context, ids []string) ([]*models.User, error) {
	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users.Get(id); ok {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	if s.emailTaken(user.Email, user.ID) {
		return xerrors.New(core.ErrDuplicateEmail)
	}
	if !s.users.Update(user.ID, func(*models.User) *models.User { return cloneUser(user) }) {
		return xerrors.New(core.NoRecordFound)
	}
	return nil
}

func (s *Store) matchingUsers(f filter.Filter) []*models.User {
	users := functional.Filter(s.users.Values(), func(u *models.User) bool {
		return !f.HasSearch() || containsFold(u.Name, f.SearchKeyword) || containsFold(u.Email, f.SearchKeyword)
	})
	slices.SortFunc(users, func(a, b *models.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return users
}

func (s *Store) ListUsers(ctx context.Context, f filter.Filter) ([]*models.User, error) {
	return functional.Map(window(s.matchingUsers(f), f.Offset(), f.Limit), cloneUser), nil
}

func (s *Store) CountUsers(ctx context.Context, f filter.Filter) (int64, error) {
	return int64(len(s.matchingUsers(f))), nil
}
