package core

import (
	"context"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/auth"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/models"
)

// UserUpdate carries only the fields the client sent.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Admin    *bool
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (c *Core) RegisterUser(ctx context.Context, name, email, password string) (*models.User, error) {
	name, err := c.sanitizeRequired("name", name)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, xerrors.New(err)
	}

	now := c.now()
	user := &models.User{
		ID:        c.newID(),
		Name:      name,
		Email:     NormalizeEmail(email),
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.repos.Users.CreateUser(ctx, user); err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login returns NoRecordFound for an unknown email and ErrInvalidCredentials for a wrong password.
func (c *Core) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := c.repos.Users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, xerrors.New(err)
	}

	match, err := auth.IsPasswordMatch(user.Password, password)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if !match {
		return nil, xerrors.New(ErrInvalidCredentials)
	}
	return user, nil
}

func (c *Core) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := c.repos.Users.GetUserByID(ctx, id)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return user, nil
}

// UpdateProfile lets a user edit their own profile and an admin edit anyone's.
// The admin flag is only honoured when the actor is an admin.
func (c *Core) UpdateProfile(ctx context.Context, actor *models.User, userID string, update UserUpdate) (*models.User, error) {
	if actor.ID != userID && !actor.Admin {
		return nil, xerrors.New(ErrForbidden)
	}

	user, err := c.repos.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	if update.Name != nil {
		if user.Name, err = c.sanitizeRequired("name", *update.Name); err != nil {
			return nil, err
		}
	}
	if update.Email != nil {
		user.Email = NormalizeEmail(*update.Email)
	}
	if update.Password != nil {
		hash, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, xerrors.New(err)
		}
		user.Password = hash
	}
	if update.Admin != nil && actor.Admin {
		user.Admin = *update.Admin
	}
	user.UpdatedAt = c.now()

	if err := c.repos.Users.UpdateUser(ctx, user); err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("User updated Successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (c *Core) ListUsers(ctx context.Context, f filter.Filter) (*models.Page[*models.User], error) {
	return listPage(ctx, f, c.repos.Users.ListUsers, c.repos.Users.CountUsers)
}
