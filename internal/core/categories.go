package core

import (
	"context"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/models"
)

func (c *Core) ListCategories(ctx context.Context, f filter.Filter) (*models.Page[*models.Category], error) {
	return listPage(ctx, f, c.repos.Categories.ListCategories, c.repos.Categories.CountCategories)
}

func (c *Core) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	category, err := c.repos.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return category, nil
}

func (c *Core) CreateCategory(ctx context.Context, title string) (*models.Category, error) {
	title, err := c.sanitizeRequired("title", title)
	if err != nil {
		return nil, err
	}

	now := c.now()
	category := &models.Category{
		ID:        c.newID(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.repos.Categories.CreateCategory(ctx, category); err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("Category created", "category_id", category.ID, "title", category.Title)
	return category, nil
}

func (c *Core) UpdateCategory(ctx context.Context, id, title string) (*models.Category, error) {
	category, err := c.repos.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, xerrors.New(err)
	}

	if category.Title, err = c.sanitizeRequired("title", title); err != nil {
		return nil, err
	}
	category.UpdatedAt = c.now()

	if err := c.repos.Categories.UpdateCategory(ctx, category); err != nil {
		return nil, xerrors.New(err)
	}
	return category, nil
}

// DeleteCategory detaches the category from every post before removing it.
func (c *Core) DeleteCategory(ctx context.Context, id string) error {
	err := c.repos.Tx.DoTransactionally(ctx, func(txCtx context.Context) error {
		if _, err := c.repos.Categories.GetCategoryByID(txCtx, id); err != nil {
			return err
		}
		if err := c.repos.Posts.RemoveCategory(txCtx, id); err != nil {
			return err
		}
		return c.repos.Categories.DeleteCategory(txCtx, id)
	})
	if err != nil {
		return xerrors.New(err)
	}

	c.log.Info("Category deleted", "category_id", id)
	return nil
}
