package reminders

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandeepkv93/lembrete/internal/model"
	"github.com/sandeepkv93/lembrete/internal/storage"
)

func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryToModel(row))
	}
	return out, nil
}

func (s *Service) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	row, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return model.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return categoryToModel(row), nil
}

func (s *Service) FindCategory(ctx context.Context, name string) (model.Category, error) {
	row, err := s.repo.GetCategoryByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return model.Category{}, fmt.Errorf("find category %q: %w", name, err)
	}
	return categoryToModel(row), nil
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	cat := model.Category{Name: strings.TrimSpace(in.Name), Color: strings.TrimSpace(in.Color)}
	if err := cat.Validate(); err != nil {
		return model.Category{}, &ValidationError{Field: fieldFor(err), Err: err}
	}
	id, err := s.repo.CreateCategory(ctx, storage.Category{Name: cat.Name, Color: cat.Color})
	if err != nil {
		return model.Category{}, fmt.Errorf("create category %q: %w", cat.Name, err)
	}
	return s.GetCategory(ctx, id)
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	cat := model.Category{ID: id, Name: strings.TrimSpace(in.Name), Color: strings.TrimSpace(in.Color)}
	if err := cat.Validate(); err != nil {
		return model.Category{}, &ValidationError{Field: fieldFor(err), Err: err}
	}
	if err := s.repo.UpdateCategory(ctx, storage.Category{ID: id, Name: cat.Name, Color: cat.Color}); err != nil {
		return model.Category{}, fmt.Errorf("update category %d: %w", id, err)
	}
	return s.GetCategory(ctx, id)
}

// DeleteCategory detaches the category's reminders; it never deletes them.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}

func categoryToModel(in storage.Category) model.Category {
	return model.Category{ID: in.ID, Name: in.Name, Color: in.Color, CreatedAt: in.CreatedAt}
}
