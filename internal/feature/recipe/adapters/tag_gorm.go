package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
)

// TagRepository is a gorm implementation of usecase.TagRepository.
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// List returns the user's tags in reverse name order. With assignedOnly set,
// tags without any recipe are filtered out.
func (r *TagRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]entity.Tag, error) {
	q := r.db.WithContext(ctx).
		Model(&entity.Tag{}).
		Where("tags.user_id = ?", userID)

	if assignedOnly {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Distinct("tags.*")
	}

	var tags []entity.Tag
	if err := q.Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// GetOrCreate returns the user's tag with the exact name, creating it when
// absent. Lookup is per user, two users may own equally named tags.
func (r *TagRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*entity.Tag, error) {
	var tag entity.Tag
	err := r.db.WithContext(ctx).
		Where(entity.Tag{UserID: userID, Name: name}).
		FirstOrCreate(&tag).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get or create tag: %w", err)
	}
	return &tag, nil
}

// Update renames the user's tag.
func (r *TagRepository) Update(ctx context.Context, userID, id uint, name string) (*entity.Tag, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Tag{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrTagNotFound
	}
	return &entity.Tag{ID: id, UserID: userID, Name: name}, nil
}

// Delete removes the user's tag and detaches it from all recipes.
func (r *TagRepository) Delete(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Tag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrTagNotFound
		}
		return tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, usecase.ErrTagNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}
