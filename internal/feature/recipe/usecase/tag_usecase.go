package usecase

import (
	"context"

	"recipe_backend/internal/feature/recipe/domain/entity"
)

// TagUsecase implements listing and managing a user's tags.
type TagUsecase struct {
	tags TagRepository
}

// NewTagUsecase creates a new TagUsecase.
func NewTagUsecase(tags TagRepository) *TagUsecase {
	return &TagUsecase{tags: tags}
}

// List returns the user's tags. With assignedOnly set, only tags attached to
// at least one recipe are returned.
func (u *TagUsecase) List(ctx context.Context, userID uint, assignedOnly bool) ([]entity.Tag, error) {
	return u.tags.List(ctx, userID, assignedOnly)
}

// Update renames the user's tag.
func (u *TagUsecase) Update(ctx context.Context, userID, id uint, name string) (*entity.Tag, error) {
	return u.tags.Update(ctx, userID, id, name)
}

// Delete removes the user's tag and detaches it from all recipes.
func (u *TagUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.tags.Delete(ctx, userID, id)
}
