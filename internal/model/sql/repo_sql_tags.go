package sql

import (
	"context"
	"fmt"
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListTags returns all tags ordered by id.
func (r *GormRepository) ListTags(ctx context.Context) ([]db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var tags []db.Tag
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTag loads a tag by id.
func (r *GormRepository) GetTag(ctx context.Context, id uint) (*db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var tag db.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag inserts a new tag.
func (r *GormRepository) CreateTag(ctx context.Context, tag *db.Tag) error {
	if err := r.ready(); err != nil {
		return err
	}
	if tag == nil {
		return fmt.Errorf("tag is nil")
	}
	return r.db.WithContext(ctx).Create(tag).Error
}

// UpdateTag updates tag fields.
func (r *GormRepository) UpdateTag(ctx context.Context, id uint, updates db.TagUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid tag id")
	}
	if updates.IsEmpty() {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&db.Tag{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTag removes a tag and its recipe links.
func (r *GormRepository) DeleteTag(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid tag id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&db.RecipeTag{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&db.Tag{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindTagsByIDs fetches tags by ids.
func (r *GormRepository) FindTagsByIDs(ctx context.Context, ids []uint) ([]db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []db.Tag{}, nil
	}

	var tags []db.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ListIngredients returns ingredients whose name starts with params.Name,
// case-insensitively, ordered by name.
func (r *GormRepository) ListIngredients(ctx context.Context, params *dto.IngredientQuery) ([]db.Ingredient, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&db.Ingredient{})
	if params != nil {
		if prefix := strings.ToLower(strings.TrimSpace(params.Name)); prefix != "" {
			query = query.Where("LOWER(name) LIKE ?", stripLikeWildcards(prefix)+"%")
		}
	}

	var items []db.Ingredient
	if err := query.Order("name ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateIngredient inserts a new ingredient.
func (r *GormRepository) CreateIngredient(ctx context.Context, ingredient *db.Ingredient) error {
	if err := r.ready(); err != nil {
		return err
	}
	if ingredient == nil {
		return fmt.Errorf("ingredient is nil")
	}
	return r.db.WithContext(ctx).Create(ingredient).Error
}

// GetIngredient loads an ingredient by id.
func (r *GormRepository) GetIngredient(ctx context.Context, id uint) (*db.Ingredient, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var ingredient db.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ImportIngredients inserts ingredients in batches, skipping (name, unit)
// pairs that already exist. It returns the number of new rows.
func (r *GormRepository) ImportIngredients(ctx context.Context, items []db.Ingredient) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	var inserted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&items, 500)
		if result.Error != nil {
			return result.Error
		}
		inserted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// FindIngredientsByIDs fetches ingredients by ids.
func (r *GormRepository) FindIngredientsByIDs(ctx context.Context, ids []uint) ([]db.Ingredient, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []db.Ingredient{}, nil
	}

	var items []db.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func stripLikeWildcards(value string) string {
	replacer := strings.NewReplacer("%", "", "_", "")
	return replacer.Replace(value)
}
