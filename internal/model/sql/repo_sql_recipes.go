package sql

import (
	"context"
	"fmt"
	"foodgram/internal/entity/common"
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
	"strings"

	"gorm.io/gorm"
)

// CreateRecipe inserts the recipe row, its tag links and its ingredient
// amounts in one transaction.
func (r *GormRepository) CreateRecipe(ctx context.Context, recipe *db.Recipe, tagIDs []uint, amounts []db.IngredientAmount) error {
	if err := r.ready(); err != nil {
		return err
	}
	if recipe == nil {
		return fmt.Errorf("recipe is nil")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := replaceRecipeTags(tx, recipe.ID, tagIDs); err != nil {
			return err
		}
		return replaceIngredientAmounts(tx, recipe.ID, amounts)
	})
}

// UpdateRecipe updates scalar fields and replaces tag links and ingredient
// amounts wholesale, in one transaction.
func (r *GormRepository) UpdateRecipe(ctx context.Context, id uint, updates db.RecipeUpdates, tagIDs []uint, amounts []db.IngredientAmount) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe db.Recipe
		if err := tx.Select("id").First(&recipe, id).Error; err != nil {
			return err
		}

		if !updates.IsEmpty() {
			if err := tx.Model(&db.Recipe{}).Where("id = ?", id).Updates(updates.ToMap()).Error; err != nil {
				return err
			}
		}
		if err := replaceRecipeTags(tx, id, tagIDs); err != nil {
			return err
		}
		return replaceIngredientAmounts(tx, id, amounts)
	})
}

// DeleteRecipe removes a recipe with its ingredient amounts, tag links,
// favorites and cart rows.
func (r *GormRepository) DeleteRecipe(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRecipeDependents(tx, []uint{id}); err != nil {
			return err
		}
		result := tx.Delete(&db.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetRecipe loads one recipe.
func (r *GormRepository) GetRecipe(ctx context.Context, id uint) (*db.Recipe, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var recipe db.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns recipes newest first, filtered by author, tag slugs and
// the viewer's favorites or cart.
func (r *GormRepository) ListRecipes(ctx context.Context, params *dto.RecipeQuery) ([]db.Recipe, *common.Meta, error) {
	if err := r.ready(); err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).Model(&db.Recipe{})
	var base *common.BaseParams
	if params != nil {
		base = &params.BaseParams

		if params.Author > 0 {
			query = query.Where("recipes.author_id = ?", params.Author)
		}

		slugs := make([]string, 0, len(params.Tags))
		for _, slug := range params.Tags {
			if trimmed := strings.TrimSpace(slug); trimmed != "" {
				slugs = append(slugs, trimmed)
			}
		}
		if len(slugs) > 0 {
			tagged := r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", slugs)
			query = query.Where("recipes.id IN (?)", tagged)
		}

		if params.ViewerID > 0 && params.IsFavorited {
			favorited := r.db.Model(&db.Favorite{}).Select("recipe_id").Where("user_id = ?", params.ViewerID)
			query = query.Where("recipes.id IN (?)", favorited)
		}
		if params.ViewerID > 0 && params.IsInShoppingCart {
			inCart := r.db.Model(&db.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", params.ViewerID)
			query = query.Where("recipes.id IN (?)", inCart)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, pageSize, offset := pageWindow(base)

	var recipes []db.Recipe
	if err := query.Order("recipes.created_at DESC, recipes.id DESC").Offset(offset).Limit(pageSize).Find(&recipes).Error; err != nil {
		return nil, nil, err
	}

	return recipes, r.calculatePagination(total, page, pageSize), nil
}

// ListRecipesByAuthors returns every recipe of the given authors, newest first.
func (r *GormRepository) ListRecipesByAuthors(ctx context.Context, authorIDs []uint) ([]db.Recipe, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	authorIDs = uniqueIDs(authorIDs)
	if len(authorIDs) == 0 {
		return []db.Recipe{}, nil
	}

	var recipes []db.Recipe
	if err := r.db.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountRecipesByAuthors returns recipe counts keyed by author id.
func (r *GormRepository) CountRecipesByAuthors(ctx context.Context, authorIDs []uint) (map[uint]int64, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	counts := make(map[uint]int64)
	authorIDs = uniqueIDs(authorIDs)
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthorID uint
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&db.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}
	return counts, nil
}

// ListRecipeTags returns the tags of each recipe in link order.
func (r *GormRepository) ListRecipeTags(ctx context.Context, recipeIDs []uint) (map[uint][]db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	result := make(map[uint][]db.Tag)
	recipeIDs = uniqueIDs(recipeIDs)
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		RecipeID uint
		TagID    uint
		Name     string
		Color    string
		Slug     string
	}
	if err := r.db.WithContext(ctx).
		Table("recipe_tags").
		Select("recipe_tags.recipe_id AS recipe_id, tags.id AS tag_id, tags.name AS name, tags.color AS color, tags.slug AS slug").
		Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
		Where("recipe_tags.recipe_id IN ?", recipeIDs).
		Order("recipe_tags.recipe_id ASC, recipe_tags.position ASC, tags.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], db.Tag{
			ID:    row.TagID,
			Name:  row.Name,
			Color: row.Color,
			Slug:  row.Slug,
		})
	}
	return result, nil
}

// ListRecipeIngredients returns each recipe's ingredients with the amount
// from that recipe's own join rows.
func (r *GormRepository) ListRecipeIngredients(ctx context.Context, recipeIDs []uint) (map[uint][]db.RecipeIngredient, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	result := make(map[uint][]db.RecipeIngredient)
	recipeIDs = uniqueIDs(recipeIDs)
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var rows []db.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Table("ingredient_amounts").
		Select("ingredient_amounts.recipe_id AS recipe_id, ingredients.id AS ingredient_id, ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, ingredient_amounts.amount AS amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_amounts.ingredient_id").
		Where("ingredient_amounts.recipe_id IN ?", recipeIDs).
		Order("ingredient_amounts.recipe_id ASC, ingredient_amounts.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], row)
	}
	return result, nil
}

func replaceRecipeTags(tx *gorm.DB, recipeID uint, tagIDs []uint) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&db.RecipeTag{}).Error; err != nil {
		return err
	}
	ids := uniqueIDs(tagIDs)
	if len(ids) == 0 {
		return nil
	}
	links := make([]db.RecipeTag, len(ids))
	for i, id := range ids {
		links[i] = db.RecipeTag{RecipeID: recipeID, TagID: id, Position: i}
	}
	return tx.Create(&links).Error
}

func replaceIngredientAmounts(tx *gorm.DB, recipeID uint, amounts []db.IngredientAmount) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&db.IngredientAmount{}).Error; err != nil {
		return err
	}
	if len(amounts) == 0 {
		return nil
	}
	rows := make([]db.IngredientAmount, len(amounts))
	for i, item := range amounts {
		rows[i] = db.IngredientAmount{
			RecipeID:     recipeID,
			IngredientID: item.IngredientID,
			Amount:       item.Amount,
		}
	}
	return tx.Create(&rows).Error
}

func deleteRecipeDependents(tx *gorm.DB, recipeIDs []uint) error {
	if len(recipeIDs) == 0 {
		return nil
	}
	dependents := []interface{}{
		&db.IngredientAmount{},
		&db.RecipeTag{},
		&db.Favorite{},
		&db.ShoppingCart{},
	}
	for _, model := range dependents {
		if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
