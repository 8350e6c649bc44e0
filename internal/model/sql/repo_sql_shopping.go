package sql

import (
	"context"
	"foodgram/internal/entity/db"
)

// AggregateShoppingCart sums ingredient amounts over every recipe in the
// user's cart, grouped by ingredient name and unit.
func (r *GormRepository) AggregateShoppingCart(ctx context.Context, userID uint) ([]db.ShoppingListRow, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var rows []db.ShoppingListRow
	if err := r.db.WithContext(ctx).
		Table("shopping_carts").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_amounts.amount) AS total_amount").
		Joins("JOIN ingredient_amounts ON ingredient_amounts.recipe_id = shopping_carts.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = ingredient_amounts.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("MIN(ingredients.id) ASC, ingredients.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
