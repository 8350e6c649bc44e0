package converter

import (
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
)

// TagToDTO converts db.Tag to dto.Tag.
func TagToDTO(t *db.Tag) dto.Tag {
	if t == nil {
		return dto.Tag{}
	}
	return dto.Tag{
		ID:    t.ID,
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}

// TagsToDTOs converts a slice of db.Tag to dto.Tag.
func TagsToDTOs(tags []db.Tag) []dto.Tag {
	dtos := make([]dto.Tag, len(tags))
	for i := range tags {
		dtos[i] = TagToDTO(&tags[i])
	}
	return dtos
}

// IngredientToDTO converts db.Ingredient to dto.Ingredient.
func IngredientToDTO(i *db.Ingredient) dto.Ingredient {
	if i == nil {
		return dto.Ingredient{}
	}
	return dto.Ingredient{
		ID:              i.ID,
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}

// IngredientsToDTOs converts a slice of db.Ingredient to dto.Ingredient.
func IngredientsToDTOs(items []db.Ingredient) []dto.Ingredient {
	dtos := make([]dto.Ingredient, len(items))
	for i := range items {
		dtos[i] = IngredientToDTO(&items[i])
	}
	return dtos
}

// RecipeIngredientsToDTOs converts joined ingredient rows of one recipe.
func RecipeIngredientsToDTOs(rows []db.RecipeIngredient) []dto.RecipeIngredient {
	dtos := make([]dto.RecipeIngredient, len(rows))
	for i, row := range rows {
		dtos[i] = dto.RecipeIngredient{
			ID:              row.IngredientID,
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
		}
	}
	return dtos
}

// RecipeToShort converts a recipe to its compact form. imageURL maps the
// stored image key to a public URL.
func RecipeToShort(r *db.Recipe, imageURL func(string) string) dto.RecipeShort {
	if r == nil {
		return dto.RecipeShort{}
	}
	image := r.Image
	if imageURL != nil {
		image = imageURL(r.Image)
	}
	return dto.RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       image,
		CookingTime: r.CookingTime,
	}
}

// ShoppingRowsToItems converts aggregation rows to DTO lines.
func ShoppingRowsToItems(rows []db.ShoppingListRow) []dto.ShoppingListItem {
	items := make([]dto.ShoppingListItem, len(rows))
	for i, row := range rows {
		items[i] = dto.ShoppingListItem{
			Name:            row.Name,
			Amount:          row.TotalAmount,
			MeasurementUnit: row.MeasurementUnit,
		}
	}
	return items
}
