package dto

// Ingredient is the DTO representation of an ingredient.
type Ingredient struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// IngredientQuery filters ingredients by a case-insensitive name prefix.
type IngredientQuery struct {
	Name string `json:"name" form:"name" query:"name"`
}

// IngredientCreateRequest is the payload for adding an ingredient.
type IngredientCreateRequest struct {
	Name            string `json:"name" binding:"required"`
	MeasurementUnit string `json:"measurement_unit" binding:"required"`
}

// IngredientListResponse is the response for listing ingredients.
type IngredientListResponse struct {
	Ingredients []Ingredient `json:"ingredients"`
}

// RecipeIngredient is an ingredient as listed inside one recipe, with the
// amount taken from that recipe's own join row.
type RecipeIngredient struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}
