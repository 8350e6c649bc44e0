package dto

import (
	"foodgram/internal/entity/common"
	"time"
)

// Recipe is the full, viewer-scoped representation of a recipe.
type Recipe struct {
	ID               uint               `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           UserSummary        `json:"author"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
	CreatedAt        time.Time          `json:"created_at"`
}

// RecipeShort is the compact recipe form used by relation toggles and
// subscriptions.
type RecipeShort struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// IngredientAmountRequest binds one ingredient id to an amount.
type IngredientAmountRequest struct {
	ID     uint `json:"id" validate:"gt=0"`
	Amount int  `json:"amount" validate:"gte=1"`
}

// RecipeWriteRequest is the payload for creating or updating a recipe.
// Image carries a base64 payload or data URL; on update an empty image
// keeps the stored one.
type RecipeWriteRequest struct {
	Ingredients []IngredientAmountRequest `json:"ingredients" validate:"dive"`
	Tags        []uint                    `json:"tags" validate:"dive,gt=0"`
	Image       string                    `json:"image"`
	Name        string                    `json:"name" validate:"required,max=200"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"gte=1"`
}

// RecipeQuery filters the recipe list. Tags match by slug, any-of.
type RecipeQuery struct {
	common.BaseParams
	Tags             []string `json:"tags" form:"tags" query:"tags"`
	Author           uint     `json:"author" form:"author" query:"author"`
	IsFavorited      bool     `json:"is_favorited" form:"is_favorited" query:"is_favorited"`
	IsInShoppingCart bool     `json:"is_in_shopping_cart" form:"is_in_shopping_cart" query:"is_in_shopping_cart"`
	ViewerID         uint     `json:"-" form:"-" query:"-"`
}

// RecipeListResponse is the response for listing recipes.
type RecipeListResponse struct {
	Recipes []Recipe     `json:"recipes"`
	Meta    *common.Meta `json:"meta"`
}

// ShoppingListItem is one aggregated line of a shopping list.
type ShoppingListItem struct {
	Name            string `json:"name"`
	Amount          int64  `json:"amount"`
	MeasurementUnit string `json:"measurement_unit"`
}
