package dto

import (
	"foodgram/internal/entity/common"
)

// UserSummary is a lightweight user description returned to clients.
// IsSubscribed is computed for the requesting viewer.
type UserSummary struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	common.BaseParams
}

// UserCreateRequest is the registration payload.
type UserCreateRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8,max=150"`
}

// UserListResponse is the response for listing users.
type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Meta  *common.Meta  `json:"meta"`
}

// Subscription describes a followed author together with their recipes.
type Subscription struct {
	UserSummary
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}

// SubscriptionQuery supports paginating subscriptions and capping the
// number of recipes rendered per author.
type SubscriptionQuery struct {
	common.BaseParams
	RecipesLimit int `json:"recipes_limit" form:"recipes_limit" query:"recipes_limit"`
}

// SubscriptionListResponse is the response for listing subscriptions.
type SubscriptionListResponse struct {
	Subscriptions []Subscription `json:"subscriptions"`
	Meta          *common.Meta   `json:"meta"`
}
