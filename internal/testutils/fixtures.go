package testutils

import (
	"fmt"
	"testing"

	"foodgram/internal/entity/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTestUser creates a user with a unique username and email.
func CreateTestUser(t *testing.T, gormDB *gorm.DB, opts ...UserOption) *db.User {
	t.Helper()

	uniqueID := uuid.NewString()[:8]
	user := &db.User{
		Email:        fmt.Sprintf("cook_%s@example.com", uniqueID),
		Username:     "cook_" + uniqueID,
		FirstName:    "Test",
		LastName:     "Cook",
		PasswordHash: "not-a-real-hash",
		Role:         db.UserRoleUser,
		IsActive:     true,
	}
	for _, opt := range opts {
		opt(user)
	}

	if err := gormDB.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// UserOption configures a test user.
type UserOption func(*db.User)

// WithRole sets the role.
func WithRole(role string) UserOption {
	return func(u *db.User) {
		u.Role = role
	}
}

// WithEmail sets the email.
func WithEmail(email string) UserOption {
	return func(u *db.User) {
		u.Email = email
	}
}

// CreateTestTag creates a tag with unique name, color and slug.
func CreateTestTag(t *testing.T, gormDB *gorm.DB, slug string) *db.Tag {
	t.Helper()

	var count int64
	gormDB.Model(&db.Tag{}).Count(&count)
	tag := &db.Tag{
		Name:  "Tag " + slug,
		Color: fmt.Sprintf("#%06X", count+1),
		Slug:  slug,
	}
	if err := gormDB.Create(tag).Error; err != nil {
		t.Fatalf("Failed to create test tag: %v", err)
	}
	return tag
}

// CreateTestIngredient creates an ingredient.
func CreateTestIngredient(t *testing.T, gormDB *gorm.DB, name, unit string) *db.Ingredient {
	t.Helper()

	ingredient := &db.Ingredient{Name: name, MeasurementUnit: unit}
	if err := gormDB.Create(ingredient).Error; err != nil {
		t.Fatalf("Failed to create test ingredient: %v", err)
	}
	return ingredient
}

// RecipeAmount pairs an ingredient with its amount for CreateTestRecipe.
type RecipeAmount struct {
	Ingredient *db.Ingredient
	Amount     int
}

// CreateTestRecipe creates a recipe with the given ingredient amounts and tags.
func CreateTestRecipe(t *testing.T, gormDB *gorm.DB, authorID uint, name string, amounts []RecipeAmount, tags ...*db.Tag) *db.Recipe {
	t.Helper()

	recipe := &db.Recipe{
		Name:        name,
		AuthorID:    authorID,
		Text:        "Mix and serve.",
		Image:       "recipes/" + uuid.NewString() + ".png",
		CookingTime: 10,
	}
	err := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		for _, item := range amounts {
			row := &db.IngredientAmount{RecipeID: recipe.ID, IngredientID: item.Ingredient.ID, Amount: item.Amount}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		for i, tag := range tags {
			link := &db.RecipeTag{RecipeID: recipe.ID, TagID: tag.ID, Position: i}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to create test recipe: %v", err)
	}
	return recipe
}
