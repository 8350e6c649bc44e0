package model

import (
	"context"
	"foodgram/internal/entity/common"
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *db.User) error
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetUserByID(ctx context.Context, id uint) (*db.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint) ([]db.User, error)
	ListUsers(ctx context.Context, params *dto.UserQuery) ([]db.User, *common.Meta, error)
	DeleteUser(ctx context.Context, id uint) ([]string, error)
	CountUsers(ctx context.Context) (int64, error)

	// 标签与食材
	ListTags(ctx context.Context) ([]db.Tag, error)
	GetTag(ctx context.Context, id uint) (*db.Tag, error)
	CreateTag(ctx context.Context, tag *db.Tag) error
	UpdateTag(ctx context.Context, id uint, updates db.TagUpdates) error
	DeleteTag(ctx context.Context, id uint) error
	FindTagsByIDs(ctx context.Context, ids []uint) ([]db.Tag, error)
	ListIngredients(ctx context.Context, params *dto.IngredientQuery) ([]db.Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *db.Ingredient) error
	GetIngredient(ctx context.Context, id uint) (*db.Ingredient, error)
	ImportIngredients(ctx context.Context, items []db.Ingredient) (int64, error)
	FindIngredientsByIDs(ctx context.Context, ids []uint) ([]db.Ingredient, error)

	// 菜谱
	CreateRecipe(ctx context.Context, recipe *db.Recipe, tagIDs []uint, amounts []db.IngredientAmount) error
	UpdateRecipe(ctx context.Context, id uint, updates db.RecipeUpdates, tagIDs []uint, amounts []db.IngredientAmount) error
	DeleteRecipe(ctx context.Context, id uint) error
	GetRecipe(ctx context.Context, id uint) (*db.Recipe, error)
	ListRecipes(ctx context.Context, params *dto.RecipeQuery) ([]db.Recipe, *common.Meta, error)
	ListRecipesByAuthors(ctx context.Context, authorIDs []uint) ([]db.Recipe, error)
	CountRecipesByAuthors(ctx context.Context, authorIDs []uint) (map[uint]int64, error)
	ListRecipeTags(ctx context.Context, recipeIDs []uint) (map[uint][]db.Tag, error)
	ListRecipeIngredients(ctx context.Context, recipeIDs []uint) (map[uint][]db.RecipeIngredient, error)

	// 用户关系（收藏、购物车、关注）
	AddRelation(ctx context.Context, kind db.RelationKind, userID, targetID uint) (bool, error)
	RemoveRelation(ctx context.Context, kind db.RelationKind, userID, targetID uint) (bool, error)
	FilterRelatedTargets(ctx context.Context, kind db.RelationKind, userID uint, targetIDs []uint) (map[uint]struct{}, error)
	CountRelations(ctx context.Context, kind db.RelationKind, userID uint) (int64, error)
	ListFollowedAuthors(ctx context.Context, userID uint, params *common.BaseParams) ([]db.User, *common.Meta, error)

	// 购物清单
	AggregateShoppingCart(ctx context.Context, userID uint) ([]db.ShoppingListRow, error)
}
