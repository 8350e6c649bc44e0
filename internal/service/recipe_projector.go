package service

import (
	"context"
	"fmt"
	"foodgram/internal/entity/converter"
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
	"foodgram/internal/model"
	"foodgram/internal/storage"
)

// Viewer 是发起请求的用户，nil 表示匿名访问。
type Viewer struct {
	ID uint
}

// NewViewer 为已登录用户构造 Viewer，userID 为 0 时返回 nil。
func NewViewer(userID uint) *Viewer {
	if userID == 0 {
		return nil
	}
	return &Viewer{ID: userID}
}

func (v *Viewer) id() uint {
	if v == nil {
		return 0
	}
	return v.ID
}

// RecipeProjector 把菜谱行组装成带观看者标记的完整视图。
// 列表与详情都经过同一个 Project。
type RecipeProjector struct {
	repo     model.Repository
	imageURL storage.URLResolver
}

// NewRecipeProjector 创建投影器。imageURL 为 nil 时直接返回存储 key。
func NewRecipeProjector(repo model.Repository, imageURL storage.URLResolver) *RecipeProjector {
	if imageURL == nil {
		imageURL = func(key string) string { return key }
	}
	return &RecipeProjector{repo: repo, imageURL: imageURL}
}

// Project 批量加载标签、食材、作者与观看者关系后组装视图，保持输入顺序。
func (p *RecipeProjector) Project(ctx context.Context, recipes []db.Recipe, viewer *Viewer) ([]dto.Recipe, error) {
	result := make([]dto.Recipe, 0, len(recipes))
	if len(recipes) == 0 {
		return result, nil
	}

	recipeIDs := make([]uint, len(recipes))
	authorIDs := make([]uint, len(recipes))
	for i := range recipes {
		recipeIDs[i] = recipes[i].ID
		authorIDs[i] = recipes[i].AuthorID
	}

	tagsByRecipe, err := p.repo.ListRecipeTags(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipe tags: %w", err)
	}
	ingredientsByRecipe, err := p.repo.ListRecipeIngredients(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipe ingredients: %w", err)
	}
	authors, err := p.repo.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipe authors: %w", err)
	}
	authorsByID := make(map[uint]*db.User, len(authors))
	for i := range authors {
		authorsByID[authors[i].ID] = &authors[i]
	}

	var favorites, inCart, following map[uint]struct{}
	if viewerID := viewer.id(); viewerID != 0 {
		if favorites, err = p.repo.FilterRelatedTargets(ctx, db.RelationFavorite, viewerID, recipeIDs); err != nil {
			return nil, fmt.Errorf("load favorites: %w", err)
		}
		if inCart, err = p.repo.FilterRelatedTargets(ctx, db.RelationShoppingCart, viewerID, recipeIDs); err != nil {
			return nil, fmt.Errorf("load shopping cart: %w", err)
		}
		if following, err = p.repo.FilterRelatedTargets(ctx, db.RelationFollow, viewerID, authorIDs); err != nil {
			return nil, fmt.Errorf("load follows: %w", err)
		}
	}

	for i := range recipes {
		recipe := &recipes[i]
		_, favorited := favorites[recipe.ID]
		_, carted := inCart[recipe.ID]
		_, subscribed := following[recipe.AuthorID]
		if recipe.AuthorID == viewer.id() {
			subscribed = false
		}

		author := converter.UserToSummary(authorsByID[recipe.AuthorID], subscribed)
		if author.ID == 0 {
			author.ID = recipe.AuthorID
		}

		result = append(result, dto.Recipe{
			ID:               recipe.ID,
			Tags:             converter.TagsToDTOs(tagsByRecipe[recipe.ID]),
			Author:           author,
			Ingredients:      converter.RecipeIngredientsToDTOs(ingredientsByRecipe[recipe.ID]),
			IsFavorited:      favorited,
			IsInShoppingCart: carted,
			Name:             recipe.Name,
			Image:            p.imageURL(recipe.Image),
			Text:             recipe.Text,
			CookingTime:      recipe.CookingTime,
			CreatedAt:        recipe.CreatedAt,
		})
	}
	return result, nil
}

// ProjectOne 是单条菜谱的 Project。
func (p *RecipeProjector) ProjectOne(ctx context.Context, recipe *db.Recipe, viewer *Viewer) (*dto.Recipe, error) {
	if recipe == nil {
		return nil, newError(KindNotFound, "recipe not found")
	}
	projected, err := p.Project(ctx, []db.Recipe{*recipe}, viewer)
	if err != nil {
		return nil, err
	}
	return &projected[0], nil
}

// Short 返回菜谱的精简视图。
func (p *RecipeProjector) Short(recipe *db.Recipe) dto.RecipeShort {
	return converter.RecipeToShort(recipe, p.imageURL)
}
