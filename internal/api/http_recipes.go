package api

import (
	"fmt"
	"net/http"
	"time"

	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
	"foodgram/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// 写菜谱时需要先上传图片
	recipeWriteTimeout   = 30 * time.Second
	importRequestTimeout = 60 * time.Second
)

// ListRecipes 菜谱列表，支持 tags / author / is_favorited / is_in_shopping_cart 过滤
func (h *HTTPHandler) ListRecipes(c *gin.Context) {
	var query dto.RecipeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	h.normalisePage(&query.BaseParams)

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	resp, err := h.recipes.List(ctx, &query, CurrentUser(c).Viewer())
	if err != nil {
		ServiceError(c, err, "list recipes")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) GetRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "recipe")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	recipe, err := h.recipes.Get(ctx, id, CurrentUser(c).Viewer())
	if err != nil {
		ServiceError(c, err, "get recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *HTTPHandler) CreateRecipe(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}
	var req dto.RecipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c, recipeWriteTimeout)
	defer cancel()

	recipe, err := h.recipes.Create(ctx, user.ID, &req)
	if err != nil {
		ServiceError(c, err, "create recipe")
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe 整体替换菜谱内容，仅作者可操作
func (h *HTTPHandler) UpdateRecipe(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}
	id, ok := parseIDParam(c, "id", "recipe")
	if !ok {
		return
	}
	var req dto.RecipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c, recipeWriteTimeout)
	defer cancel()

	recipe, err := h.recipes.Update(ctx, id, user.ID, &req)
	if err != nil {
		ServiceError(c, err, "update recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *HTTPHandler) DeleteRecipe(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}
	id, ok := parseIDParam(c, "id", "recipe")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	if err := h.recipes.Delete(ctx, id, user.ID); err != nil {
		ServiceError(c, err, "delete recipe")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) AddFavorite(c *gin.Context) {
	h.addRecipeRelation(c, db.RelationFavorite)
}

func (h *HTTPHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, db.RelationFavorite, "recipe")
}

func (h *HTTPHandler) AddToShoppingCart(c *gin.Context) {
	h.addRecipeRelation(c, db.RelationShoppingCart)
}

func (h *HTTPHandler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeRelation(c, db.RelationShoppingCart, "recipe")
}

// addRecipeRelation 收藏或加入购物车，成功时返回菜谱简要信息
func (h *HTTPHandler) addRecipeRelation(c *gin.Context, kind db.RelationKind) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}
	recipeID, ok := parseIDParam(c, "id", "recipe")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	if err := h.relations.Toggle(ctx, kind, service.IntentCreate, user.ID, recipeID); err != nil {
		ServiceError(c, err, "add "+string(kind))
		return
	}
	short, err := h.relations.RecipeShort(ctx, recipeID)
	if err != nil {
		ServiceError(c, err, "add "+string(kind))
		return
	}
	c.JSON(http.StatusCreated, short)
}

// DownloadShoppingCart 以文本附件形式返回汇总后的购物清单
func (h *HTTPHandler) DownloadShoppingCart(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	items, err := h.shopping.Aggregate(ctx, user.ID)
	if err != nil {
		ServiceError(c, err, "download shopping cart")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ShoppingListFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(h.shopping.Render(items)))
}
