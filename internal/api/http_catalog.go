package api

import (
	"net/http"

	"foodgram/internal/entity/dto"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) ListTags(c *gin.Context) {
	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	tags, err := h.catalog.ListTags(ctx)
	if err != nil {
		ServiceError(c, err, "list tags")
		return
	}
	c.JSON(http.StatusOK, dto.TagListResponse{Tags: tags})
}

func (h *HTTPHandler) GetTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "tag")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	tag, err := h.catalog.GetTag(ctx, id)
	if err != nil {
		ServiceError(c, err, "get tag")
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *HTTPHandler) CreateTag(c *gin.Context) {
	var req dto.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	tag, err := h.catalog.CreateTag(ctx, &req)
	if err != nil {
		ServiceError(c, err, "create tag")
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *HTTPHandler) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "tag")
	if !ok {
		return
	}
	var req dto.TagUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	tag, err := h.catalog.UpdateTag(ctx, id, &req)
	if err != nil {
		ServiceError(c, err, "update tag")
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DeleteTag 删除标签，同时解除它与菜谱的关联
func (h *HTTPHandler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "tag")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	if err := h.catalog.DeleteTag(ctx, id); err != nil {
		ServiceError(c, err, "delete tag")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListIngredients 按名称前缀（不区分大小写）搜索食材
func (h *HTTPHandler) ListIngredients(c *gin.Context) {
	var query dto.IngredientQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	items, err := h.catalog.ListIngredients(ctx, &query)
	if err != nil {
		ServiceError(c, err, "list ingredients")
		return
	}
	c.JSON(http.StatusOK, dto.IngredientListResponse{Ingredients: items})
}

func (h *HTTPHandler) GetIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ingredient")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	item, err := h.catalog.GetIngredient(ctx, id)
	if err != nil {
		ServiceError(c, err, "get ingredient")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *HTTPHandler) CreateIngredient(c *gin.Context) {
	var req dto.IngredientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	item, err := h.catalog.CreateIngredient(ctx, &req)
	if err != nil {
		ServiceError(c, err, "create ingredient")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ImportIngredients 从上传的 CSV（name,measurement_unit）批量导入食材
func (h *HTTPHandler) ImportIngredients(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "csv file is required")
		return
	}
	src, err := file.Open()
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "failed to read uploaded file")
		return
	}
	defer src.Close()

	ctx, cancel := requestContext(c, importRequestTimeout)
	defer cancel()

	inserted, err := h.catalog.ImportIngredientsCSV(ctx, src)
	if err != nil {
		ServiceError(c, err, "import ingredients")
		return
	}
	c.JSON(http.StatusOK, gin.H{"inserted": inserted})
}
