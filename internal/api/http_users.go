package api

import (
	"net/http"

	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
	"foodgram/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query dto.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	h.normalisePage(&query.BaseParams)

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	resp, err := h.users.List(ctx, &query, CurrentUser(c).Viewer())
	if err != nil {
		ServiceError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	user, err := h.users.Get(ctx, id, CurrentUser(c).Viewer())
	if err != nil {
		ServiceError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser 删除用户及其菜谱和关系数据，仅管理员可用
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}
	if current := CurrentUser(c); current != nil && current.ID == id {
		BadRequest(c, ErrCodeInvalidRequest, "cannot delete your own account")
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	if err := h.users.Delete(ctx, id); err != nil {
		ServiceError(c, err, "delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSubscriptions 列出当前用户关注的作者及其菜谱
func (h *HTTPHandler) ListSubscriptions(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var query dto.SubscriptionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	h.normalisePage(&query.BaseParams)

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	resp, err := h.relations.Subscriptions(ctx, user.ID, &query)
	if err != nil {
		ServiceError(c, err, "list subscriptions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

type subscribeQuery struct {
	RecipesLimit int `form:"recipes_limit"`
}

// Subscribe 关注作者，返回作者的订阅视图
func (h *HTTPHandler) Subscribe(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}
	authorID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}
	var query subscribeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	if err := h.relations.Toggle(ctx, db.RelationFollow, service.IntentCreate, user.ID, authorID); err != nil {
		ServiceError(c, err, "subscribe")
		return
	}
	sub, err := h.relations.Subscription(ctx, user.ID, authorID, query.RecipesLimit)
	if err != nil {
		ServiceError(c, err, "subscribe")
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// Unsubscribe 取消关注
func (h *HTTPHandler) Unsubscribe(c *gin.Context) {
	h.removeRelation(c, db.RelationFollow, "user")
}

// removeRelation 处理三种关系的删除请求
func (h *HTTPHandler) removeRelation(c *gin.Context, kind db.RelationKind, label string) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}
	targetID, ok := parseIDParam(c, "id", label)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	if err := h.relations.Toggle(ctx, kind, service.IntentDelete, user.ID, targetID); err != nil {
		ServiceError(c, err, "remove "+string(kind))
		return
	}
	c.Status(http.StatusNoContent)
}
