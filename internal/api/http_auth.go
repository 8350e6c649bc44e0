package api

import (
	"net/http"
	"strings"

	"foodgram/internal/entity/dto"

	"github.com/gin-gonic/gin"
)

// Register 注册新用户，第一个注册的用户成为超级管理员
func (h *HTTPHandler) Register(c *gin.Context) {
	var req dto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	user, err := h.users.Register(ctx, &req)
	if err != nil {
		ServiceError(c, err, "register")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login 登录并签发 JWT
func (h *HTTPHandler) Login(c *gin.Context) {
	var req dto.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	resp, err := h.users.Login(ctx, &req)
	if err != nil {
		ServiceError(c, err, "login")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me 返回当前登录用户
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := requestContext(c, defaultRequestTimeout)
	defer cancel()

	summary, err := h.users.Get(ctx, user.ID, nil)
	if err != nil {
		ServiceError(c, err, "me")
		return
	}
	c.JSON(http.StatusOK, summary)
}
