package api

import (
	"context"
	"foodgram/internal/auth"
	"foodgram/internal/config"
	"foodgram/internal/entity/common"
	"foodgram/internal/model"
	"foodgram/internal/service"
	"foodgram/internal/storage"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultRequestTimeout = 5 * time.Second

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	// 服务层
	recipes   *service.RecipeService
	relations *service.RelationService
	shopping  *service.ShoppingService
	users     *service.UserService
	catalog   *service.CatalogService
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	publicBase := normalisePublicBase(cfg.StoragePublicBaseURL)
	validate := service.NewValidator()
	projector := service.NewRecipeProjector(repo, storage.NewURLResolver(publicBase))

	return &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: publicBase,
		authManager:       authManager,
		recipes:           service.NewRecipeService(repo, store, projector, validate),
		relations:         service.NewRelationService(repo, projector),
		shopping:          service.NewShoppingService(repo),
		users:             service.NewUserService(repo, authManager, store),
		catalog:           service.NewCatalogService(repo, validate),
	}, nil
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// requestContext 返回带默认超时的请求上下文
func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

// parseIDParam 解析路径中的 id，失败时写入 400 并返回 false
func parseIDParam(c *gin.Context, name, label string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid "+label+" id")
		return 0, false
	}
	return uint(id), true
}

// normalisePage 填充分页默认值
func (h *HTTPHandler) normalisePage(params *common.BaseParams) {
	defaultSize := h.cfg.PageSize
	if defaultSize <= 0 {
		defaultSize = 6
	}
	params.Normalize(defaultSize, h.cfg.MaxPageSize)
}

// RouteNotFound 未注册路由返回统一错误结构
func (h *HTTPHandler) RouteNotFound(c *gin.Context) {
	NotFound(c, ErrCodeNotFound, "route not found")
}

// Health 健康检查
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
