package api

import (
	"strings"

	"foodgram/internal/storage"

	"github.com/gin-gonic/gin"
)

// registerFileRoutes 本地存储时由服务自身提供图片访问
func (h *HTTPHandler) registerFileRoutes(r *gin.Engine) {
	localProvider, ok := h.storage.(storage.LocalBaseDirProvider)
	if !ok {
		return
	}
	if strings.HasPrefix(h.storagePublicBase, "http://") || strings.HasPrefix(h.storagePublicBase, "https://") {
		return
	}
	r.Static(h.storagePublicBase, localProvider.LocalBaseDir())
}
