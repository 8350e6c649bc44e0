package storage

import (
	"strings"
)

// URLResolver 把对象 key 转换为客户端可访问的地址。
type URLResolver func(key string) string

// NewURLResolver 以 baseURL 为前缀拼接对象 key。已经是绝对地址的 key 原样返回。
func NewURLResolver(baseURL string) URLResolver {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return func(key string) string {
		key = strings.TrimSpace(key)
		if key == "" {
			return ""
		}
		if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
			return key
		}
		return base + "/" + strings.TrimLeft(key, "/")
	}
}
