package common

// Meta 分页元数据。
type Meta struct {
	Page     int64 `json:"page"`
	PageSize int64 `json:"page_size"`
	Total    int64 `json:"total"`
}

// BaseParams 通用分页参数。
type BaseParams struct {
	PageSize int64 `json:"limit" form:"limit" query:"limit"`
	Page     int64 `json:"page" form:"page" query:"page"`
}

// Normalize 填充默认分页值并限制单页大小。
func (p *BaseParams) Normalize(defaultSize, maxSize int64) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	if maxSize > 0 && p.PageSize > maxSize {
		p.PageSize = maxSize
	}
}
