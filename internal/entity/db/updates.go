package db

// RecipeUpdates 菜谱标量字段更新
type RecipeUpdates struct {
	Name        *string
	Text        *string
	Image       *string
	CookingTime *int
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u RecipeUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Text != nil {
		updates["text"] = *u.Text
	}
	if u.Image != nil {
		updates["image"] = *u.Image
	}
	if u.CookingTime != nil {
		updates["cooking_time"] = *u.CookingTime
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u RecipeUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// TagUpdates 标签更新字段
type TagUpdates struct {
	Name  *string
	Color *string
	Slug  *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u TagUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Color != nil {
		updates["color"] = *u.Color
	}
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u TagUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
