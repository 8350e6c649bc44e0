package db

import "time"

// Tag 表示菜谱标签（参考数据）。
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:7;uniqueIndex;not null" json:"color"`
	Slug  string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// RecipeTag 菜谱与标签的关联表，Position 保留提交时的顺序。
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey" json:"recipe_id"`
	TagID    uint `gorm:"primaryKey;index" json:"tag_id"`
	Position int  `gorm:"not null;default:0" json:"position"`
}

// TableName 指定表名
func (RecipeTag) TableName() string {
	return "recipe_tags"
}
