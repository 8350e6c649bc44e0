package db

import "time"

// Recipe 表示一条已发布的菜谱。CreatedAt 即发布时间，写入后不再修改。
type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Image       string    `gorm:"size:512" json:"image"`
	CookingTime int       `gorm:"column:cooking_time;not null" json:"cooking_time"`
}

// TableName 指定表名
func (Recipe) TableName() string {
	return "recipes"
}
