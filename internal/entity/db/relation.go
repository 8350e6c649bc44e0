package db

import "time"

// Favorite 用户收藏的菜谱。
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (Favorite) TableName() string {
	return "favorites"
}

// ShoppingCart 用户购物车中的菜谱。
type ShoppingCart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;index;uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (ShoppingCart) TableName() string {
	return "shopping_carts"
}

// Follow 关注关系：UserID 关注 AuthorID。
type Follow struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_follow_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_follow_user_author" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (Follow) TableName() string {
	return "follows"
}

// RelationKind 标识用户关系表的种类。
type RelationKind string

const (
	RelationFavorite     RelationKind = "favorite"
	RelationShoppingCart RelationKind = "shopping_cart"
	RelationFollow       RelationKind = "follow"
)

// TargetIsUser 表示关系目标是用户（关注）而非菜谱。
func (k RelationKind) TargetIsUser() bool {
	return k == RelationFollow
}

// Valid 检查关系种类是否受支持。
func (k RelationKind) Valid() bool {
	switch k {
	case RelationFavorite, RelationShoppingCart, RelationFollow:
		return true
	default:
		return false
	}
}
