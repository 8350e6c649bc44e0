package db

// Ingredient 表示食材参考数据。
type Ingredient struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"size:200;index;uniqueIndex:idx_ingredient_name_unit;not null" json:"name"`
	MeasurementUnit string `gorm:"column:measurement_unit;size:200;uniqueIndex:idx_ingredient_name_unit;not null" json:"measurement_unit"`
}

// TableName 指定表名
func (Ingredient) TableName() string {
	return "ingredients"
}

// IngredientAmount 菜谱与食材的关联行，携带用量。
type IngredientAmount struct {
	ID           uint `gorm:"primarykey" json:"id"`
	RecipeID     uint `gorm:"not null;index;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint `gorm:"not null;index;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int  `gorm:"not null" json:"amount"`
}

// TableName 指定表名
func (IngredientAmount) TableName() string {
	return "ingredient_amounts"
}

// RecipeIngredient 是 ingredient_amounts 与 ingredients 联表查询的结果行。
type RecipeIngredient struct {
	RecipeID        uint
	IngredientID    uint
	Name            string
	MeasurementUnit string
	Amount          int
}

// ShoppingListRow 是购物清单聚合查询的结果行。
type ShoppingListRow struct {
	Name            string
	MeasurementUnit string
	TotalAmount     int64
}
