package service

import (
	"context"
	"fmt"
	"foodgram/internal/entity/converter"
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
	"foodgram/internal/model"
	"strconv"
	"strings"
)

const (
	shoppingListHeader = "Shopping list"
	// ShoppingListFilename 是下载附件的文件名。
	ShoppingListFilename = "shopping_list.txt"
)

// ShoppingService 汇总购物车中所有菜谱的食材用量。
type ShoppingService struct {
	repo model.Repository
}

// NewShoppingService 创建购物清单服务实例
func NewShoppingService(repo model.Repository) *ShoppingService {
	return &ShoppingService{repo: repo}
}

// Aggregate 按 (名称, 单位) 汇总用量。购物车为空时返回 EmptyCart。
func (s *ShoppingService) Aggregate(ctx context.Context, userID uint) ([]dto.ShoppingListItem, error) {
	count, err := s.repo.CountRelations(ctx, db.RelationShoppingCart, userID)
	if err != nil {
		return nil, fmt.Errorf("count cart: %w", err)
	}
	if count == 0 {
		return nil, newError(KindEmptyCart, "shopping cart is empty")
	}

	rows, err := s.repo.AggregateShoppingCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate cart: %w", err)
	}
	return converter.ShoppingRowsToItems(rows), nil
}

// Render 输出纯文本清单：标题、空行，然后每行 "<名称> <数量> <单位>"。
func (s *ShoppingService) Render(items []dto.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString(shoppingListHeader)
	b.WriteString("\n\n")
	for _, item := range items {
		b.WriteString(item.Name)
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(item.Amount, 10))
		b.WriteByte(' ')
		b.WriteString(item.MeasurementUnit)
		b.WriteByte('\n')
	}
	return b.String()
}
