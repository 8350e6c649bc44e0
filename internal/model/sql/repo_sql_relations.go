package sql

import (
	"context"
	"errors"
	"fmt"
	"foodgram/internal/entity/common"
	"foodgram/internal/entity/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// relationTable describes the storage of one relation kind.
type relationTable struct {
	model        interface{}
	targetColumn string
	newRow       func(userID, targetID uint) interface{}
}

var relationTables = map[db.RelationKind]relationTable{
	db.RelationFavorite: {
		model:        &db.Favorite{},
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uint) interface{} {
			return &db.Favorite{UserID: userID, RecipeID: targetID}
		},
	},
	db.RelationShoppingCart: {
		model:        &db.ShoppingCart{},
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uint) interface{} {
			return &db.ShoppingCart{UserID: userID, RecipeID: targetID}
		},
	},
	db.RelationFollow: {
		model:        &db.Follow{},
		targetColumn: "author_id",
		newRow: func(userID, targetID uint) interface{} {
			return &db.Follow{UserID: userID, AuthorID: targetID}
		},
	},
}

func tableFor(kind db.RelationKind) (relationTable, error) {
	table, ok := relationTables[kind]
	if !ok {
		return relationTable{}, fmt.Errorf("unsupported relation kind %q", kind)
	}
	return table, nil
}

// AddRelation inserts the (user, target) row. It reports false when the row
// already existed, including when a concurrent insert won the race.
func (r *GormRepository) AddRelation(ctx context.Context, kind db.RelationKind, userID, targetID uint) (bool, error) {
	if err := r.ready(); err != nil {
		return false, err
	}
	table, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	created := false
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(table.newRow(userID, targetID))
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return created, nil
}

// RemoveRelation deletes the (user, target) row and reports whether one existed.
func (r *GormRepository) RemoveRelation(ctx context.Context, kind db.RelationKind, userID, targetID uint) (bool, error) {
	if err := r.ready(); err != nil {
		return false, err
	}
	table, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	removed := false
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND "+table.targetColumn+" = ?", userID, targetID).Delete(table.model)
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// FilterRelatedTargets returns the subset of targetIDs the user is related to.
func (r *GormRepository) FilterRelatedTargets(ctx context.Context, kind db.RelationKind, userID uint, targetIDs []uint) (map[uint]struct{}, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	result := make(map[uint]struct{})
	targetIDs = uniqueIDs(targetIDs)
	if userID == 0 || len(targetIDs) == 0 {
		return result, nil
	}

	var related []uint
	if err := r.db.WithContext(ctx).
		Model(table.model).
		Where("user_id = ? AND "+table.targetColumn+" IN ?", userID, targetIDs).
		Pluck(table.targetColumn, &related).Error; err != nil {
		return nil, err
	}
	for _, id := range related {
		result[id] = struct{}{}
	}
	return result, nil
}

// CountRelations counts the user's rows of the given kind.
func (r *GormRepository) CountRelations(ctx context.Context, kind db.RelationKind, userID uint) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(table.model).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListFollowedAuthors returns the authors the user follows, paginated by author id.
func (r *GormRepository) ListFollowedAuthors(ctx context.Context, userID uint, params *common.BaseParams) ([]db.User, *common.Meta, error) {
	if err := r.ready(); err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&db.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, pageSize, offset := pageWindow(params)

	var users []db.User
	if err := query.Select("users.*").Order("users.id ASC").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, nil, err
	}
	return users, r.calculatePagination(total, page, pageSize), nil
}
