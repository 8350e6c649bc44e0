package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"foodgram/internal/entity/converter"
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
	"foodgram/internal/model"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CatalogService 维护标签与食材参考数据。
type CatalogService struct {
	repo     model.Repository
	validate *validator.Validate
}

// NewCatalogService 创建参考数据服务实例
func NewCatalogService(repo model.Repository, validate *validator.Validate) *CatalogService {
	if validate == nil {
		validate = NewValidator()
	}
	return &CatalogService{repo: repo, validate: validate}
}

func (s *CatalogService) ListTags(ctx context.Context) ([]dto.Tag, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return converter.TagsToDTOs(tags), nil
}

func (s *CatalogService) GetTag(ctx context.Context, id uint) (*dto.Tag, error) {
	tag, err := s.repo.GetTag(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "tag not found", "get tag")
	}
	result := converter.TagToDTO(tag)
	return &result, nil
}

// CreateTag 创建标签，颜色统一保存为大写 #RRGGBB。
func (s *CatalogService) CreateTag(ctx context.Context, req *dto.TagCreateRequest) (*dto.Tag, error) {
	if req == nil {
		return nil, newError(KindValidation, "request body is required")
	}
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, validationError(err)
	}

	tag := &db.Tag{
		Name:  strings.TrimSpace(req.Name),
		Color: strings.ToUpper(req.Color),
		Slug:  strings.TrimSpace(req.Slug),
	}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, uniqueOr(err, "tag with this name, color or slug already exists", "create tag")
	}
	result := converter.TagToDTO(tag)
	return &result, nil
}

func (s *CatalogService) UpdateTag(ctx context.Context, id uint, req *dto.TagUpdateRequest) (*dto.Tag, error) {
	if req == nil {
		return nil, newError(KindValidation, "request body is required")
	}
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, validationError(err)
	}

	updates := db.TagUpdates{Name: req.Name, Slug: req.Slug}
	if req.Color != nil {
		color := strings.ToUpper(*req.Color)
		updates.Color = &color
	}
	if _, err := s.repo.GetTag(ctx, id); err != nil {
		return nil, notFoundOr(err, "tag not found", "get tag")
	}
	if err := s.repo.UpdateTag(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "tag not found")
		}
		return nil, uniqueOr(err, "tag with this name, color or slug already exists", "update tag")
	}
	return s.GetTag(ctx, id)
}

func (s *CatalogService) DeleteTag(ctx context.Context, id uint) error {
	if err := s.repo.DeleteTag(ctx, id); err != nil {
		return notFoundOr(err, "tag not found", "delete tag")
	}
	return nil
}

// ListIngredients 按名称前缀（不区分大小写）搜索食材。
func (s *CatalogService) ListIngredients(ctx context.Context, query *dto.IngredientQuery) ([]dto.Ingredient, error) {
	items, err := s.repo.ListIngredients(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return converter.IngredientsToDTOs(items), nil
}

func (s *CatalogService) GetIngredient(ctx context.Context, id uint) (*dto.Ingredient, error) {
	item, err := s.repo.GetIngredient(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "ingredient not found", "get ingredient")
	}
	result := converter.IngredientToDTO(item)
	return &result, nil
}

func (s *CatalogService) CreateIngredient(ctx context.Context, req *dto.IngredientCreateRequest) (*dto.Ingredient, error) {
	if req == nil {
		return nil, newError(KindValidation, "request body is required")
	}
	item := &db.Ingredient{
		Name:            strings.TrimSpace(req.Name),
		MeasurementUnit: strings.TrimSpace(req.MeasurementUnit),
	}
	if item.Name == "" || item.MeasurementUnit == "" {
		return nil, newError(KindValidation, "name and measurement_unit are required")
	}
	if err := s.repo.CreateIngredient(ctx, item); err != nil {
		return nil, uniqueOr(err, "ingredient with this name and unit already exists", "create ingredient")
	}
	result := converter.IngredientToDTO(item)
	return &result, nil
}

// ImportIngredientsCSV 读取 "name,measurement_unit" 行并写入缺失的食材，返回新增数量。
func (s *CatalogService) ImportIngredientsCSV(ctx context.Context, r io.Reader) (int64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var items []db.Ingredient
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, &Error{
				Kind:    KindValidation,
				Message: fmt.Sprintf("malformed csv at line %d", line),
				Details: map[string]string{"reason": err.Error()},
			}
		}
		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			logrus.WithField("line", line).Warn("skipping incomplete ingredient row")
			continue
		}
		items = append(items, db.Ingredient{Name: name, MeasurementUnit: unit})
	}

	inserted, err := s.repo.ImportIngredients(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("import ingredients: %w", err)
	}
	logrus.WithFields(logrus.Fields{"rows": len(items), "inserted": inserted}).Info("ingredients imported")
	return inserted, nil
}

// uniqueOr 把唯一约束冲突转成 Validation 错误。
func uniqueOr(err error, message, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return newError(KindValidation, message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
