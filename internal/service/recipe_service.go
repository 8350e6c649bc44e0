package service

import (
	"context"
	"fmt"
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
	"foodgram/internal/model"
	"foodgram/internal/storage"
	"foodgram/internal/utils"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	recipeImageCategory = "recipes"
	maxRecipeNameRunes  = 200
)

// RecipeService 负责菜谱的读取、创建、更新与删除。
// 写操作在仓库中各自以一个事务完成。
type RecipeService struct {
	repo      model.Repository
	storage   storage.Storage
	projector *RecipeProjector
	validate  *validator.Validate
}

// NewRecipeService 创建菜谱服务实例
func NewRecipeService(repo model.Repository, store storage.Storage, projector *RecipeProjector, validate *validator.Validate) *RecipeService {
	if validate == nil {
		validate = NewValidator()
	}
	return &RecipeService{
		repo:      repo,
		storage:   store,
		projector: projector,
		validate:  validate,
	}
}

// List 返回按发布时间倒序的菜谱列表。匿名用户的 is_favorited / is_in_shopping_cart 过滤被忽略。
func (s *RecipeService) List(ctx context.Context, query *dto.RecipeQuery, viewer *Viewer) (*dto.RecipeListResponse, error) {
	if query == nil {
		query = &dto.RecipeQuery{}
	}
	query.ViewerID = viewer.id()

	recipes, meta, err := s.repo.ListRecipes(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	projected, err := s.projector.Project(ctx, recipes, viewer)
	if err != nil {
		return nil, err
	}
	return &dto.RecipeListResponse{Recipes: projected, Meta: meta}, nil
}

// Get 返回单条菜谱视图。
func (s *RecipeService) Get(ctx context.Context, recipeID uint, viewer *Viewer) (*dto.Recipe, error) {
	recipe, err := s.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, notFoundOr(err, "recipe not found", "get recipe")
	}
	return s.projector.ProjectOne(ctx, recipe, viewer)
}

// Create 校验请求、保存图片，并在一个事务中写入菜谱、标签关联与食材用量。
func (s *RecipeService) Create(ctx context.Context, authorID uint, req *dto.RecipeWriteRequest) (*dto.Recipe, error) {
	tagIDs, amounts, err := s.prepareWrite(ctx, req)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Image) == "" {
		return nil, &Error{Kind: KindValidation, Message: "image is required", Details: map[string]string{"image": "required"}}
	}

	imageKey, err := s.saveImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	recipe := &db.Recipe{
		Name:        strings.TrimSpace(req.Name),
		AuthorID:    authorID,
		Text:        req.Text,
		Image:       imageKey,
		CookingTime: req.CookingTime,
	}
	if err := s.repo.CreateRecipe(ctx, recipe, tagIDs, amounts); err != nil {
		s.discardImage(imageKey)
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"recipe_id": recipe.ID,
		"author_id": authorID,
	}).Info("recipe created")

	return s.projector.ProjectOne(ctx, recipe, NewViewer(authorID))
}

// Update 仅允许作者修改。标签与食材整体替换，image 为空时保留原图。
func (s *RecipeService) Update(ctx context.Context, recipeID, actorID uint, req *dto.RecipeWriteRequest) (*dto.Recipe, error) {
	current, err := s.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, notFoundOr(err, "recipe not found", "get recipe")
	}
	if current.AuthorID != actorID {
		return nil, newError(KindForbidden, "only the author can change this recipe")
	}

	tagIDs, amounts, err := s.prepareWrite(ctx, req)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	text := req.Text
	cookingTime := req.CookingTime
	updates := db.RecipeUpdates{Name: &name, Text: &text, CookingTime: &cookingTime}

	newImage := ""
	if strings.TrimSpace(req.Image) != "" {
		if newImage, err = s.saveImage(ctx, req.Image); err != nil {
			return nil, err
		}
		updates.Image = &newImage
	}

	if err := s.repo.UpdateRecipe(ctx, recipeID, updates, tagIDs, amounts); err != nil {
		if newImage != "" {
			s.discardImage(newImage)
		}
		return nil, notFoundOr(err, "recipe not found", "update recipe")
	}
	if newImage != "" && current.Image != "" {
		s.discardImage(current.Image)
	}

	updated, err := s.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, notFoundOr(err, "recipe not found", "reload recipe")
	}
	return s.projector.ProjectOne(ctx, updated, NewViewer(actorID))
}

// Delete 仅允许作者删除菜谱，级联删除其关联行。
func (s *RecipeService) Delete(ctx context.Context, recipeID, actorID uint) error {
	current, err := s.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		return notFoundOr(err, "recipe not found", "get recipe")
	}
	if current.AuthorID != actorID {
		return newError(KindForbidden, "only the author can delete this recipe")
	}
	if err := s.repo.DeleteRecipe(ctx, recipeID); err != nil {
		return notFoundOr(err, "recipe not found", "delete recipe")
	}
	if current.Image != "" {
		s.discardImage(current.Image)
	}
	return nil
}

// prepareWrite 校验请求并解析出去重后的标签 id 与食材用量行。
func (s *RecipeService) prepareWrite(ctx context.Context, req *dto.RecipeWriteRequest) ([]uint, []db.IngredientAmount, error) {
	if req == nil {
		return nil, nil, newError(KindValidation, "request body is required")
	}
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, nil, validationError(err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, nil, &Error{Kind: KindValidation, Message: "name is required", Details: map[string]string{"name": "required"}}
	}
	if utf8.RuneCountInString(req.Name) > maxRecipeNameRunes {
		return nil, nil, &Error{Kind: KindValidation, Message: "name is too long", Details: map[string]string{"name": "max"}}
	}

	tagIDs := make([]uint, 0, len(req.Tags))
	seenTags := make(map[uint]struct{}, len(req.Tags))
	for _, id := range req.Tags {
		if _, ok := seenTags[id]; ok {
			continue
		}
		seenTags[id] = struct{}{}
		tagIDs = append(tagIDs, id)
	}
	if len(tagIDs) > 0 {
		tags, err := s.repo.FindTagsByIDs(ctx, tagIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("load tags: %w", err)
		}
		if len(tags) != len(tagIDs) {
			return nil, nil, &Error{Kind: KindValidation, Message: "unknown tag", Details: map[string]interface{}{"tags": missingIDs(tagIDs, tagIDsOf(tags))}}
		}
	}

	amounts := make([]db.IngredientAmount, 0, len(req.Ingredients))
	ingredientIDs := make([]uint, 0, len(req.Ingredients))
	seenIngredients := make(map[uint]struct{}, len(req.Ingredients))
	for _, item := range req.Ingredients {
		if _, ok := seenIngredients[item.ID]; ok {
			return nil, nil, &Error{Kind: KindValidation, Message: "ingredient listed more than once", Details: map[string]interface{}{"ingredients": item.ID}}
		}
		seenIngredients[item.ID] = struct{}{}
		ingredientIDs = append(ingredientIDs, item.ID)
		amounts = append(amounts, db.IngredientAmount{IngredientID: item.ID, Amount: item.Amount})
	}
	if len(ingredientIDs) > 0 {
		ingredients, err := s.repo.FindIngredientsByIDs(ctx, ingredientIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("load ingredients: %w", err)
		}
		if len(ingredients) != len(ingredientIDs) {
			found := make([]uint, len(ingredients))
			for i := range ingredients {
				found[i] = ingredients[i].ID
			}
			return nil, nil, &Error{Kind: KindValidation, Message: "unknown ingredient", Details: map[string]interface{}{"ingredients": missingIDs(ingredientIDs, found)}}
		}
	}

	return tagIDs, amounts, nil
}

func (s *RecipeService) saveImage(ctx context.Context, payload string) (string, error) {
	data, ext, err := utils.DecodeMediaPayload(payload)
	if err != nil {
		return "", &Error{Kind: KindValidation, Message: "invalid image", Details: map[string]string{"image": err.Error()}}
	}
	if s.storage == nil {
		return "", fmt.Errorf("storage not configured")
	}
	key, err := s.storage.Save(ctx, data, storage.SaveOptions{
		Category:  recipeImageCategory,
		Extension: ext,
		BaseName:  uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("save recipe image: %w", err)
	}
	return key, nil
}

func (s *RecipeService) discardImage(key string) {
	discardImages(s.storage, key)
}

// discardImages 尽力删除不再被引用的图片，失败只记录日志。
func discardImages(store storage.Storage, keys ...string) {
	if store == nil {
		return
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := store.Delete(context.Background(), key); err != nil {
			logrus.WithError(err).WithField("image", key).Warn("failed to delete recipe image")
		}
	}
}

func tagIDsOf(tags []db.Tag) []uint {
	ids := make([]uint, len(tags))
	for i := range tags {
		ids[i] = tags[i].ID
	}
	return ids
}

// missingIDs 返回 wanted 中不在 found 里的 id。
func missingIDs(wanted, found []uint) []uint {
	present := make(map[uint]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	missing := make([]uint, 0)
	for _, id := range wanted {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
