package service

import (
	"context"
	"fmt"
	"foodgram/internal/entity/common"
	"foodgram/internal/entity/converter"
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
	"foodgram/internal/model"

	"github.com/sirupsen/logrus"
)

// Intent 是关系切换的方向。
type Intent string

const (
	IntentCreate Intent = "create"
	IntentDelete Intent = "delete"
)

type relationMessages struct {
	alreadyExists string
	missing       string
	targetMissing string
}

var relationMessageSet = map[db.RelationKind]relationMessages{
	db.RelationFavorite: {
		alreadyExists: "recipe already in favorites",
		missing:       "recipe was not in favorites",
		targetMissing: "recipe not found",
	},
	db.RelationShoppingCart: {
		alreadyExists: "recipe already in shopping cart",
		missing:       "recipe was not in shopping cart",
		targetMissing: "recipe not found",
	},
	db.RelationFollow: {
		alreadyExists: "already subscribed to this user",
		missing:       "not subscribed to this user",
		targetMissing: "user not found",
	},
}

const selfFollowMessage = "cannot subscribe to yourself"

// RelationService 处理收藏、购物车与关注三种关系的创建和删除。
type RelationService struct {
	repo      model.Repository
	projector *RecipeProjector
}

// NewRelationService 创建关系服务实例
func NewRelationService(repo model.Repository, projector *RecipeProjector) *RelationService {
	return &RelationService{repo: repo, projector: projector}
}

// Toggle 创建或删除 (actor, target) 关系。
//
// 关注自己在任何存储操作之前被拒绝；目标不存在返回 NotFound；
// 重复创建（包括并发竞争失败）返回 AlreadyExists；删除不存在的关系返回 RelationMissing。
func (s *RelationService) Toggle(ctx context.Context, kind db.RelationKind, intent Intent, actorID, targetID uint) error {
	if !kind.Valid() {
		return newError(KindValidation, fmt.Sprintf("unsupported relation kind %q", kind))
	}
	messages := relationMessageSet[kind]
	if kind == db.RelationFollow && actorID == targetID {
		return newError(KindSelfReference, selfFollowMessage)
	}

	if err := s.ensureTarget(ctx, kind, targetID, messages.targetMissing); err != nil {
		return err
	}

	fields := logrus.Fields{"kind": kind, "user_id": actorID, "target_id": targetID}
	switch intent {
	case IntentCreate:
		created, err := s.repo.AddRelation(ctx, kind, actorID, targetID)
		if err != nil {
			return fmt.Errorf("add %s: %w", kind, err)
		}
		if !created {
			return newError(KindAlreadyExists, messages.alreadyExists)
		}
		logrus.WithFields(fields).Debug("relation created")
	case IntentDelete:
		removed, err := s.repo.RemoveRelation(ctx, kind, actorID, targetID)
		if err != nil {
			return fmt.Errorf("remove %s: %w", kind, err)
		}
		if !removed {
			return newError(KindRelationMissing, messages.missing)
		}
		logrus.WithFields(fields).Debug("relation removed")
	default:
		return fmt.Errorf("unsupported intent %q", intent)
	}
	return nil
}

func (s *RelationService) ensureTarget(ctx context.Context, kind db.RelationKind, targetID uint, message string) error {
	var err error
	if kind.TargetIsUser() {
		_, err = s.repo.GetUserByID(ctx, targetID)
	} else {
		_, err = s.repo.GetRecipe(ctx, targetID)
	}
	if err != nil {
		return notFoundOr(err, message, "load relation target")
	}
	return nil
}

// RecipeShort 返回收藏、购物车操作成功后展示的菜谱精简视图。
func (s *RelationService) RecipeShort(ctx context.Context, recipeID uint) (*dto.RecipeShort, error) {
	recipe, err := s.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, notFoundOr(err, "recipe not found", "get recipe")
	}
	short := s.projector.Short(recipe)
	return &short, nil
}

// Subscription 返回单个被关注作者的订阅视图。
func (s *RelationService) Subscription(ctx context.Context, viewerID, authorID uint, recipesLimit int) (*dto.Subscription, error) {
	author, err := s.repo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, notFoundOr(err, "user not found", "get user")
	}
	subs, err := s.buildSubscriptions(ctx, viewerID, []db.User{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &subs[0], nil
}

// Subscriptions 分页列出 viewer 关注的作者及其菜谱，recipes_limit > 0 时限制每位作者的菜谱数量。
func (s *RelationService) Subscriptions(ctx context.Context, viewerID uint, query *dto.SubscriptionQuery) (*dto.SubscriptionListResponse, error) {
	if query == nil {
		query = &dto.SubscriptionQuery{}
	}
	authors, meta, err := s.repo.ListFollowedAuthors(ctx, viewerID, &query.BaseParams)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	subs, err := s.buildSubscriptions(ctx, viewerID, authors, query.RecipesLimit)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		meta = &common.Meta{}
	}
	return &dto.SubscriptionListResponse{Subscriptions: subs, Meta: meta}, nil
}

func (s *RelationService) buildSubscriptions(ctx context.Context, viewerID uint, authors []db.User, recipesLimit int) ([]dto.Subscription, error) {
	result := make([]dto.Subscription, 0, len(authors))
	if len(authors) == 0 {
		return result, nil
	}

	authorIDs := make([]uint, len(authors))
	for i := range authors {
		authorIDs[i] = authors[i].ID
	}

	counts, err := s.repo.CountRecipesByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}
	recipes, err := s.repo.ListRecipesByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("list author recipes: %w", err)
	}
	following, err := s.repo.FilterRelatedTargets(ctx, db.RelationFollow, viewerID, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load follows: %w", err)
	}

	byAuthor := make(map[uint][]dto.RecipeShort, len(authors))
	for i := range recipes {
		authorID := recipes[i].AuthorID
		if recipesLimit > 0 && len(byAuthor[authorID]) >= recipesLimit {
			continue
		}
		byAuthor[authorID] = append(byAuthor[authorID], s.projector.Short(&recipes[i]))
	}

	for i := range authors {
		author := &authors[i]
		_, subscribed := following[author.ID]
		shorts := byAuthor[author.ID]
		if shorts == nil {
			shorts = []dto.RecipeShort{}
		}
		result = append(result, dto.Subscription{
			UserSummary:  converter.UserToSummary(author, subscribed && author.ID != viewerID),
			Recipes:      shorts,
			RecipesCount: counts[author.ID],
		})
	}
	return result, nil
}
