package service

import (
	"context"
	"errors"
	"fmt"
	"foodgram/internal/auth"
	"foodgram/internal/entity/common"
	"foodgram/internal/entity/converter"
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
	"foodgram/internal/model"
	"foodgram/internal/storage"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserService 处理注册、登录与用户查询。
type UserService struct {
	repo    model.Repository
	tokens  *auth.Manager
	storage storage.Storage
}

// NewUserService 创建用户服务实例
func NewUserService(repo model.Repository, tokens *auth.Manager, store storage.Storage) *UserService {
	return &UserService{repo: repo, tokens: tokens, storage: store}
}

// Register 创建账户。系统中的第一个用户成为超级管理员。
func (s *UserService) Register(ctx context.Context, req *dto.UserCreateRequest) (*dto.UserSummary, error) {
	if req == nil {
		return nil, newError(KindValidation, "request body is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, &Error{Kind: KindValidation, Message: "email already registered", Details: map[string]string{"email": "unique"}}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: "invalid password", Details: map[string]string{"password": err.Error()}}
	}

	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	role := db.UserRoleUser
	if count == 0 {
		role = db.UserRoleSuperAdmin
	}

	user := &db.User{
		Email:        email,
		Username:     username,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &Error{Kind: KindValidation, Message: "email or username already taken", Details: map[string]string{"username": "unique"}}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": role}).Info("user registered")
	summary := converter.UserToSummary(user, false)
	return &summary, nil
}

// Login 校验邮箱与密码并签发令牌。
func (s *UserService) Login(ctx context.Context, req *dto.AuthLoginRequest) (*dto.AuthResponse, error) {
	if req == nil {
		return nil, newError(KindValidation, "request body is required")
	}
	invalid := newError(KindUnauthorized, "invalid email or password")

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return nil, newError(KindUnauthorized, "account is disabled")
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, invalid
		}
		return nil, fmt.Errorf("verify password: %w", err)
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      converter.UserToSummary(user, false),
	}, nil
}

// Get 返回用户摘要，is_subscribed 相对 viewer 计算。
func (s *UserService) Get(ctx context.Context, userID uint, viewer *Viewer) (*dto.UserSummary, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found", "get user")
	}
	subscribed, err := s.subscribedSet(ctx, viewer, []uint{user.ID})
	if err != nil {
		return nil, err
	}
	_, ok := subscribed[user.ID]
	summary := converter.UserToSummary(user, ok)
	return &summary, nil
}

// List 分页列出用户。
func (s *UserService) List(ctx context.Context, query *dto.UserQuery, viewer *Viewer) (*dto.UserListResponse, error) {
	users, meta, err := s.repo.ListUsers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	subscribed, err := s.subscribedSet(ctx, viewer, ids)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		meta = &common.Meta{}
	}
	return &dto.UserListResponse{Users: converter.UsersToSummaries(users, subscribed), Meta: meta}, nil
}

// Delete 删除用户及其菜谱和全部关系行，提交后再删除菜谱图片。
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	images, err := s.repo.DeleteUser(ctx, userID)
	if err != nil {
		return notFoundOr(err, "user not found", "delete user")
	}
	discardImages(s.storage, images...)
	logrus.WithFields(logrus.Fields{"user_id": userID, "images": len(images)}).Info("user deleted")
	return nil
}

func (s *UserService) subscribedSet(ctx context.Context, viewer *Viewer, ids []uint) (map[uint]struct{}, error) {
	viewerID := viewer.id()
	if viewerID == 0 {
		return map[uint]struct{}{}, nil
	}
	set, err := s.repo.FilterRelatedTargets(ctx, db.RelationFollow, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("load follows: %w", err)
	}
	delete(set, viewerID)
	return set, nil
}
