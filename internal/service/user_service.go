package service

import (
	"context"
	"errors"

	"go-gin-ticket-store/internal/auth"
	"go-gin-ticket-store/internal/model"
	"go-gin-ticket-store/internal/repository"
	apperrors "go-gin-ticket-store/pkg/app_errors"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	// 登入成功回傳使用者與 JWT
	Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

type UserServiceImpl struct {
	repo         repository.UserRepository
	tokenManager *auth.TokenManager
}

func NewUserService(repo repository.UserRepository, tokenManager *auth.TokenManager) UserService {
	return &UserServiceImpl{repo: repo, tokenManager: tokenManager}
}

func (s *UserServiceImpl) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         model.RoleUser,
		Attributes:   map[string]any{},
	}

	return s.repo.Create(ctx, user)
}

func (s *UserServiceImpl) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// 不洩漏帳號是否存在
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokenManager.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserServiceImpl) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}
