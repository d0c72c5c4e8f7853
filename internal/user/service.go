package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{repo: repo, logger: logger}
}

func (s *ServiceImpl) GetUser(ctx context.Context, req GetUserRequest) (*GetUserResponse, error) {
	user, err := s.lookup(ctx, req)
	if err != nil {
		return nil, err
	}
	return toResponse(user), nil
}

func (s *ServiceImpl) GetUserPassword(ctx context.Context, req GetUserRequest) (*GetUserPasswordResponse, error) {
	user, err := s.lookup(ctx, req)
	if err != nil {
		return nil, err
	}
	return &GetUserPasswordResponse{
		ID:       user.ID,
		Email:    user.Email,
		Password: user.Password,
	}, nil
}

func (s *ServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest) (*GetUserResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidInput
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:          uuid.New(),
		Email:       email,
		Password:    string(hashedPassword),
		DisplayName: strings.TrimSpace(req.DisplayName),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return toResponse(*user), nil
}

func (s *ServiceImpl) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*GetUserResponse, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if err := s.repo.UpdateDisplayName(ctx, id, name); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, GetUserRequest{ID: id})
}

func (s *ServiceImpl) lookup(ctx context.Context, req GetUserRequest) (User, error) {
	if req.ID != uuid.Nil {
		return s.repo.GetById(ctx, req.ID)
	}
	if req.Email != "" {
		return s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	}
	return User{}, ErrNotFound
}

func toResponse(user User) *GetUserResponse {
	return &GetUserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
}
