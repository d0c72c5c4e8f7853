package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mindscape/be/internal/config"
	"mindscape/be/internal/user"
)

const issuer = "mindscape"

type ServiceImpl struct {
	userService user.Service
	config      config.JWTConfig
	now         func() time.Time
}

func NewServiceImpl(userService user.Service, config config.JWTConfig) *ServiceImpl {
	return &ServiceImpl{
		userService: userService,
		config:      config,
		now:         time.Now,
	}
}

func (s *ServiceImpl) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	userResponse, err := s.userService.GetUserPassword(ctx, user.GetUserRequest{Email: req.Email})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userResponse.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(userResponse.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token}, nil
}

func (s *ServiceImpl) Register(ctx context.Context, req *user.CreateUserRequest) (*LoginResponse, error) {
	created, err := s.userService.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(created.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: created}, nil
}

// Authenticate validates a bearer token and returns the user it was issued to.
func (s *ServiceImpl) Authenticate(tokenString string) (uuid.UUID, error) {
	if s.config.SecretKey == "" {
		return uuid.Nil, ErrMissingSecret
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.config.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return id, nil
}

func (s *ServiceImpl) generateToken(id uuid.UUID) (string, error) {
	if s.config.SecretKey == "" {
		return "", ErrMissingSecret
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiry())),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	tokenString, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}
