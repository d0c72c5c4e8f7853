package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mindscape/be/internal/config"
	"mindscape/be/internal/session"
	"mindscape/be/internal/user"
)

type fakeUserService struct {
	user.Service
	id       uuid.UUID
	email    string
	password string
}

func newFakeUserService(t *testing.T, email, password string) *fakeUserService {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeUserService{id: uuid.New(), email: email, password: string(hash)}
}

func (f *fakeUserService) GetUserPassword(_ context.Context, req user.GetUserRequest) (*user.GetUserPasswordResponse, error) {
	if req.Email != f.email {
		return nil, user.ErrNotFound
	}
	return &user.GetUserPasswordResponse{ID: f.id, Email: f.email, Password: f.password}, nil
}

func (f *fakeUserService) CreateUser(_ context.Context, req *user.CreateUserRequest) (*user.GetUserResponse, error) {
	if req.Email == f.email {
		return nil, user.ErrAlreadyExists
	}
	return &user.GetUserResponse{ID: uuid.New(), Email: req.Email, DisplayName: req.DisplayName}, nil
}

var jwtConfig = config.JWTConfig{SecretKey: "test-secret", ExpiryHours: 1}

func TestServiceImpl_LoginAndAuthenticate(t *testing.T) {
	users := newFakeUserService(t, "sam@example.com", "hunter22")
	svc := NewServiceImpl(users, jwtConfig)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "sam@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	id, err := svc.Authenticate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, users.id, id)
}

func TestServiceImpl_LoginFailures(t *testing.T) {
	users := newFakeUserService(t, "sam@example.com", "hunter22")
	svc := NewServiceImpl(users, jwtConfig)

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Email: "sam@example.com", Password: "nope"}},
		{"unknown email", LoginRequest{Email: "who@example.com", Password: "hunter22"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}

	noSecret := NewServiceImpl(users, config.JWTConfig{ExpiryHours: 1})
	_, err := noSecret.Login(context.Background(), LoginRequest{Email: "sam@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestServiceImpl_Register(t *testing.T) {
	users := newFakeUserService(t, "taken@example.com", "hunter22")
	svc := NewServiceImpl(users, jwtConfig)

	resp, err := svc.Register(context.Background(), &user.CreateUserRequest{Email: "new@example.com", Password: "password1", DisplayName: "New"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	id, err := svc.Authenticate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id)

	_, err = svc.Register(context.Background(), &user.CreateUserRequest{Email: "taken@example.com", Password: "password1"})
	assert.ErrorIs(t, err, user.ErrAlreadyExists)
}

func TestServiceImpl_AuthenticateRejects(t *testing.T) {
	users := newFakeUserService(t, "sam@example.com", "hunter22")
	svc := NewServiceImpl(users, jwtConfig)

	expired := NewServiceImpl(users, jwtConfig)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.generateToken(users.id)
	require.NoError(t, err)

	otherSecret := NewServiceImpl(users, config.JWTConfig{SecretKey: "other", ExpiryHours: 1})
	forged, err := otherSecret.generateToken(users.id)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   users.id.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expiredToken,
		"wrong secret": forged,
		"alg none":     noneToken,
		"garbage":      "not.a.token",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Authenticate(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	users := newFakeUserService(t, "sam@example.com", "hunter22")
	svc := NewServiceImpl(users, jwtConfig)
	token, err := svc.generateToken(users.id)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/private", Middleware(svc), func(c *gin.Context) {
		s, ok := session.Current(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": s.UserID.String(), "token": s.Token})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), users.id.String())
			}
		})
	}
}
