package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"garage/internal/models"
	"garage/internal/repositories"
	"garage/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

const testJWTSecret = "test_jwt_secret"

func TestAuthService_HashAndCheckPassword(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret)

	hash, err := authService.HashPassword("pw123")
	assert.NoError(t, err)
	assert.NotEqual(t, "pw123", hash)

	// Round-trip succeeds, wrong password fails
	assert.True(t, authService.CheckPassword("pw123", hash))
	assert.False(t, authService.CheckPassword("wrongpw", hash))

	// Salted: hashing the same password twice yields different outputs
	hash2, err := authService.HashPassword("pw123")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
	assert.True(t, authService.CheckPassword("pw123", hash2))

	// Malformed hash input fails the check instead of panicking
	assert.False(t, authService.CheckPassword("pw123", "not-a-bcrypt-hash"))

	// Arbitrary UTF-8 input round-trips
	hash3, err := authService.HashPassword("pässwörd-日本語")
	assert.NoError(t, err)
	assert.True(t, authService.CheckPassword("pässwörd-日本語", hash3))
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hash, err := authService.HashPassword("password123")
	assert.NoError(t, err)
	user := &models.User{
		ID:             42,
		Firstname:      "Alice",
		Lastname:       "Martin",
		Email:          "alice@example.com",
		HashedPassword: hash,
		IsAdmin:        true,
	}

	// Successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	tokenString, err := authService.LoginUser("alice@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	mockRepo.AssertExpectations(t)

	// The issued token carries the expected claims
	parsedToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "alice@example.com", claims["username"])
	assert.Equal(t, true, claims["is_admin"])
	assert.Contains(t, claims, "exp")
	assert.Contains(t, claims, "jti")

	// Wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser("alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email collapses into the same error
	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.LoginUser("ghost@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret)
	user := &models.User{ID: 7, Email: "bob@example.com"}

	// Valid token
	validToken, err := authService.IssueToken(user, time.Hour)
	assert.NoError(t, err)
	claims, err := authService.ValidateToken(validToken)
	assert.NoError(t, err)
	assert.Equal(t, "7", claims["sub"])
	assert.Equal(t, "bob@example.com", claims["username"])
	assert.Equal(t, false, claims["is_admin"])

	// Structurally malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Token past its expiry
	expiredToken, err := authService.IssueToken(user, -time.Minute)
	assert.NoError(t, err)
	_, err = authService.ValidateToken(expiredToken)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Token signed with a different secret
	otherService := services.NewAuthService(new(MockUserRepository), "other_secret")
	foreignToken, err := otherService.IssueToken(user, time.Hour)
	assert.NoError(t, err)
	_, err = authService.ValidateToken(foreignToken)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestAuthService_ResolveIdentity(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	user := &models.User{ID: 42, Email: "alice@example.com", IsAdmin: false}
	token, err := authService.IssueToken(user, time.Hour)
	assert.NoError(t, err)

	// The live record is returned, so a post-issuance role flip is visible
	liveUser := &models.User{ID: 42, Email: "alice@example.com", IsAdmin: true}
	mockRepo.On("GetByID", uint(42)).Return(liveUser, nil).Once()
	resolved, err := authService.ResolveIdentity(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), resolved.ID)
	assert.True(t, resolved.IsAdmin)
	mockRepo.AssertExpectations(t)

	// A deleted user's still-unexpired token is rejected
	mockRepo.On("GetByID", uint(42)).Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.ResolveIdentity(token)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	mockRepo.AssertExpectations(t)

	// An invalid token never reaches the store
	_, err = authService.ResolveIdentity("garbage")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
	mockRepo.AssertExpectations(t)
}
