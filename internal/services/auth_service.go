package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"garage/internal/models"
	"garage/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccessTokenTTL is how long an issued token stays valid.
const AccessTokenTTL = 15 * time.Minute

// AuthService handles business logic for authentication and authorization:
// password hashing, token issuance/validation and identity resolution.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  AccessTokenTTL,
	}
}

// HashPassword hashes a plaintext password with bcrypt. The salt is embedded
// in the output, so two hashes of the same password differ.
func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt hash.
// Malformed hashes simply fail the check; the comparison is constant-time.
func (s *AuthService) CheckPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// LoginUser authenticates a user by email and password and returns a signed
// access token. Unknown emails and wrong passwords return the same error so
// responses don't reveal which accounts exist.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if !s.CheckPassword(password, user.HashedPassword) {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user, s.tokenTTL)
}

// IssueToken signs an access token for the given user, expiring after ttl.
func (s *AuthService) IssueToken(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Email,
		"is_admin": user.IsAdmin,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
		"jti":      uuid.New().String(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and verifies a token, returning its claims if the
// signature checks out and the token has not expired. All failure modes
// collapse into ErrInvalidToken.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// ResolveIdentity validates a token and loads the live user record for its
// subject. The store lookup is deliberate: a deleted user's still-unexpired
// token must be rejected, and role changes take effect immediately instead
// of waiting for the token to expire.
func (s *AuthService) ResolveIdentity(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}

	return user, nil
}
