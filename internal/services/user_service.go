package services

import (
	"errors"
	"fmt"

	"garage/internal/models"
	"garage/internal/repositories"
	"garage/pkg/rabbitmq"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles business logic for user accounts.
type UserService struct {
	userRepo repositories.UserRepository
	mqClient *rabbitmq.Client
}

// NewUserService creates a new UserService. mqClient may be nil, in which
// case no events are published.
func NewUserService(userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *UserService {
	return &UserService{
		userRepo: userRepo,
		mqClient: mqClient,
	}
}

// CreateUser registers a new user, hashing the plaintext password before it
// is stored. Registering an already-used email fails with ErrEmailTaken and
// leaves the existing record untouched.
func (s *UserService) CreateUser(user *models.User, password string) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hashed)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	publishEvent(s.mqClient, "user.created", map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
	})

	return nil
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByID retrieves a single user by ID.
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user account. Any still-unexpired tokens for the
// account stop working once the record is gone, since identity resolution
// re-checks the store.
func (s *UserService) DeleteUser(id uint) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	publishEvent(s.mqClient, "user.deleted", map[string]interface{}{
		"id": id,
	})

	return nil
}
