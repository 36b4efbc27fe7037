package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"ero_shop/internal/models"
	"ero_shop/internal/redis"
	"ero_shop/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Register(user *models.User, password string) error
	Login(username, password string) (string, *models.User, error)
	Logout(token string) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByToken(token string) (*models.User, error)
	UpdateProfile(user *models.User) error
}

type userService struct {
	userRepo   repository.UserRepository
	cache      *redis.Client
	sessionTTL time.Duration
}

func NewUserService(userRepo repository.UserRepository, cache *redis.Client, sessionTTL time.Duration) UserService {
	return &userService{userRepo: userRepo, cache: cache, sessionTTL: sessionTTL}
}

func (s *userService) Register(user *models.User, password string) error {
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return ErrUsernameTaken
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if user.UserType == "" {
		user.UserType = string(models.UserClient)
	}
	return s.userRepo.Create(user)
}

// Login verifies the credentials and issues an opaque session token backed
// by Redis. No JWT: the token carries nothing and expires server-side.
func (s *userService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.New().String()
	session := &redis.SessionData{
		UserID:    user.ID,
		Username:  user.Username,
		UserType:  user.UserType,
		CreatedAt: time.Now(),
	}
	if err := s.cache.SetSession(token, session, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	return token, user, nil
}

func (s *userService) Logout(token string) error {
	if err := s.cache.DeleteSession(token); err != nil {
		log.Printf("Warning: failed to delete session: %v", err)
	}
	return nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByToken(token string) (*models.User, error) {
	session, err := s.cache.GetSession(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.GetUserByID(session.UserID)
}

func (s *userService) UpdateProfile(user *models.User) error {
	return s.userRepo.Update(user)
}
