package services

import (
	"testing"
	"time"

	"ero_shop/internal/models"
	"ero_shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), nil, time.Hour)

	user := &models.User{
		Username: "paul",
		Email:    "paul@example.com",
		Phone:    "237690000002",
	}
	require.NoError(t, svc.Register(user, "secret123"))

	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	assert.Equal(t, string(models.UserClient), user.UserType)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), nil, time.Hour)

	first := &models.User{Username: "paul", Email: "paul@example.com", Phone: "237690000002"}
	require.NoError(t, svc.Register(first, "secret123"))

	sameName := &models.User{Username: "paul", Email: "other@example.com", Phone: "237690000003"}
	assert.ErrorIs(t, svc.Register(sameName, "secret123"), ErrUsernameTaken)

	sameEmail := &models.User{Username: "pierre", Email: "paul@example.com", Phone: "237690000004"}
	assert.ErrorIs(t, svc.Register(sameEmail, "secret123"), ErrEmailTaken)
}

func TestGetUserByID(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := NewUserService(repository.NewUserRepository(db), nil, time.Hour)

	found, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, found.Username)

	_, err = svc.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
