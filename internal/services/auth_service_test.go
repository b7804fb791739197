package services_test

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
// for testing the auth service in isolation.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
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

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestRegisterUser(t *testing.T) {
	t.Run("hashes the password and stores the user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test-secret")

		user := &models.User{Username: "clerk", Email: "clerk@example.com", Password: "s3cret!"}
		mockRepo.On("GetByUsername", "clerk").Return(nil, errors.New("not found"))
		mockRepo.On("GetByEmail", "clerk@example.com").Return(nil, errors.New("not found"))
		mockRepo.On("Create", user).Return(nil)

		err := authService.RegisterUser(user)

		assert.NoError(t, err)
		assert.NotEqual(t, "s3cret!", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret!")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects a taken username with a conflict error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test-secret")

		existing := &models.User{ID: 1, Username: "clerk", Email: "other@example.com"}
		mockRepo.On("GetByUsername", "clerk").Return(existing, nil)

		err := authService.RegisterUser(&models.User{Username: "clerk", Email: "clerk@example.com", Password: "s3cret!"})

		assert.True(t, apperrors.IsConflict(err))
		var conflict *apperrors.ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, "username", conflict.Field)
		assert.Equal(t, "username 'clerk' is already in use", err.Error())
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("rejects a taken email with a conflict error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test-secret")

		existing := &models.User{ID: 2, Username: "other", Email: "clerk@example.com"}
		mockRepo.On("GetByUsername", "clerk").Return(nil, errors.New("not found"))
		mockRepo.On("GetByEmail", "clerk@example.com").Return(existing, nil)

		err := authService.RegisterUser(&models.User{Username: "clerk", Email: "clerk@example.com", Password: "s3cret!"})

		assert.True(t, apperrors.IsConflict(err))
		var conflict *apperrors.ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, "email", conflict.Field)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("wraps a store failure in an operation error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test-secret")

		mockRepo.On("GetByUsername", "clerk").Return(nil, errors.New("not found"))
		mockRepo.On("GetByEmail", "clerk@example.com").Return(nil, errors.New("not found"))
		mockRepo.On("Create", mock.Anything).Return(fmt.Errorf("disk full"))

		err := authService.RegisterUser(&models.User{Username: "clerk", Email: "clerk@example.com", Password: "s3cret!"})

		var oe *apperrors.OperationError
		assert.ErrorAs(t, err, &oe)
		assert.Equal(t, "registering user", oe.Op)
	})
}

func TestLoginUser(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	storedUser := &models.User{ID: 7, Username: "clerk", Email: "clerk@example.com", Password: string(hashed)}

	t.Run("returns a token carrying the catalog claims", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test-secret")
		mockRepo.On("GetByUsername", "clerk").Return(storedUser, nil)

		token, err := authService.LoginUser("clerk", "s3cret!")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := authService.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "catalog", claims["iss"])
		assert.EqualValues(t, 7, claims["user_id"])
		assert.Equal(t, "clerk", claims["username"])
	})

	t.Run("rejects an unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test-secret")
		mockRepo.On("GetByUsername", "ghost").Return(nil, errors.New("not found"))

		token, err := authService.LoginUser("ghost", "s3cret!")

		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("rejects a wrong password with the same error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test-secret")
		mockRepo.On("GetByUsername", "clerk").Return(storedUser, nil)

		token, err := authService.LoginUser("clerk", "wrong")

		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Empty(t, token)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("rejects garbage", func(t *testing.T) {
		authService := services.NewAuthService(new(MockUserRepository), "test-secret")

		claims, err := authService.ValidateToken("not-a-token")

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		other := services.NewAuthService(mockRepo, "other-secret")
		hashed, _ := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
		mockRepo.On("GetByUsername", "clerk").Return(&models.User{ID: 1, Username: "clerk", Password: string(hashed)}, nil)
		token, err := other.LoginUser("clerk", "pw123456")
		assert.NoError(t, err)

		authService := services.NewAuthService(new(MockUserRepository), "test-secret")
		claims, err := authService.ValidateToken(token)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("rejects a token from another issuer", func(t *testing.T) {
		foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iss":     "somewhere-else",
			"user_id": 1,
		})
		signed, err := foreign.SignedString([]byte("test-secret"))
		assert.NoError(t, err)

		authService := services.NewAuthService(new(MockUserRepository), "test-secret")
		claims, err := authService.ValidateToken(signed)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
