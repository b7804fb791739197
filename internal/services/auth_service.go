package services

import (
	"errors"
	"fmt"
	"time"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// tokenIssuer tags every token this service signs; ValidateToken rejects
// tokens minted by anything else.
const tokenIssuer = "catalog"

// ErrInvalidCredentials is returned for both unknown users and wrong
// passwords, so login failures never reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues and validates the bearer tokens that guard the catalog
// API. Every catalog operation requires an authenticated identity.
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
		tokenTTL:  24 * time.Hour,
	}
}

// RegisterUser hashes the password and stores a new catalog user. Reusing a
// taken username or email is reported as a ConflictError; a store failure
// after the checks pass is an OperationError, matching the catalog taxonomy.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return &apperrors.ConflictError{Field: "username", Value: user.Username}
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return &apperrors.ConflictError{Field: "email", Value: user.Email}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)

	if err := s.userRepo.Create(user); err != nil {
		return &apperrors.OperationError{Op: "registering user", Err: err}
	}
	return nil
}

// LoginUser checks the credentials and returns a signed catalog token.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":      tokenIssuer,
		"user_id":  user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a bearer token and returns its claims when the
// signature, expiry, and issuer all check out.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if iss, _ := claims["iss"].(string); iss != tokenIssuer {
		return nil, fmt.Errorf("invalid token: unexpected issuer")
	}
	return claims, nil
}
