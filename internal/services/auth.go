package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"mokshamaa/internal/domain"
	"mokshamaa/internal/metrics"
	"mokshamaa/internal/util"
)

// AuthService implements admin authentication
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// LoginResult carries an issued bearer token.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login verifies credentials and issues a JWT
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	log.Printf("[AUTH] Login attempt for user: %s", username)

	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[AUTH] Login failed: user '%s' not found", username)
			metrics.RecordAuthAttempt(false)
			return nil, NewUnauthorizedError("incorrect username or password")
		}
		log.Printf("[AUTH] Login failed: database error for user '%s': %v", username, err)
		metrics.RecordAuthAttempt(false)
		return nil, &PersistenceError{Op: "get user", Err: err}
	}

	if !util.CheckPasswordHash(password, user.HashedPassword) {
		log.Printf("[AUTH] Login failed: invalid password for user '%s'", username)
		metrics.RecordAuthAttempt(false)
		return nil, NewUnauthorizedError("incorrect username or password")
	}

	if !user.IsActive {
		log.Printf("[AUTH] Login failed: user '%s' is inactive", username)
		metrics.RecordAuthAttempt(false)
		return nil, NewUnauthorizedError("user account is inactive")
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.WithContext(ctx).Save(&user)

	token, err := util.GenerateToken(&user)
	if err != nil {
		log.Printf("[AUTH] Login failed: token generation error for user '%s': %v", username, err)
		return nil, err
	}

	log.Printf("[AUTH] Login successful for user '%s' (id=%d, admin=%v, staff=%v)",
		username, user.ID, user.IsAdmin, user.IsStaff)
	metrics.RecordAuthAttempt(true)

	return &LoginResult{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate validates a bearer token and loads the matching active user.
// Used by the admin route middleware.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := util.ValidateToken(token)
	if err != nil {
		return nil, NewUnauthorizedError("invalid or expired token")
	}

	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", claims.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewUnauthorizedError("user not found")
		}
		return nil, &PersistenceError{Op: "get user", Err: err}
	}

	if !user.IsActive {
		return nil, NewUnauthorizedError("user account is inactive")
	}
	if !user.IsStaff && !user.IsAdmin {
		return nil, NewUnauthorizedError("insufficient permissions")
	}

	return &user, nil
}
