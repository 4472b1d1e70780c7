package service

import (
	"context"
	"errors"
	"fmt"

	"speechcoach/internal/models"
	"speechcoach/internal/repository"
	"speechcoach/internal/security"
	"speechcoach/internal/validation"

	"go.uber.org/zap"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCredentials = errors.New("email and password are required")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *security.TokenIssuer
	email    *EmailService
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenIssuer, email *EmailService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		email:    email,
		logger:   logger,
	}
}

// Signup creates a new account, issues an access token and sends the
// welcome email. The email send is best effort and never fails signup.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, "", err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(name, email)
	user.PasswordHash = passwordHash

	user, err = s.userRepo.CreateUser(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.email.SendWelcomeEmail(ctx, user.Email, user.Name); err != nil {
		s.logger.Warn("welcome email failed", zap.String("email", user.Email), zap.Error(err))
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID))
	return user, token, nil
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// ValidateToken resolves an access token to its user
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, security.ErrInvalidToken
	}
	return user, nil
}
