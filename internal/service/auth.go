package service

import (
	"errors"
	"fmt"

	"acquisitions/internal/models"
	"acquisitions/internal/repository"
	"acquisitions/internal/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService interface {
	// Register creates a user and returns it with a freshly minted token.
	Register(name, email, password, role string) (*models.User, string, error)
	// Login verifies credentials and returns the user with a fresh token.
	Login(email, password string) (*models.User, string, error)
}

type authService struct {
	repo   repository.AuthRepository
	tokens *token.Codec
	logger *zap.Logger
}

func NewAuthService(repo repository.AuthRepository, tokens *token.Codec, logger *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

func (s *authService) Register(name, email, password, role string) (*models.User, string, error) {
	if role == "" {
		role = models.RoleUser.String()
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         role,
	}

	if err := s.repo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", ErrUserAlreadyExists
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	tokenString, err := s.tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User registered successfully", zap.String("email", user.Email), zap.String("role", user.Role))
	return user, tokenString, nil
}

func (s *authService) Login(email, password string) (*models.User, string, error) {
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same error as a wrong password so responses never reveal
			// whether the email exists.
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return nil, "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User logged in successfully", zap.String("email", user.Email))
	return user, tokenString, nil
}
