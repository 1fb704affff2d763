package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"meeting_tracker/internal/logging"
	"meeting_tracker/internal/model"
	"meeting_tracker/internal/repository"
	"meeting_tracker/internal/utils"
)

// AuthService provides authentication related services
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	logger   *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, logger *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
		logger:   logger,
	}
}

// Signup creates a new user account
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrValidation
	}

	// The pre-check only gives a friendly error; the unique index decides under concurrency.
	existingUser, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check existing user: %w", ErrPersistence, err)
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("%w: failed to create user: %w", ErrPersistence, err)
	}

	logging.WithContext(ctx, s.logger).Info("user signed up", "user_id", user.ID)
	return user, nil
}

// Login authenticates a user and returns a bearer token
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrValidation
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: error finding user by email: %w", ErrPersistence, err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if utils.IsLegacyDigest(user.PasswordHash) {
		logging.WithContext(ctx, s.logger).Warn("user still has an unsalted legacy password digest", "user_id", user.ID)
	}

	token, err := s.jwtUtil.GenerateToken(user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate validates a bearer token and loads the user it names
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load token user: %w", ErrPersistence, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user no longer exists", utils.ErrInvalidToken)
	}
	return user, nil
}
