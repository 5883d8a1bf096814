package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/justsurfingit/HireNest/internal/apperr"
	"github.com/justsurfingit/HireNest/internal/auth"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

const minPasswordLength = 6

type AuthService struct {
	DB     *gorm.DB
	Tokens *auth.TokenIssuer
	Logger *zap.Logger
}

func NewAuthService(db *gorm.DB, tokens *auth.TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{DB: db, Tokens: tokens, Logger: logger}
}

// Signup validates the form and stores a new user with a bcrypt hash.
func (s *AuthService) Signup(ctx context.Context, req dtos.SignupRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.Logger.Info("User signup attempt started",
		zap.String("email", email),
		zap.String("role", req.Role))

	if strings.TrimSpace(req.Name) == "" || email == "" || req.Password == "" || req.Role == "" || strings.TrimSpace(req.Location) == "" {
		return nil, apperr.BadRequest("All fields are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperr.BadRequest("Please enter a valid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperr.BadRequest("Password must be at least 6 characters long")
	}
	if req.Role != models.RoleJobSeeker && req.Role != models.RoleEmployer {
		return nil, apperr.BadRequest("Invalid role selected")
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperr.Internal("An error occurred during signup", err)
	}
	if count > 0 {
		s.Logger.Warn("Signup failed: Email already registered", zap.String("email", email))
		return nil, apperr.BadRequest("Email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("An error occurred during signup", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hash,
		Role:     req.Role,
		Location: strings.TrimSpace(req.Location),
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, apperr.Internal("An error occurred during signup", err)
	}

	s.Logger.Info("User created successfully",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role))
	return user, nil
}

// Login checks the credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperr.BadRequest("Email and password are required")
	}

	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.Logger.Warn("Login failed: User not found", zap.String("email", email))
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, apperr.Internal("An error occurred during login", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.Logger.Warn("Login failed: Invalid password", zap.String("user_id", user.ID))
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	token, err := s.Tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperr.Internal("An error occurred during login", err)
	}

	s.Logger.Info("Login successful",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role),
		zap.Duration("token_ttl", s.Tokens.TTL()))

	return &dtos.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User: dtos.LoginUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

// Logout only checks the token; there is no server-side session to end.
func (s *AuthService) Logout(authorization string) (*auth.Claims, error) {
	token := auth.BearerToken(authorization)
	if token == "" {
		return nil, apperr.BadRequest("No token provided")
	}
	claims, err := s.Tokens.Verify(token)
	if err != nil {
		s.Logger.Warn("Logout failed: Invalid token", zap.Error(err))
		return nil, apperr.BadRequest("Invalid token").Wrap(err)
	}
	s.Logger.Info("Logout successful", zap.String("user_id", claims.UserID))
	return claims, nil
}
