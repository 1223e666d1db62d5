package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/dto"
	"atelier-backoffice-api/internal/repository"
	"atelier-backoffice-api/internal/response"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.StaffResponse, error)
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	profileRepo repository.ProfileRepository
	jwtSecret   string
	tokenTTL    time.Duration
	logger      *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(profileRepo repository.ProfileRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		profileRepo: profileRepo,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Login verifies the submitted credentials and issues a signed token.
// Unknown accounts and wrong passwords produce the same error so the
// response does not leak which addresses exist.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := s.profileRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid email or password", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up account", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid email or password", "")
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  profile.ID.String(),
		"role": string(profile.Role),
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to sign token", err.Error())
	}

	s.logger.Info("Staff member logged in",
		zap.String("profile_id", profile.ID.String()),
		zap.String("role", string(profile.Role)),
	)

	return &dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		Profile:   dto.ToStaffResponse(profile),
	}, nil
}

// Me returns the profile behind an authenticated request
func (s *authServiceImpl) Me(ctx context.Context, userID uuid.UUID) (*dto.StaffResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Profile not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch profile", err.Error())
	}

	resp := dto.ToStaffResponse(profile)
	return &resp, nil
}
