package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/dto"
	"atelier-backoffice-api/internal/repository"
	"atelier-backoffice-api/internal/response"
)

// StaffService defines the interface for staff management business logic
type StaffService interface {
	Enroll(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.StaffResponse, error)
	List(ctx context.Context) ([]dto.StaffResponse, error)
	ListExperts(ctx context.Context) ([]dto.StaffResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

// staffServiceImpl is the implementation of StaffService
type staffServiceImpl struct {
	profileRepo repository.ProfileRepository
	phaseRepo   repository.PhaseRepository
	logger      *zap.Logger
}

// NewStaffService creates a new instance of StaffService
func NewStaffService(profileRepo repository.ProfileRepository, phaseRepo repository.PhaseRepository, logger *zap.Logger) StaffService {
	return &staffServiceImpl{
		profileRepo: profileRepo,
		phaseRepo:   phaseRepo,
		logger:      logger,
	}
}

// Enroll registers a staff member. The created profile is immediately
// able to log in with the supplied password.
func (s *staffServiceImpl) Enroll(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.profileRepo.FindByEmail(ctx, email); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "A staff member with this email already exists", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check email", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	profile := &domain.StaffProfile{
		Name:         req.Name,
		Title:        req.Title,
		Role:         domain.StaffRole(req.Role),
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create staff member", err.Error())
	}

	s.logger.Info("Staff member enrolled",
		zap.String("profile_id", profile.ID.String()),
		zap.String("role", req.Role),
	)

	resp := dto.ToStaffResponse(profile)
	return &resp, nil
}

func (s *staffServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.StaffResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Staff member not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch staff member", err.Error())
	}
	resp := dto.ToStaffResponse(profile)
	return &resp, nil
}

func (s *staffServiceImpl) List(ctx context.Context) ([]dto.StaffResponse, error) {
	profiles, err := s.profileRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list staff", err.Error())
	}
	responses := make([]dto.StaffResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, dto.ToStaffResponse(p))
	}
	return responses, nil
}

// ListExperts returns the profiles that can be assigned to phases
func (s *staffServiceImpl) ListExperts(ctx context.Context) ([]dto.StaffResponse, error) {
	profiles, err := s.profileRepo.FindByRole(ctx, domain.RoleExpert)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list experts", err.Error())
	}
	responses := make([]dto.StaffResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, dto.ToStaffResponse(p))
	}
	return responses, nil
}

func (s *staffServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Staff member not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch staff member", err.Error())
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Title != nil {
		profile.Title = *req.Title
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
		}
		profile.PasswordHash = string(hash)
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update staff member", err.Error())
	}

	resp := dto.ToStaffResponse(profile)
	return &resp, nil
}

// Remove deletes a staff profile, which also revokes their access.
// An expert still assigned to phases cannot be removed.
func (s *staffServiceImpl) Remove(ctx context.Context, id uuid.UUID) error {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Staff member not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch staff member", err.Error())
	}

	if profile.Role == domain.RoleExpert {
		phases, err := s.phaseRepo.FindByExpertID(ctx, id)
		if err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to check assigned phases", err.Error())
		}
		if len(phases) > 0 {
			return response.NewConflictError("Expert still has assigned phases", "reassign or complete the phases first")
		}
	}

	if err := s.profileRepo.Delete(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove staff member", err.Error())
	}

	s.logger.Info("Staff member removed", zap.String("profile_id", id.String()))
	return nil
}
