package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/dto"
	"atelier-backoffice-api/internal/repository"
	"atelier-backoffice-api/internal/response"
)

// ActivityService defines the interface for activity business logic
type ActivityService interface {
	Create(ctx context.Context, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ActivityResponse, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]dto.ActivityResponse, error)
}

// activityServiceImpl is the implementation of ActivityService
type activityServiceImpl struct {
	activityRepo repository.ActivityRepository
	projectRepo  repository.ProjectRepository
	resolver     PhotoURLResolver
	logger       *zap.Logger
}

// NewActivityService creates a new instance of ActivityService
func NewActivityService(
	activityRepo repository.ActivityRepository,
	projectRepo repository.ProjectRepository,
	resolver PhotoURLResolver,
	logger *zap.Logger,
) ActivityService {
	return &activityServiceImpl{
		activityRepo: activityRepo,
		projectRepo:  projectRepo,
		resolver:     resolver,
		logger:       logger,
	}
}

// Create adds an activity to a project. Under a fixed-total project the
// budget must fit the remaining contracted headroom; the check and the
// insert happen in one transaction, so a rejection changes nothing.
// Under recommandation funding an unpaid activity grows the client debt.
func (s *activityServiceImpl) Create(ctx context.Context, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	paymentStatus := domain.PaymentUnpaid
	if req.PaymentStatus != "" {
		paymentStatus = domain.PaymentStatus(req.PaymentStatus)
	}

	activity := &domain.Activity{
		ProjectID:     req.ProjectID,
		Name:          req.Name,
		Budget:        req.Budget,
		PaymentStatus: paymentStatus,
		Deadline:      req.Deadline,
	}

	if err := s.activityRepo.CreateWithBudgetCheck(ctx, activity); err != nil {
		switch {
		case errors.Is(err, repository.ErrBudgetExceeded):
			return nil, response.NewBudgetError("Activity budget exceeds the project's remaining amount", "")
		case errors.Is(err, repository.ErrDeadlineExceedsParent):
			return nil, response.NewValidationError("Activity deadline cannot exceed the project deadline", "")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		default:
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create activity", err.Error())
		}
	}

	s.logger.Info("Activity created",
		zap.String("activity_id", activity.ID.String()),
		zap.String("project_id", req.ProjectID.String()),
		zap.Float64("budget", req.Budget),
	)

	resp := toActivityResponse(activity, s.resolver, time.Now())
	return &resp, nil
}

// Get returns an activity with its phases
func (s *activityServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.ActivityResponse, error) {
	activity, err := s.activityRepo.FindByIDWithPhases(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Activity not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch activity", err.Error())
	}

	resp := toActivityResponse(activity, s.resolver, time.Now())
	return &resp, nil
}

func (s *activityServiceImpl) ListByProject(ctx context.Context, projectID uuid.UUID) ([]dto.ActivityResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify project", err.Error())
	}

	activities, err := s.activityRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list activities", err.Error())
	}

	now := time.Now()
	responses := make([]dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, toActivityResponse(a, s.resolver, now))
	}
	return responses, nil
}
