package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/dto"
	"atelier-backoffice-api/internal/metrics"
	"atelier-backoffice-api/internal/repository"
	"atelier-backoffice-api/internal/response"
)

// ProjectService defines the interface for project business logic
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error)
	List(ctx context.Context) ([]dto.ProjectResponse, error)
	Archives(ctx context.Context) ([]dto.ProjectResponse, error)
	RecordPayment(ctx context.Context, id uuid.UUID, req *dto.RecordPaymentRequest) (*dto.ProjectResponse, error)
	SetUrgency(ctx context.Context, id uuid.UUID, req *dto.SetUrgencyRequest) (*dto.ProjectResponse, error)
	SetStatus(ctx context.Context, id uuid.UUID, req *dto.SetStatusRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// projectServiceImpl is the implementation of ProjectService
type projectServiceImpl struct {
	projectRepo  repository.ProjectRepository
	clientRepo   repository.ClientRepository
	activityRepo repository.ActivityRepository
	phaseRepo    repository.PhaseRepository
	expenseRepo  repository.ExpenseRepository
	purgeRepo    repository.PhotoPurgeRepository
	resolver     PhotoURLResolver
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	clientRepo repository.ClientRepository,
	activityRepo repository.ActivityRepository,
	phaseRepo repository.PhaseRepository,
	expenseRepo repository.ExpenseRepository,
	purgeRepo repository.PhotoPurgeRepository,
	resolver PhotoURLResolver,
	m *metrics.Metrics,
	logger *zap.Logger,
) ProjectService {
	return &projectServiceImpl{
		projectRepo:  projectRepo,
		clientRepo:   clientRepo,
		activityRepo: activityRepo,
		phaseRepo:    phaseRepo,
		expenseRepo:  expenseRepo,
		purgeRepo:    purgeRepo,
		resolver:     resolver,
		metrics:      m,
		logger:       logger,
	}
}

// Create opens a project for an existing client. Recommandation-funded
// projects ignore the submitted total: it starts at zero and grows as
// unpaid activities are added.
func (s *projectServiceImpl) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Client not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify client", err.Error())
	}

	fundingType := domain.FundingType(req.FundingType)
	totalAmount := req.TotalAmount
	if fundingType == domain.FundingRecommandation {
		totalAmount = 0
	}

	project := &domain.Project{
		ClientID:      req.ClientID,
		Name:          req.Name,
		FundingType:   fundingType,
		TotalAmount:   totalAmount,
		PaymentStatus: domain.PaymentUnpaid,
		Status:        domain.ProjectPending,
		Deadline:      req.Deadline,
		Location:      req.Location,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create project", err.Error())
	}

	s.metrics.IncrementProjectCreated()
	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("client_id", client.ID.String()),
		zap.String("funding_type", string(fundingType)),
	)

	project.Client = client
	resp := toProjectResponse(project, s.resolver, time.Now(), false)
	return &resp, nil
}

// Get returns a project with its full activity and phase tree
func (s *projectServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByIDWithTree(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}

	resp := toProjectResponse(project, s.resolver, time.Now(), true)
	return &resp, nil
}

// List returns all projects ordered for triage: completed ones sink to
// the bottom, then urgent ones first, then by internal priority, then by
// nearest deadline
func (s *projectServiceImpl) List(ctx context.Context) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list projects", err.Error())
	}

	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if aDone, bDone := a.Status == domain.ProjectDone, b.Status == domain.ProjectDone; aDone != bDone {
			return bDone
		}
		if a.Urgent != b.Urgent {
			return a.Urgent
		}
		if a.InternalPriority != b.InternalPriority {
			return a.InternalPriority > b.InternalPriority
		}
		return a.Deadline.Before(b.Deadline)
	})

	now := time.Now()
	responses := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, toProjectResponse(p, s.resolver, now, false))
	}
	return responses, nil
}

// Archives returns the completed projects
func (s *projectServiceImpl) Archives(ctx context.Context) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindByStatus(ctx, domain.ProjectDone)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list archived projects", err.Error())
	}

	now := time.Now()
	responses := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, toProjectResponse(p, s.resolver, now, false))
	}
	return responses, nil
}

// RecordPayment adds a client payment to a project. Payments accumulate;
// the payment status is derived from the running total.
func (s *projectServiceImpl) RecordPayment(ctx context.Context, id uuid.UUID, req *dto.RecordPaymentRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.RecordPayment(ctx, id, req.Amount)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record payment", err.Error())
	}

	s.metrics.IncrementPaymentRecorded()
	s.logger.Info("Payment recorded",
		zap.String("project_id", id.String()),
		zap.Float64("amount", req.Amount),
		zap.String("payment_status", string(project.PaymentStatus)),
	)

	resp := toProjectResponse(project, s.resolver, time.Now(), false)
	return &resp, nil
}

// SetUrgency flags or unflags a project as urgent. An explicit internal
// priority wins; otherwise flagging sets the priority to 100 and
// unflagging resets it to zero.
func (s *projectServiceImpl) SetUrgency(ctx context.Context, id uuid.UUID, req *dto.SetUrgencyRequest) (*dto.ProjectResponse, error) {
	fields := map[string]interface{}{"urgent": req.Urgent}
	switch {
	case req.InternalPriority != nil:
		fields["internal_priority"] = *req.InternalPriority
	case req.Urgent:
		fields["internal_priority"] = 100
	default:
		fields["internal_priority"] = 0
	}

	if err := s.projectRepo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update urgency", err.Error())
	}

	return s.Get(ctx, id)
}

// SetStatus moves a project through its lifecycle. Completion is
// reversible: a finished project can be reopened.
func (s *projectServiceImpl) SetStatus(ctx context.Context, id uuid.UUID, req *dto.SetStatusRequest) (*dto.ProjectResponse, error) {
	if err := s.projectRepo.UpdateFields(ctx, id, map[string]interface{}{
		"status": domain.ProjectStatus(req.Status),
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update status", err.Error())
	}

	s.logger.Info("Project status changed",
		zap.String("project_id", id.String()),
		zap.String("status", req.Status),
	)

	return s.Get(ctx, id)
}

// Delete removes a project and everything under it: phases first, then
// activities, expenses and finally the project row. Proof photos are
// queued for the storage sweep instead of being deleted inline. The
// steps run sequentially; a failure mid-way leaves earlier deletions in
// place and is reported to the caller.
func (s *projectServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}
	if project.Status == domain.ProjectDone {
		return response.NewValidationError("Archived projects cannot be deleted", "")
	}

	phases, err := s.phaseRepo.FindByProjectID(ctx, id)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to list project phases", err.Error())
	}

	now := time.Now()
	var purges []*domain.PhotoPurge
	for _, phase := range phases {
		for _, key := range phase.PhotoKeyList() {
			purges = append(purges, &domain.PhotoPurge{
				PhaseID:  phase.ID,
				FileKey:  key,
				QueuedAt: now,
			})
		}
	}
	if err := s.purgeRepo.Enqueue(ctx, purges); err != nil {
		s.logger.Warn("Failed to queue proof photos for purge, orphaned objects may remain",
			zap.String("project_id", id.String()),
			zap.Error(err),
		)
	}

	if err := s.phaseRepo.DeleteByProjectID(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete project phases", err.Error())
	}
	if err := s.activityRepo.DeleteByProjectID(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete project activities", err.Error())
	}
	if err := s.expenseRepo.DeleteByProjectID(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete project expenses", err.Error())
	}
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete project", err.Error())
	}

	s.logger.Info("Project deleted",
		zap.String("project_id", id.String()),
		zap.Int("phases_removed", len(phases)),
		zap.Int("photos_queued", len(purges)),
	)
	return nil
}
