package service

import (
	"context"
	"errors"
	"io"
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

// ProofStorage is the object storage surface the phase service needs
type ProofStorage interface {
	PhotoURLResolver
	GenerateProofKey(phaseID uuid.UUID, fileName string) string
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	GeneratePresignedGetURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// PhaseService defines the interface for phase business logic
type PhaseService interface {
	Create(ctx context.Context, req *dto.CreatePhaseRequest) (*dto.PhaseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PhaseResponse, error)
	ListByActivity(ctx context.Context, activityID uuid.UUID) ([]dto.PhaseResponse, error)
	ListByExpert(ctx context.Context, expertID uuid.UUID) ([]dto.PhaseResponse, error)
	SetProgress(ctx context.Context, id, callerID uuid.UUID, callerRole domain.StaffRole, req *dto.SetPhaseProgressRequest) (*dto.PhaseResponse, error)
	AssignExpert(ctx context.Context, id uuid.UUID, req *dto.AssignExpertRequest) (*dto.PhaseResponse, error)
	AttachProof(ctx context.Context, id, callerID uuid.UUID, fileName, contentType string, file io.Reader) (*dto.PhaseResponse, error)
	ProofDownloadURL(ctx context.Context, id, callerID uuid.UUID, callerRole domain.StaffRole) (*dto.ProofDownloadResponse, error)
}

// phaseServiceImpl is the implementation of PhaseService
type phaseServiceImpl struct {
	phaseRepo   repository.PhaseRepository
	profileRepo repository.ProfileRepository
	purgeRepo   repository.PhotoPurgeRepository
	storage     ProofStorage
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewPhaseService creates a new instance of PhaseService
func NewPhaseService(
	phaseRepo repository.PhaseRepository,
	profileRepo repository.ProfileRepository,
	purgeRepo repository.PhotoPurgeRepository,
	storage ProofStorage,
	m *metrics.Metrics,
	logger *zap.Logger,
) PhaseService {
	return &phaseServiceImpl{
		phaseRepo:   phaseRepo,
		profileRepo: profileRepo,
		purgeRepo:   purgeRepo,
		storage:     storage,
		metrics:     m,
		logger:      logger,
	}
}

// Create adds a phase under an activity. Under a fixed-total project the
// client amounts of an activity's phases may not exceed the activity
// budget; the check runs in the same transaction as the insert.
func (s *phaseServiceImpl) Create(ctx context.Context, req *dto.CreatePhaseRequest) (*dto.PhaseResponse, error) {
	if req.ExpertID != nil {
		if err := s.verifyExpert(ctx, *req.ExpertID); err != nil {
			return nil, err
		}
	}

	phase := &domain.Phase{
		ActivityID:    req.ActivityID,
		Name:          req.Name,
		Description:   req.Description,
		ExpertID:      req.ExpertID,
		ClientAmount:  req.ClientAmount,
		ExpertFee:     req.ExpertFee,
		Progress:      domain.PhasePending,
		PaymentStatus: domain.PaymentUnpaid,
		Deadline:      req.Deadline,
	}

	if err := s.phaseRepo.CreateWithCeilingCheck(ctx, phase); err != nil {
		switch {
		case errors.Is(err, repository.ErrBudgetExceeded):
			return nil, response.NewBudgetError("Phase amount exceeds the activity's remaining budget", "")
		case errors.Is(err, repository.ErrDeadlineExceedsParent):
			return nil, response.NewValidationError("Phase deadline cannot exceed the activity deadline", "")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, response.NewAppError(response.ErrCodeNotFound, "Activity not found", "")
		default:
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create phase", err.Error())
		}
	}

	s.logger.Info("Phase created",
		zap.String("phase_id", phase.ID.String()),
		zap.String("activity_id", req.ActivityID.String()),
	)

	resp := toPhaseResponse(phase, s.storage, time.Now())
	return &resp, nil
}

func (s *phaseServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.PhaseResponse, error) {
	phase, err := s.findPhase(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPhaseResponse(phase, s.storage, time.Now())
	return &resp, nil
}

func (s *phaseServiceImpl) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]dto.PhaseResponse, error) {
	phases, err := s.phaseRepo.FindByActivityID(ctx, activityID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list phases", err.Error())
	}

	now := time.Now()
	responses := make([]dto.PhaseResponse, 0, len(phases))
	for _, p := range phases {
		responses = append(responses, toPhaseResponse(p, s.storage, now))
	}
	return responses, nil
}

// ListByExpert returns one expert's assigned phases, newest first
func (s *phaseServiceImpl) ListByExpert(ctx context.Context, expertID uuid.UUID) ([]dto.PhaseResponse, error) {
	phases, err := s.phaseRepo.FindByExpertID(ctx, expertID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list phases", err.Error())
	}

	now := time.Now()
	responses := make([]dto.PhaseResponse, 0, len(phases))
	for _, p := range phases {
		responses = append(responses, toPhaseResponse(p, s.storage, now))
	}
	return responses, nil
}

// SetProgress moves a phase through its state machine. Forward steps are
// en_attente -> en_cours -> termine. The only backward step is
// termine -> en_cours, which sends the work back: the rework counter
// goes up and the previous proof photos are dropped and queued for the
// storage sweep. Experts may only advance their own phases; sending work
// back is reserved for the office.
func (s *phaseServiceImpl) SetProgress(ctx context.Context, id, callerID uuid.UUID, callerRole domain.StaffRole, req *dto.SetPhaseProgressRequest) (*dto.PhaseResponse, error) {
	phase, err := s.findPhase(ctx, id)
	if err != nil {
		return nil, err
	}

	target := domain.PhaseProgress(req.Progress)
	if callerRole == domain.RoleExpert {
		if phase.ExpertID == nil || *phase.ExpertID != callerID {
			return nil, response.NewAppError(response.ErrCodeForbidden, "Experts may only update their own phases", "")
		}
		if phase.Progress == domain.PhaseDone {
			return nil, response.NewAppError(response.ErrCodeForbidden, "Only the office can send a finished phase back", "")
		}
	}
	if phase.Progress == target {
		return nil, response.NewValidationError("Phase is already in this state", "")
	}

	switch {
	case phase.Progress == domain.PhasePending && target == domain.PhaseInProgress:
		if phase.ExpertID == nil {
			return nil, response.NewValidationError("Phase cannot start without an assigned expert", "")
		}
		phase.Progress = target

	case phase.Progress == domain.PhaseInProgress && target == domain.PhaseDone:
		phase.Progress = target
		s.metrics.IncrementPhaseCompleted()

	case phase.Progress == domain.PhaseDone && target == domain.PhaseInProgress:
		if err := s.relaunch(ctx, phase); err != nil {
			return nil, err
		}
		s.metrics.IncrementPhaseRelaunched()

	default:
		return nil, response.NewValidationError("Invalid progress transition", string(phase.Progress)+" -> "+req.Progress)
	}

	if err := s.phaseRepo.Update(ctx, phase); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update phase", err.Error())
	}

	s.logger.Info("Phase progress changed",
		zap.String("phase_id", id.String()),
		zap.String("progress", req.Progress),
		zap.Int("rework_count", phase.ReworkCount),
	)

	resp := toPhaseResponse(phase, s.storage, time.Now())
	return &resp, nil
}

// relaunch prepares a finished phase for rework: its proof photos are
// queued for purge and cleared, and the rework counter is incremented
func (s *phaseServiceImpl) relaunch(ctx context.Context, phase *domain.Phase) error {
	now := time.Now()
	var purges []*domain.PhotoPurge
	for _, key := range phase.PhotoKeyList() {
		purges = append(purges, &domain.PhotoPurge{
			PhaseID:  phase.ID,
			FileKey:  key,
			QueuedAt: now,
		})
	}
	if err := s.purgeRepo.Enqueue(ctx, purges); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to queue proof photos for purge", err.Error())
	}

	phase.Progress = domain.PhaseInProgress
	phase.ReworkCount++
	phase.ProofURL = ""
	if err := phase.SetPhotoKeys([]string{}); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to clear proof photos", err.Error())
	}
	return nil
}

// AssignExpert assigns or reassigns the expert on a phase. Finished
// phases keep their expert; relaunch them first.
func (s *phaseServiceImpl) AssignExpert(ctx context.Context, id uuid.UUID, req *dto.AssignExpertRequest) (*dto.PhaseResponse, error) {
	phase, err := s.findPhase(ctx, id)
	if err != nil {
		return nil, err
	}

	if phase.Progress == domain.PhaseDone {
		return nil, response.NewValidationError("Cannot reassign a finished phase", "")
	}

	if err := s.verifyExpert(ctx, req.ExpertID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"expert_id": req.ExpertID}
	if req.ExpertFee != nil {
		fields["expert_fee"] = *req.ExpertFee
	}
	if req.Deadline != nil {
		if phase.Activity != nil && req.Deadline.After(phase.Activity.Deadline) {
			return nil, response.NewValidationError("Phase deadline cannot exceed the activity deadline", "")
		}
		fields["deadline"] = *req.Deadline
	}

	if err := s.phaseRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to assign expert", err.Error())
	}

	s.logger.Info("Expert assigned to phase",
		zap.String("phase_id", id.String()),
		zap.String("expert_id", req.ExpertID.String()),
	)

	return s.Get(ctx, id)
}

// AttachProof stores a proof photo for a phase and appends its key to
// the phase's photo list. Only the assigned expert can attach proof.
func (s *phaseServiceImpl) AttachProof(ctx context.Context, id, callerID uuid.UUID, fileName, contentType string, file io.Reader) (*dto.PhaseResponse, error) {
	if s.storage == nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Photo storage is not configured", "")
	}

	phase, err := s.findPhase(ctx, id)
	if err != nil {
		return nil, err
	}

	if phase.ExpertID == nil || *phase.ExpertID != callerID {
		return nil, response.NewForbiddenError("Only the assigned expert can attach proof photos", "")
	}
	if phase.Progress == domain.PhasePending {
		return nil, response.NewValidationError("Phase has not started yet", "")
	}

	key := s.storage.GenerateProofKey(phase.ID, fileName)
	start := time.Now()
	url, err := s.storage.UploadFile(ctx, key, file, contentType)
	s.metrics.RecordStorageOperation("upload", time.Since(start), err)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to upload proof photo", err.Error())
	}

	keys := append(phase.PhotoKeyList(), key)
	if err := phase.SetPhotoKeys(keys); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record proof photo", err.Error())
	}
	phase.ProofURL = url

	if err := s.phaseRepo.Update(ctx, phase); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update phase", err.Error())
	}

	s.metrics.IncrementProofPhotoUploaded()
	s.logger.Info("Proof photo attached",
		zap.String("phase_id", id.String()),
		zap.String("file_key", key),
	)

	resp := toPhaseResponse(phase, s.storage, time.Now())
	return &resp, nil
}

// proofDownloadTTL bounds how long a signed proof link stays valid
const proofDownloadTTL = 15 * time.Minute

// ProofDownloadURL signs a time-limited link to the phase's most recent
// proof photo. Experts only get links to their own phases.
func (s *phaseServiceImpl) ProofDownloadURL(ctx context.Context, id, callerID uuid.UUID, callerRole domain.StaffRole) (*dto.ProofDownloadResponse, error) {
	if s.storage == nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Photo storage is not configured", "")
	}

	phase, err := s.findPhase(ctx, id)
	if err != nil {
		return nil, err
	}

	if callerRole == domain.RoleExpert && (phase.ExpertID == nil || *phase.ExpertID != callerID) {
		return nil, response.NewForbiddenError("Experts may only view their own phases", "")
	}

	keys := phase.PhotoKeyList()
	if len(keys) == 0 {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Phase has no proof photo", "")
	}

	start := time.Now()
	url, err := s.storage.GeneratePresignedGetURL(ctx, keys[len(keys)-1], proofDownloadTTL)
	s.metrics.RecordStorageOperation("presign", time.Since(start), err)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to sign proof link", err.Error())
	}

	return &dto.ProofDownloadResponse{URL: url, ExpiresAt: time.Now().Add(proofDownloadTTL)}, nil
}

func (s *phaseServiceImpl) findPhase(ctx context.Context, id uuid.UUID) (*domain.Phase, error) {
	phase, err := s.phaseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Phase not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch phase", err.Error())
	}
	return phase, nil
}

func (s *phaseServiceImpl) verifyExpert(ctx context.Context, expertID uuid.UUID) error {
	profile, err := s.profileRepo.FindByID(ctx, expertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Expert not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to verify expert", err.Error())
	}
	if profile.Role != domain.RoleExpert {
		return response.NewValidationError("Assigned staff member is not an expert", "")
	}
	return nil
}
