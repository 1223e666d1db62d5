package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/dto"
	"atelier-backoffice-api/internal/repository"
	"atelier-backoffice-api/internal/response"
)

// ClientService defines the interface for client business logic
type ClientService interface {
	Create(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	List(ctx context.Context) ([]dto.ClientResponse, error)
	Statement(ctx context.Context, id uuid.UUID) (*dto.ClientStatementResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// clientServiceImpl is the implementation of ClientService
type clientServiceImpl struct {
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	logger      *zap.Logger
}

// NewClientService creates a new instance of ClientService
func NewClientService(clientRepo repository.ClientRepository, projectRepo repository.ProjectRepository, logger *zap.Logger) ClientService {
	return &clientServiceImpl{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

func (s *clientServiceImpl) Create(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	mode := domain.PaymentModeCash
	if req.PreferredMode != "" {
		mode = domain.PaymentMode(req.PreferredMode)
	}

	client := &domain.Client{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		PreferredMode: mode,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create client", err.Error())
	}

	s.logger.Info("Client created", zap.String("client_id", client.ID.String()))

	resp := dto.ToClientResponse(client)
	return &resp, nil
}

func (s *clientServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Client not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch client", err.Error())
	}
	resp := dto.ToClientResponse(client)
	return &resp, nil
}

func (s *clientServiceImpl) List(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list clients", err.Error())
	}
	responses := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, dto.ToClientResponse(c))
	}
	return responses, nil
}

// Statement builds a client's account overview: every project with its
// balance plus the aggregated totals across them
func (s *clientServiceImpl) Statement(ctx context.Context, id uuid.UUID) (*dto.ClientStatementResponse, error) {
	client, err := s.clientRepo.FindByIDWithProjects(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Client not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch client", err.Error())
	}

	now := time.Now()
	statement := &dto.ClientStatementResponse{
		Client:   dto.ToClientResponse(client),
		Projects: []dto.ProjectResponse{},
	}
	for i := range client.Projects {
		p := &client.Projects[i]
		statement.Projects = append(statement.Projects, toProjectResponse(p, nil, now, false))
		statement.TotalContracted += p.TotalAmount
		statement.TotalPaid += p.PaidAmount
		if p.Status != domain.ProjectDone {
			statement.OperationalDebt += p.PaidAmount
		}
	}
	statement.TotalOutstanding = statement.TotalContracted - statement.TotalPaid
	if statement.TotalContracted > 0 {
		statement.CollectionRate = math.Round(100 * statement.TotalPaid / statement.TotalContracted)
	}

	return statement, nil
}

func (s *clientServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Client not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch client", err.Error())
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.PreferredMode != nil {
		client.PreferredMode = domain.PaymentMode(*req.PreferredMode)
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update client", err.Error())
	}

	resp := dto.ToClientResponse(client)
	return &resp, nil
}

// Delete removes a client. A client with projects cannot be deleted;
// the projects must be removed first.
func (s *clientServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Client not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch client", err.Error())
	}

	projects, err := s.projectRepo.FindByClientID(ctx, id)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check client projects", err.Error())
	}
	if len(projects) > 0 {
		return response.NewConflictError("Client still has projects", "delete the projects first")
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete client", err.Error())
	}

	s.logger.Info("Client deleted", zap.String("client_id", id.String()))
	return nil
}
