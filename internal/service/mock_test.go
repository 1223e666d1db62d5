package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/metrics"
)

// newTestMetrics builds metrics on a private registry so tests never
// collide on the default registerer
func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
}

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	CreateFunc               func(ctx context.Context, client *domain.Client) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	FindByIDWithProjectsFunc func(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	FindAllFunc              func(ctx context.Context) ([]*domain.Client, error)
	UpdateFunc               func(ctx context.Context, client *domain.Client) error
	DeleteFunc               func(ctx context.Context, id uuid.UUID) error
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, client)
	}
	return nil
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockClientRepository) FindByIDWithProjects(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	if m.FindByIDWithProjectsFunc != nil {
		return m.FindByIDWithProjectsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockClientRepository) FindAll(ctx context.Context) ([]*domain.Client, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockClientRepository) Update(ctx context.Context, client *domain.Client) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, client)
	}
	return nil
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	CreateFunc           func(ctx context.Context, project *domain.Project) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindByIDWithTreeFunc func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindAllFunc          func(ctx context.Context) ([]*domain.Project, error)
	FindByClientIDFunc   func(ctx context.Context, clientID uuid.UUID) ([]*domain.Project, error)
	FindByStatusFunc     func(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error)
	UpdateFunc           func(ctx context.Context, project *domain.Project) error
	UpdateFieldsFunc     func(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	RecordPaymentFunc    func(ctx context.Context, id uuid.UUID, amount float64) (*domain.Project, error)
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindByIDWithTree(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindByIDWithTreeFunc != nil {
		return m.FindByIDWithTreeFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindAll(ctx context.Context) ([]*domain.Project, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*domain.Project, error) {
	if m.FindByClientIDFunc != nil {
		return m.FindByClientIDFunc(ctx, clientID)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error) {
	if m.FindByStatusFunc != nil {
		return m.FindByStatusFunc(ctx, status)
	}
	return nil, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProjectRepository) RecordPayment(ctx context.Context, id uuid.UUID, amount float64) (*domain.Project, error) {
	if m.RecordPaymentFunc != nil {
		return m.RecordPaymentFunc(ctx, id, amount)
	}
	return nil, nil
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	CreateWithBudgetCheckFunc func(ctx context.Context, activity *domain.Activity) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	FindByIDWithPhasesFunc    func(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	FindByProjectIDFunc       func(ctx context.Context, projectID uuid.UUID) ([]*domain.Activity, error)
	DeleteFunc                func(ctx context.Context, id uuid.UUID) error
	DeleteByProjectIDFunc     func(ctx context.Context, projectID uuid.UUID) error
}

func (m *MockActivityRepository) CreateWithBudgetCheck(ctx context.Context, activity *domain.Activity) error {
	if m.CreateWithBudgetCheckFunc != nil {
		return m.CreateWithBudgetCheckFunc(ctx, activity)
	}
	return nil
}

func (m *MockActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockActivityRepository) FindByIDWithPhases(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	if m.FindByIDWithPhasesFunc != nil {
		return m.FindByIDWithPhasesFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockActivityRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Activity, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockActivityRepository) DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error {
	if m.DeleteByProjectIDFunc != nil {
		return m.DeleteByProjectIDFunc(ctx, projectID)
	}
	return nil
}

// MockPhaseRepository is a mock implementation of PhaseRepository
type MockPhaseRepository struct {
	CreateWithCeilingCheckFunc func(ctx context.Context, phase *domain.Phase) error
	FindByIDFunc               func(ctx context.Context, id uuid.UUID) (*domain.Phase, error)
	FindByActivityIDFunc       func(ctx context.Context, activityID uuid.UUID) ([]*domain.Phase, error)
	FindByExpertIDFunc         func(ctx context.Context, expertID uuid.UUID) ([]*domain.Phase, error)
	FindByProjectIDFunc        func(ctx context.Context, projectID uuid.UUID) ([]*domain.Phase, error)
	FindByProgressFunc         func(ctx context.Context, progress domain.PhaseProgress) ([]*domain.Phase, error)
	UpdateFunc                 func(ctx context.Context, phase *domain.Phase) error
	UpdateFieldsFunc           func(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteFunc                 func(ctx context.Context, id uuid.UUID) error
	DeleteByProjectIDFunc      func(ctx context.Context, projectID uuid.UUID) error
}

func (m *MockPhaseRepository) CreateWithCeilingCheck(ctx context.Context, phase *domain.Phase) error {
	if m.CreateWithCeilingCheckFunc != nil {
		return m.CreateWithCeilingCheckFunc(ctx, phase)
	}
	return nil
}

func (m *MockPhaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Phase, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPhaseRepository) FindByActivityID(ctx context.Context, activityID uuid.UUID) ([]*domain.Phase, error) {
	if m.FindByActivityIDFunc != nil {
		return m.FindByActivityIDFunc(ctx, activityID)
	}
	return nil, nil
}

func (m *MockPhaseRepository) FindByExpertID(ctx context.Context, expertID uuid.UUID) ([]*domain.Phase, error) {
	if m.FindByExpertIDFunc != nil {
		return m.FindByExpertIDFunc(ctx, expertID)
	}
	return nil, nil
}

func (m *MockPhaseRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Phase, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockPhaseRepository) FindByProgress(ctx context.Context, progress domain.PhaseProgress) ([]*domain.Phase, error) {
	if m.FindByProgressFunc != nil {
		return m.FindByProgressFunc(ctx, progress)
	}
	return nil, nil
}

func (m *MockPhaseRepository) Update(ctx context.Context, phase *domain.Phase) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, phase)
	}
	return nil
}

func (m *MockPhaseRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockPhaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockPhaseRepository) DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error {
	if m.DeleteByProjectIDFunc != nil {
		return m.DeleteByProjectIDFunc(ctx, projectID)
	}
	return nil
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	CreateFunc      func(ctx context.Context, profile *domain.StaffProfile) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.StaffProfile, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.StaffProfile, error)
	FindAllFunc     func(ctx context.Context) ([]*domain.StaffProfile, error)
	FindByRoleFunc  func(ctx context.Context, role domain.StaffRole) ([]*domain.StaffProfile, error)
	UpdateFunc      func(ctx context.Context, profile *domain.StaffProfile) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.StaffProfile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StaffProfile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.StaffProfile, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockProfileRepository) FindAll(ctx context.Context) ([]*domain.StaffProfile, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockProfileRepository) FindByRole(ctx context.Context, role domain.StaffRole) ([]*domain.StaffProfile, error) {
	if m.FindByRoleFunc != nil {
		return m.FindByRoleFunc(ctx, role)
	}
	return nil, nil
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *domain.StaffProfile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockExpenseRepository is a mock implementation of ExpenseRepository
type MockExpenseRepository struct {
	CreateFunc            func(ctx context.Context, expense *domain.Expense) error
	FindByProjectIDFunc   func(ctx context.Context, projectID uuid.UUID) ([]*domain.Expense, error)
	FindAllFunc           func(ctx context.Context) ([]*domain.Expense, error)
	SumByProjectIDFunc    func(ctx context.Context, projectID uuid.UUID) (float64, error)
	SumAllFunc            func(ctx context.Context) (float64, error)
	DeleteByProjectIDFunc func(ctx context.Context, projectID uuid.UUID) error
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}
	return nil
}

func (m *MockExpenseRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Expense, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockExpenseRepository) FindAll(ctx context.Context) ([]*domain.Expense, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockExpenseRepository) SumByProjectID(ctx context.Context, projectID uuid.UUID) (float64, error) {
	if m.SumByProjectIDFunc != nil {
		return m.SumByProjectIDFunc(ctx, projectID)
	}
	return 0, nil
}

func (m *MockExpenseRepository) SumAll(ctx context.Context) (float64, error) {
	if m.SumAllFunc != nil {
		return m.SumAllFunc(ctx)
	}
	return 0, nil
}

func (m *MockExpenseRepository) DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error {
	if m.DeleteByProjectIDFunc != nil {
		return m.DeleteByProjectIDFunc(ctx, projectID)
	}
	return nil
}

// MockInvestmentRepository is a mock implementation of InvestmentRepository
type MockInvestmentRepository struct {
	CreateFunc          func(ctx context.Context, investment *domain.Investment) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Investment, error)
	FindAllFunc         func(ctx context.Context) ([]*domain.Investment, error)
	IncrementAmountFunc func(ctx context.Context, id uuid.UUID, delta float64) error
	SumAllFunc          func(ctx context.Context) (float64, error)
}

func (m *MockInvestmentRepository) Create(ctx context.Context, investment *domain.Investment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, investment)
	}
	return nil
}

func (m *MockInvestmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockInvestmentRepository) FindAll(ctx context.Context) ([]*domain.Investment, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockInvestmentRepository) IncrementAmount(ctx context.Context, id uuid.UUID, delta float64) error {
	if m.IncrementAmountFunc != nil {
		return m.IncrementAmountFunc(ctx, id, delta)
	}
	return nil
}

func (m *MockInvestmentRepository) SumAll(ctx context.Context) (float64, error) {
	if m.SumAllFunc != nil {
		return m.SumAllFunc(ctx)
	}
	return 0, nil
}

// MockPhotoPurgeRepository is a mock implementation of PhotoPurgeRepository
type MockPhotoPurgeRepository struct {
	EnqueueFunc     func(ctx context.Context, entries []*domain.PhotoPurge) error
	FindBatchFunc   func(ctx context.Context, limit int) ([]*domain.PhotoPurge, error)
	DeleteBatchFunc func(ctx context.Context, ids []uuid.UUID) error
}

func (m *MockPhotoPurgeRepository) Enqueue(ctx context.Context, entries []*domain.PhotoPurge) error {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, entries)
	}
	return nil
}

func (m *MockPhotoPurgeRepository) FindBatch(ctx context.Context, limit int) ([]*domain.PhotoPurge, error) {
	if m.FindBatchFunc != nil {
		return m.FindBatchFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockPhotoPurgeRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if m.DeleteBatchFunc != nil {
		return m.DeleteBatchFunc(ctx, ids)
	}
	return nil
}

// MockProofStorage is a mock implementation of ProofStorage
type MockProofStorage struct {
	GetFileURLFunc              func(key string) string
	GenerateProofKeyFunc        func(phaseID uuid.UUID, fileName string) string
	UploadFileFunc              func(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	GeneratePresignedGetURLFunc func(ctx context.Context, key string, expires time.Duration) (string, error)
}

func (m *MockProofStorage) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	return "https://storage.local/" + key
}

func (m *MockProofStorage) GenerateProofKey(phaseID uuid.UUID, fileName string) string {
	if m.GenerateProofKeyFunc != nil {
		return m.GenerateProofKeyFunc(phaseID, fileName)
	}
	return phaseID.String() + "/" + fileName
}

func (m *MockProofStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}
	return "https://storage.local/" + key, nil
}

func (m *MockProofStorage) GeneratePresignedGetURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if m.GeneratePresignedGetURLFunc != nil {
		return m.GeneratePresignedGetURLFunc(ctx, key, expires)
	}
	return "https://storage.local/signed/" + key, nil
}
