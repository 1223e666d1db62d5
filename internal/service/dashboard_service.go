package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/dto"
	"atelier-backoffice-api/internal/repository"
	"atelier-backoffice-api/internal/response"
)

const dashboardCacheTTL = 60 * time.Second

// List caps on the direction dashboard
const (
	maxDebtAlerts  = 4
	maxExpertLoads = 5
)

// DashboardService defines the interface for role dashboards
type DashboardService interface {
	DirectionDashboard(ctx context.Context) (*dto.DirectionDashboardResponse, error)
	ExpertDashboard(ctx context.Context, expertID uuid.UUID) (*dto.ExpertDashboardResponse, error)
}

// dashboardServiceImpl is the implementation of DashboardService
type dashboardServiceImpl struct {
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
	phaseRepo   repository.PhaseRepository
	expenseRepo repository.ExpenseRepository
	cache       *redis.Client
	logger      *zap.Logger
}

// NewDashboardService creates a new instance of DashboardService.
// cache may be nil, in which case every call hits the database.
func NewDashboardService(
	projectRepo repository.ProjectRepository,
	clientRepo repository.ClientRepository,
	phaseRepo repository.PhaseRepository,
	expenseRepo repository.ExpenseRepository,
	cache *redis.Client,
	logger *zap.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		phaseRepo:   phaseRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
		logger:      logger,
	}
}

// DirectionDashboard aggregates the firm-wide overview. Results are
// cached for a minute; counts may lag writes by that much.
func (s *dashboardServiceImpl) DirectionDashboard(ctx context.Context) (*dto.DirectionDashboardResponse, error) {
	const cacheKey = "dashboard:direction"

	var cached dto.DirectionDashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate projects", err.Error())
	}
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count clients", err.Error())
	}
	totalExpenses, err := s.expenseRepo.SumAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate expenses", err.Error())
	}

	now := time.Now()
	board := &dto.DirectionDashboardResponse{
		ProjectCount:  int64(len(projects)),
		ClientCount:   int64(len(clients)),
		TotalExpenses: totalExpenses,
		MonthlySeries: []dto.MonthlyCashPoint{},
		TopDebtors:    []dto.DebtAlert{},
		TopExperts:    []dto.ExpertLoad{},
	}
	months := map[string]*dto.MonthlyCashPoint{}
	for _, p := range projects {
		switch DisplayStatus(p) {
		case domain.ProjectDone:
			board.CompletedProjects++
		case domain.ProjectInProgress:
			board.ActiveProjects++
		default:
			board.PendingProjects++
		}
		if p.Urgent {
			board.UrgentProjects++
		}
		if p.Status != domain.ProjectDone && now.After(p.Deadline) {
			board.LateProjects++
		}
		board.TotalContracted += p.TotalAmount
		board.TotalPaid += p.PaidAmount

		// Standard contracts count as earned in full; recommandation
		// work only counts what has actually been cashed in
		revenue := p.TotalAmount
		if p.FundingType == domain.FundingRecommandation {
			revenue = p.PaidAmount
		}
		debt := p.TotalAmount - revenue
		board.TotalRevenue += revenue
		board.TotalDebt += debt

		month := p.CreatedAt.Format("2006-01")
		point, ok := months[month]
		if !ok {
			point = &dto.MonthlyCashPoint{Month: month}
			months[month] = point
		}
		point.CashedIn += revenue
		point.Debt += debt

		if outstanding := p.TotalAmount - p.PaidAmount; outstanding > 0 {
			alert := dto.DebtAlert{
				ProjectID:   p.ID,
				ProjectName: p.Name,
				Outstanding: outstanding,
			}
			if p.Client != nil {
				alert.ClientName = p.Client.Name
			}
			board.TopDebtors = append(board.TopDebtors, alert)
		}
	}
	board.TotalOutstanding = board.TotalContracted - board.TotalPaid

	for _, point := range months {
		board.MonthlySeries = append(board.MonthlySeries, *point)
	}
	sort.Slice(board.MonthlySeries, func(i, j int) bool {
		return board.MonthlySeries[i].Month < board.MonthlySeries[j].Month
	})

	sort.Slice(board.TopDebtors, func(i, j int) bool {
		return board.TopDebtors[i].Outstanding > board.TopDebtors[j].Outstanding
	})
	if len(board.TopDebtors) > maxDebtAlerts {
		board.TopDebtors = board.TopDebtors[:maxDebtAlerts]
	}

	topExperts, err := s.pendingLoadPerExpert(ctx)
	if err != nil {
		return nil, err
	}
	board.TopExperts = topExperts

	s.writeCache(ctx, cacheKey, board)
	return board, nil
}

// pendingLoadPerExpert ranks experts by phases waiting to be started
func (s *dashboardServiceImpl) pendingLoadPerExpert(ctx context.Context) ([]dto.ExpertLoad, error) {
	pending, err := s.phaseRepo.FindByProgress(ctx, domain.PhasePending)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate pending phases", err.Error())
	}

	counts := map[uuid.UUID]*dto.ExpertLoad{}
	for _, p := range pending {
		if p.ExpertID == nil {
			continue
		}
		load, ok := counts[*p.ExpertID]
		if !ok {
			load = &dto.ExpertLoad{ExpertID: *p.ExpertID}
			if p.Expert != nil {
				load.ExpertName = p.Expert.Name
			}
			counts[*p.ExpertID] = load
		}
		load.PendingPhases++
	}

	loads := make([]dto.ExpertLoad, 0, len(counts))
	for _, load := range counts {
		loads = append(loads, *load)
	}
	sort.Slice(loads, func(i, j int) bool {
		if loads[i].PendingPhases != loads[j].PendingPhases {
			return loads[i].PendingPhases > loads[j].PendingPhases
		}
		return loads[i].ExpertName < loads[j].ExpertName
	})
	if len(loads) > maxExpertLoads {
		loads = loads[:maxExpertLoads]
	}
	return loads, nil
}

// ExpertDashboard aggregates one expert's workload and earnings,
// penalties included
func (s *dashboardServiceImpl) ExpertDashboard(ctx context.Context, expertID uuid.UUID) (*dto.ExpertDashboardResponse, error) {
	cacheKey := "dashboard:expert:" + expertID.String()

	var cached dto.ExpertDashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	phases, err := s.phaseRepo.FindByExpertID(ctx, expertID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate phases", err.Error())
	}

	now := time.Now()
	board := &dto.ExpertDashboardResponse{
		AssignedPhases: int64(len(phases)),
	}
	projectsSeen := map[uuid.UUID]struct{}{}
	for _, p := range phases {
		switch p.Progress {
		case domain.PhasePending:
			board.PendingPhases++
		case domain.PhaseInProgress:
			board.InProgressPhases++
		case domain.PhaseDone:
			board.CompletedPhases++
		}
		if p.Activity != nil {
			projectsSeen[p.Activity.ProjectID] = struct{}{}
		}

		sched := AssessSchedule(p.Deadline, p.Progress, p.ExpertFee, now)
		if sched.DaysLate > 0 {
			board.LatePhases++
		}
		board.TotalFees += p.ExpertFee
		board.TotalPenalties += sched.Penalty
	}
	board.DistinctProjects = int64(len(projectsSeen))
	board.NetFees = board.TotalFees - board.TotalPenalties

	s.writeCache(ctx, cacheKey, board)
	return board, nil
}

func (s *dashboardServiceImpl) readCache(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (s *dashboardServiceImpl) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, dashboardCacheTTL).Err(); err != nil {
		s.logger.Warn("Failed to write dashboard cache", zap.String("key", key), zap.Error(err))
	}
}
