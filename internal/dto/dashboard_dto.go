package dto

import "github.com/google/uuid"

// MonthlyCashPoint is one month of the direction dashboard's cash-in /
// debt series, keyed by the projects' creation month
type MonthlyCashPoint struct {
	Month    string  `json:"month"`
	CashedIn float64 `json:"cashedIn"`
	Debt     float64 `json:"debt"`
}

// DebtAlert flags a project carrying an unpaid balance
type DebtAlert struct {
	ProjectID   uuid.UUID `json:"projectId"`
	ProjectName string    `json:"projectName"`
	ClientName  string    `json:"clientName,omitempty"`
	Outstanding float64   `json:"outstanding"`
}

// ExpertLoad counts one expert's phases still waiting to be started
type ExpertLoad struct {
	ExpertID      uuid.UUID `json:"expertId"`
	ExpertName    string    `json:"expertName"`
	PendingPhases int64     `json:"pendingPhases"`
}

// DirectionDashboardResponse is the firm-wide overview shown to direction.
// Revenue counts the full contracted amount of standard projects but only
// the cash actually received on recommandation ones.
type DirectionDashboardResponse struct {
	ProjectCount      int64              `json:"projectCount"`
	ActiveProjects    int64              `json:"activeProjects"`
	PendingProjects   int64              `json:"pendingProjects"`
	CompletedProjects int64              `json:"completedProjects"`
	UrgentProjects    int64              `json:"urgentProjects"`
	LateProjects      int64              `json:"lateProjects"`
	ClientCount       int64              `json:"clientCount"`
	TotalContracted   float64            `json:"totalContracted"`
	TotalPaid         float64            `json:"totalPaid"`
	TotalOutstanding  float64            `json:"totalOutstanding"`
	TotalRevenue      float64            `json:"totalRevenue"`
	TotalDebt         float64            `json:"totalDebt"`
	TotalExpenses     float64            `json:"totalExpenses"`
	MonthlySeries     []MonthlyCashPoint `json:"monthlySeries"`
	TopDebtors        []DebtAlert        `json:"topDebtors"`
	TopExperts        []ExpertLoad       `json:"topExperts"`
}

// ExpertDashboardResponse is one expert's workload and earnings overview
type ExpertDashboardResponse struct {
	AssignedPhases   int64   `json:"assignedPhases"`
	PendingPhases    int64   `json:"pendingPhases"`
	InProgressPhases int64   `json:"inProgressPhases"`
	CompletedPhases  int64   `json:"completedPhases"`
	LatePhases       int64   `json:"latePhases"`
	DistinctProjects int64   `json:"distinctProjects"`
	TotalFees        float64 `json:"totalFees"`
	TotalPenalties   float64 `json:"totalPenalties"`
	NetFees          float64 `json:"netFees"`
}
