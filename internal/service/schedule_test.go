package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"atelier-backoffice-api/internal/domain"
)

func TestDaysLate(t *testing.T) {
	deadline := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"before deadline", deadline.Add(-48 * time.Hour), 0},
		{"exactly at deadline", deadline, 0},
		{"one minute over counts as a day", deadline.Add(time.Minute), 1},
		{"exactly one day over", deadline.Add(24 * time.Hour), 1},
		{"a day and an hour over", deadline.Add(25 * time.Hour), 2},
		{"fifteen days over", deadline.Add(15 * 24 * time.Hour), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysLate(deadline, tt.at); got != tt.want {
				t.Errorf("DaysLate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLatePenalty(t *testing.T) {
	tests := []struct {
		name     string
		fee      float64
		daysLate int
		want     float64
	}{
		{"on time", 100000, 0, 0},
		{"one day late", 100000, 1, 10000},
		{"five days late", 100000, 5, 50000},
		{"ten days late caps exactly at the fee", 100000, 10, 100000},
		{"fifteen days late stays capped", 100000, 15, 100000},
		{"zero fee", 0, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LatePenalty(tt.fee, tt.daysLate); got != tt.want {
				t.Errorf("LatePenalty(%v, %d) = %v, want %v", tt.fee, tt.daysLate, got, tt.want)
			}
		})
	}
}

func TestAssessSchedule(t *testing.T) {
	deadline := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		progress    domain.PhaseProgress
		now         time.Time
		fee         float64
		wantLabel   string
		wantDays    int
		wantPenalty float64
	}{
		{
			"finished phase carries no penalty even past its deadline",
			domain.PhaseDone, deadline.Add(5 * 24 * time.Hour), 100000,
			LabelDone, 0, 0,
		},
		{
			"finished phase before its deadline",
			domain.PhaseDone, deadline.Add(-10 * 24 * time.Hour), 100000,
			LabelDone, 0, 0,
		},
		{
			"one day late",
			domain.PhaseInProgress, deadline.Add(12 * time.Hour), 100000,
			"En retard de 1 jour", 1, 10000,
		},
		{
			"five days late",
			domain.PhaseInProgress, deadline.Add(5 * 24 * time.Hour), 100000,
			"En retard de 5 jours", 5, 50000,
		},
		{
			"fifteen days late clamps the penalty at the fee",
			domain.PhasePending, deadline.Add(15 * 24 * time.Hour), 100000,
			"En retard de 15 jours", 15, 100000,
		},
		{
			"deadline within two days reads imminent",
			domain.PhaseInProgress, deadline.Add(-36 * time.Hour), 100000,
			LabelImminent, 0, 0,
		},
		{
			"exactly at the deadline reads imminent",
			domain.PhaseInProgress, deadline, 100000,
			LabelImminent, 0, 0,
		},
		{
			"three days out is still on schedule",
			domain.PhaseInProgress, deadline.Add(-3 * 24 * time.Hour), 100000,
			LabelOnTrack, 0, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessSchedule(deadline, tt.progress, tt.fee, tt.now)
			if got.Label != tt.wantLabel {
				t.Errorf("AssessSchedule() label = %q, want %q", got.Label, tt.wantLabel)
			}
			if got.DaysLate != tt.wantDays {
				t.Errorf("AssessSchedule() daysLate = %d, want %d", got.DaysLate, tt.wantDays)
			}
			if got.Penalty != tt.wantPenalty {
				t.Errorf("AssessSchedule() penalty = %v, want %v", got.Penalty, tt.wantPenalty)
			}
		})
	}
}

func TestPhaseResponse_CompletedPhaseKeepsFullFee(t *testing.T) {
	deadline := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	phase := domain.Phase{
		Progress:  domain.PhaseDone,
		ExpertFee: 100000,
		Deadline:  deadline,
	}
	phase.UpdatedAt = deadline.Add(5 * 24 * time.Hour)

	resp := toPhaseResponse(&phase, nil, deadline.Add(20*24*time.Hour))

	if resp.Penalty != 0 {
		t.Errorf("penalty = %v, want 0 for a finished phase", resp.Penalty)
	}
	if resp.NetFee != 100000 {
		t.Errorf("netFee = %v, want the full fee", resp.NetFee)
	}
	if resp.Late || resp.DaysLate != 0 {
		t.Errorf("late = %v daysLate = %d, want on-time", resp.Late, resp.DaysLate)
	}
	if resp.ScheduleLabel != LabelDone {
		t.Errorf("scheduleLabel = %q, want %q", resp.ScheduleLabel, LabelDone)
	}
}

func TestActivityPercent(t *testing.T) {
	tests := []struct {
		name   string
		phases []domain.Phase
		want   float64
	}{
		{"no phases", nil, 0},
		{
			"none done",
			[]domain.Phase{{Progress: domain.PhasePending}, {Progress: domain.PhaseInProgress}},
			0,
		},
		{
			"half done",
			[]domain.Phase{{Progress: domain.PhaseDone}, {Progress: domain.PhaseInProgress}},
			50,
		},
		{
			"one of three done",
			[]domain.Phase{{Progress: domain.PhaseDone}, {Progress: domain.PhasePending}, {Progress: domain.PhasePending}},
			100.0 / 3.0,
		},
		{
			"all done",
			[]domain.Phase{{Progress: domain.PhaseDone}, {Progress: domain.PhaseDone}},
			100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActivityPercent(tt.phases); got != tt.want {
				t.Errorf("ActivityPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectProgress(t *testing.T) {
	done := domain.Phase{Progress: domain.PhaseDone}
	pending := domain.Phase{Progress: domain.PhasePending}

	tests := []struct {
		name       string
		activities []domain.Activity
		want       float64
	}{
		{"no activities", nil, 0},
		{
			"single fully done activity",
			[]domain.Activity{{Phases: []domain.Phase{done, done}}},
			100,
		},
		{
			"mean of 100 and 0",
			[]domain.Activity{
				{Phases: []domain.Phase{done}},
				{Phases: []domain.Phase{pending}},
			},
			50,
		},
		{
			"empty activity drags the mean down",
			[]domain.Activity{
				{Phases: []domain.Phase{done}},
				{Phases: nil},
			},
			50,
		},
		{
			"rounded to nearest integer",
			[]domain.Activity{
				{Phases: []domain.Phase{done, pending, pending}}, // 33.33
				{Phases: []domain.Phase{done}},                   // 100
			},
			67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProjectProgress(tt.activities); got != tt.want {
				t.Errorf("ProjectProgress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisplayStatus(t *testing.T) {
	expertID := uuid.New()

	tests := []struct {
		name    string
		project domain.Project
		want    domain.ProjectStatus
	}{
		{
			"pending with no staffed phase stays pending",
			domain.Project{
				Status: domain.ProjectPending,
				Activities: []domain.Activity{
					{Phases: []domain.Phase{{Progress: domain.PhasePending}}},
				},
			},
			domain.ProjectPending,
		},
		{
			"pending with a staffed phase reads in progress",
			domain.Project{
				Status: domain.ProjectPending,
				Activities: []domain.Activity{
					{Phases: []domain.Phase{{Progress: domain.PhasePending, ExpertID: &expertID}}},
				},
			},
			domain.ProjectInProgress,
		},
		{
			"explicit status wins",
			domain.Project{
				Status: domain.ProjectDone,
				Activities: []domain.Activity{
					{Phases: []domain.Phase{{ExpertID: &expertID}}},
				},
			},
			domain.ProjectDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayStatus(&tt.project); got != tt.want {
				t.Errorf("DisplayStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name  string
		paid  float64
		total float64
		want  domain.PaymentStatus
	}{
		{"nothing paid", 0, 500000, domain.PaymentUnpaid},
		{"partial payment", 200000, 500000, domain.PaymentPartial},
		{"fully paid", 500000, 500000, domain.PaymentPaid},
		{"overpaid still reads paid", 600000, 500000, domain.PaymentPaid},
		{"zero total with no payment stays unpaid", 0, 0, domain.PaymentUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.DerivePaymentStatus(tt.paid, tt.total); got != tt.want {
				t.Errorf("DerivePaymentStatus(%v, %v) = %v, want %v", tt.paid, tt.total, got, tt.want)
			}
		})
	}
}
