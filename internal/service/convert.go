package service

import (
	"time"

	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/dto"
)

// PhotoURLResolver turns stored photo keys into viewable URLs
type PhotoURLResolver interface {
	GetFileURL(key string) string
}

func toPhaseResponse(phase *domain.Phase, resolver PhotoURLResolver, now time.Time) dto.PhaseResponse {
	sched := AssessSchedule(phase.Deadline, phase.Progress, phase.ExpertFee, now)

	photoURLs := []string{}
	for _, key := range phase.PhotoKeyList() {
		if resolver != nil {
			photoURLs = append(photoURLs, resolver.GetFileURL(key))
		} else {
			photoURLs = append(photoURLs, key)
		}
	}

	resp := dto.PhaseResponse{
		ID:            phase.ID,
		ActivityID:    phase.ActivityID,
		Name:          phase.Name,
		Description:   phase.Description,
		ExpertID:      phase.ExpertID,
		ClientAmount:  phase.ClientAmount,
		ExpertFee:     phase.ExpertFee,
		Progress:      string(phase.Progress),
		PaymentStatus: string(phase.PaymentStatus),
		Deadline:      phase.Deadline,
		Late:          sched.DaysLate > 0,
		DaysLate:      sched.DaysLate,
		ScheduleLabel: sched.Label,
		Penalty:       sched.Penalty,
		NetFee:        phase.ExpertFee - sched.Penalty,
		ReworkCount:   phase.ReworkCount,
		PhotoURLs:     photoURLs,
		ProofURL:      phase.ProofURL,
		CreatedAt:     phase.CreatedAt,
		UpdatedAt:     phase.UpdatedAt,
	}
	if phase.Expert != nil {
		resp.ExpertName = phase.Expert.Name
	}
	return resp
}

func toActivityResponse(activity *domain.Activity, resolver PhotoURLResolver, now time.Time) dto.ActivityResponse {
	resp := dto.ActivityResponse{
		ID:            activity.ID,
		ProjectID:     activity.ProjectID,
		Name:          activity.Name,
		Budget:        activity.Budget,
		PaymentStatus: string(activity.PaymentStatus),
		Deadline:      activity.Deadline,
		Progress:      ActivityPercent(activity.Phases),
		CreatedAt:     activity.CreatedAt,
	}
	for i := range activity.Phases {
		resp.Phases = append(resp.Phases, toPhaseResponse(&activity.Phases[i], resolver, now))
	}
	return resp
}

func toProjectResponse(project *domain.Project, resolver PhotoURLResolver, now time.Time, withTree bool) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:               project.ID,
		ClientID:         project.ClientID,
		Name:             project.Name,
		FundingType:      string(project.FundingType),
		TotalAmount:      project.TotalAmount,
		PaidAmount:       project.PaidAmount,
		RemainingAmount:  project.TotalAmount - project.PaidAmount,
		PaymentStatus:    string(project.PaymentStatus),
		Status:           string(project.Status),
		DisplayStatus:    string(DisplayStatus(project)),
		Urgent:           project.Urgent,
		InternalPriority: project.InternalPriority,
		Deadline:         project.Deadline,
		Late:             project.Status != domain.ProjectDone && now.After(project.Deadline),
		Location:         project.Location,
		Progress:         ProjectProgress(project.Activities),
		CreatedAt:        project.CreatedAt,
		UpdatedAt:        project.UpdatedAt,
	}
	if project.Client != nil {
		resp.ClientName = project.Client.Name
	}
	if withTree {
		for i := range project.Activities {
			resp.Activities = append(resp.Activities, toActivityResponse(&project.Activities[i], resolver, now))
		}
	}
	return resp
}
