package service

import (
	"fmt"
	"math"
	"time"

	"atelier-backoffice-api/internal/domain"
)

// dailyPenaltyRate is the share of the expert fee withheld per late day
const dailyPenaltyRate = 0.10

// imminentWindow is how close a deadline may get before a phase still on
// schedule is flagged as imminent
const imminentWindow = 2 * 24 * time.Hour

// Schedule labels shown on phase reads and dashboards
const (
	LabelDone     = "Terminée"
	LabelImminent = "Échéance imminente"
	LabelOnTrack  = "Dans les délais"
	lateLabelOne  = "En retard de 1 jour"
	lateLabelMany = "En retard de %d jours"
)

// ScheduleAssessment is the derived lateness verdict of a phase. It is
// recomputed on every read and never persisted.
type ScheduleAssessment struct {
	Label    string
	DaysLate int
	Penalty  float64
}

// AssessSchedule evaluates a phase's deadline standing. A finished phase
// carries no lateness whatever its completion date; an overdue unfinished
// phase loses ten percent of the fee per started day, capped at the fee;
// a deadline within two days is flagged imminent.
func AssessSchedule(deadline time.Time, progress domain.PhaseProgress, fee float64, now time.Time) ScheduleAssessment {
	if progress == domain.PhaseDone {
		return ScheduleAssessment{Label: LabelDone}
	}
	if daysLate := DaysLate(deadline, now); daysLate > 0 {
		label := lateLabelOne
		if daysLate > 1 {
			label = fmt.Sprintf(lateLabelMany, daysLate)
		}
		return ScheduleAssessment{Label: label, DaysLate: daysLate, Penalty: LatePenalty(fee, daysLate)}
	}
	if deadline.Sub(now) <= imminentWindow {
		return ScheduleAssessment{Label: LabelImminent}
	}
	return ScheduleAssessment{Label: LabelOnTrack}
}

// DaysLate returns the number of started days between deadline and at.
// An on-time or early instant yields zero; any overrun, however small,
// counts as a full day.
func DaysLate(deadline, at time.Time) int {
	if !at.After(deadline) {
		return 0
	}
	return int(math.Ceil(at.Sub(deadline).Hours() / 24))
}

// LatePenalty computes the fee deduction for a late phase: ten percent of
// the fee per late day, never exceeding the fee itself
func LatePenalty(fee float64, daysLate int) float64 {
	if daysLate <= 0 || fee <= 0 {
		return 0
	}
	penalty := float64(daysLate) * dailyPenaltyRate * fee
	if penalty > fee {
		return fee
	}
	return penalty
}

// ActivityPercent is the share of an activity's phases that are done,
// as a percentage. An activity without phases counts as zero.
func ActivityPercent(phases []domain.Phase) float64 {
	if len(phases) == 0 {
		return 0
	}
	done := 0
	for _, p := range phases {
		if p.Progress == domain.PhaseDone {
			done++
		}
	}
	return 100 * float64(done) / float64(len(phases))
}

// ProjectProgress is the rounded mean of the activity percentages.
// A project without activities sits at zero.
func ProjectProgress(activities []domain.Activity) float64 {
	if len(activities) == 0 {
		return 0
	}
	var sum float64
	for _, a := range activities {
		sum += ActivityPercent(a.Phases)
	}
	return math.Round(sum / float64(len(activities)))
}

// DisplayStatus derives the status shown in lists: a pending project with
// any phase already staffed reads as in progress
func DisplayStatus(project *domain.Project) domain.ProjectStatus {
	if project.Status != domain.ProjectPending {
		return project.Status
	}
	for _, a := range project.Activities {
		for _, p := range a.Phases {
			if p.ExpertID != nil {
				return domain.ProjectInProgress
			}
		}
	}
	return project.Status
}
