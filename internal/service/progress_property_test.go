package service

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"atelier-backoffice-api/internal/domain"
)

// For any mix of activities and phase states, the derived project
// progress must stay inside [0, 100] and hit the bounds only on the
// all-pending and all-done extremes.
func TestProperty_ProjectProgressBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("progress stays within 0..100", prop.ForAll(
		func(phaseCounts, doneCounts []int) bool {
			activities := make([]domain.Activity, len(phaseCounts))
			for i, total := range phaseCounts {
				done := doneCounts[i]
				if done > total {
					done = total
				}
				phases := make([]domain.Phase, total)
				for j := range phases {
					if j < done {
						phases[j].Progress = domain.PhaseDone
					} else {
						phases[j].Progress = domain.PhasePending
					}
				}
				activities[i].Phases = phases
			}
			p := ProjectProgress(activities)
			return p >= 0 && p <= 100
		},
		gen.SliceOfN(6, gen.IntRange(0, 5)),
		gen.SliceOfN(6, gen.IntRange(0, 5)),
	))

	properties.Property("no finished phase means zero progress", prop.ForAll(
		func(phaseCounts []int) bool {
			activities := make([]domain.Activity, len(phaseCounts))
			for i, total := range phaseCounts {
				activities[i].Phases = make([]domain.Phase, total)
				for j := range activities[i].Phases {
					activities[i].Phases[j].Progress = domain.PhaseInProgress
				}
			}
			return ProjectProgress(activities) == 0
		},
		gen.SliceOfN(5, gen.IntRange(0, 4)),
	))

	properties.Property("every phase finished means full progress", prop.ForAll(
		func(phaseCounts []int) bool {
			activities := make([]domain.Activity, 0, len(phaseCounts))
			for _, total := range phaseCounts {
				phases := make([]domain.Phase, total)
				for j := range phases {
					phases[j].Progress = domain.PhaseDone
				}
				activities = append(activities, domain.Activity{Phases: phases})
			}
			return ProjectProgress(activities) == 100
		},
		gen.SliceOfN(5, gen.IntRange(1, 4)),
	))

	properties.TestingRun(t)
}

// The late penalty never exceeds the fee and never goes negative,
// whatever the overrun.
func TestProperty_LatePenaltyClamped(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("penalty stays within 0..fee", prop.ForAll(
		func(fee float64, daysLate int) bool {
			p := LatePenalty(fee, daysLate)
			return p >= 0 && p <= fee
		},
		gen.Float64Range(0, 10_000_000),
		gen.IntRange(0, 10_000),
	))

	properties.Property("penalty grows with lateness until the cap", prop.ForAll(
		func(fee float64, daysLate int) bool {
			return LatePenalty(fee, daysLate) <= LatePenalty(fee, daysLate+1)
		},
		gen.Float64Range(1, 10_000_000),
		gen.IntRange(0, 10_000),
	))

	properties.TestingRun(t)
}
