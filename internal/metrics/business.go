package metrics

import "time"

// IncrementProjectCreated increments the project creation counter
func (m *Metrics) IncrementProjectCreated() {
	m.safeExecute("IncrementProjectCreated", func() {
		m.ProjectCreatedTotal.Inc()
	})
}

// IncrementPhaseCompleted increments the phase completion counter
func (m *Metrics) IncrementPhaseCompleted() {
	m.safeExecute("IncrementPhaseCompleted", func() {
		m.PhaseCompletedTotal.Inc()
	})
}

// IncrementPhaseRelaunched increments the rework counter
func (m *Metrics) IncrementPhaseRelaunched() {
	m.safeExecute("IncrementPhaseRelaunched", func() {
		m.PhaseRelaunchedTotal.Inc()
	})
}

// IncrementPaymentRecorded increments the client payment counter
func (m *Metrics) IncrementPaymentRecorded() {
	m.safeExecute("IncrementPaymentRecorded", func() {
		m.PaymentsRecordedTotal.Inc()
	})
}

// IncrementProofPhotoUploaded increments the proof photo counter
func (m *Metrics) IncrementProofPhotoUploaded() {
	m.safeExecute("IncrementProofPhotoUploaded", func() {
		m.ProofPhotosUploaded.Inc()
	})
}

// SetProjectsTotal sets the projects gauge
func (m *Metrics) SetProjectsTotal(count int64) {
	m.safeExecute("SetProjectsTotal", func() {
		m.ProjectsTotal.Set(float64(count))
	})
}

// SetPhasesInProgress sets the in-progress phases gauge
func (m *Metrics) SetPhasesInProgress(count int64) {
	m.safeExecute("SetPhasesInProgress", func() {
		m.PhasesInProgressTotal.Set(float64(count))
	})
}

// RecordStorageOperation records an object storage call
func (m *Metrics) RecordStorageOperation(operation string, duration time.Duration, err error) {
	m.safeExecute("RecordStorageOperation", func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		m.StorageOperationsTotal.WithLabelValues(operation, status).Inc()
		m.StorageOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	})
}
