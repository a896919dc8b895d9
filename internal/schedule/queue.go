package schedule

import (
	"errors"
	"sort"

	"go-clinic-queue/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotInQueue is returned when the target appointment is not part of the
// supplied queue view (already terminal, wrong day, wrong doctor).
var ErrNotInQueue = errors.New("appointment not in queue")

// QueuePositionResult describes where one appointment sits in a doctor's day.
type QueuePositionResult struct {
	Position             int  `json:"position"` // 1-based
	PatientsAhead        int  `json:"patients_ahead"`
	EstimatedWaitMinutes int  `json:"estimated_wait_minutes"`
	IsCurrentPatient     bool `json:"is_current_patient"`
	TotalPatients        int  `json:"total_patients"`
}

// SortQueue orders a day's active appointments by slot time ascending, the
// canonical queue ordering. Ties (which the booking flow prevents) fall back
// to creation time so the ordering stays deterministic.
func SortQueue(appointments []entity.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		ti := TruncateToMinute(appointments[i].Time)
		tj := TruncateToMinute(appointments[j].Time)
		if ti != tj {
			return ti < tj
		}
		return appointments[i].CreatedAt.Before(appointments[j].CreatedAt)
	})
}

// QueuePosition computes the 1-based position and wait estimate of one
// appointment inside an already-filtered queue view. The view must hold only
// active-status appointments for a single doctor and date; callers that find
// no active appointment at all must not invoke this.
func QueuePosition(queue []entity.Appointment, appointmentID uuid.UUID, avgConsultationMinutes int) (*QueuePositionResult, error) {
	SortQueue(queue)

	for i, appt := range queue {
		if appt.ID != appointmentID {
			continue
		}
		ahead := i
		return &QueuePositionResult{
			Position:             i + 1,
			PatientsAhead:        ahead,
			EstimatedWaitMinutes: ahead * avgConsultationMinutes,
			IsCurrentPatient:     appt.IsInProgress(),
			TotalPatients:        len(queue),
		}, nil
	}

	return nil, ErrNotInQueue
}

// NextWaiting returns the head of the queue among still-waiting appointments
// (scheduled or confirmed), or nil when nobody is left to promote.
func NextWaiting(queue []entity.Appointment) *entity.Appointment {
	SortQueue(queue)
	for i := range queue {
		if queue[i].IsWaiting() {
			return &queue[i]
		}
	}
	return nil
}
