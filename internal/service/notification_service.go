package service

import (
	"fmt"

	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/domain/repository"
	"go-clinic-queue/internal/schedule"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationService emits in-app notifications. Side-channel pings
// (ready-for-consultation, new-appointment) are best-effort and swallow
// repository errors after logging them; NotifyDoctorDelay and
// NotifyQueueUpdate return the error so callers can keep an accurate
// notified count or fail the request.
type NotificationService interface {
	Notify(tx *gorm.DB, notification *entity.Notification) error
	NotifyReadyForConsultation(tx *gorm.DB, appointment *entity.Appointment)
	NotifyDoctorDelay(tx *gorm.DB, appointment *entity.Appointment, doctorName string, delayMinutes int, doctorMessage string) error
	NotifyQueueUpdate(tx *gorm.DB, appointment *entity.Appointment, message string) error
	NotifyNewAppointment(tx *gorm.DB, doctorID uuid.UUID, appointment *entity.Appointment, patientName string)
}

type notificationService struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) Notify(tx *gorm.DB, notification *entity.Notification) error {
	if err := s.notificationRepo.Create(tx, notification); err != nil {
		s.log.Warnf("Failed to create notification: %+v", err)
		return err
	}
	return nil
}

func (s *notificationService) NotifyReadyForConsultation(tx *gorm.DB, appointment *entity.Appointment) {
	notification := &entity.Notification{
		RecipientID:   appointment.PatientID,
		RecipientType: entity.RecipientPatient,
		Type:          entity.NotificationReadyForConsultation,
		Title:         "It's your turn",
		Message:       "The doctor is ready to see you now. Please proceed to the consultation room.",
		Data: entity.JSON{
			"appointment_id": appointment.ID.String(),
			"doctor_id":      appointment.DoctorID.String(),
			"time":           appointment.Time,
		},
	}

	if err := s.notificationRepo.Create(tx, notification); err != nil {
		s.log.Warnf("Failed to notify patient %s for consultation: %+v", appointment.PatientID, err)
	}
}

// NotifyDoctorDelay tells one patient their appointment slipped by
// delayMinutes, carrying the shifted time and the doctor's own note.
func (s *notificationService) NotifyDoctorDelay(tx *gorm.DB, appointment *entity.Appointment, doctorName string, delayMinutes int, doctorMessage string) error {
	originalTime := schedule.TruncateToMinute(appointment.Time)
	newTime, err := schedule.AddMinutes(originalTime, delayMinutes)
	if err != nil {
		s.log.Warnf("Failed to shift time for appointment %s: %+v", appointment.ID, err)
		return err
	}

	notification := &entity.Notification{
		RecipientID:   appointment.PatientID,
		RecipientType: entity.RecipientPatient,
		Type:          entity.NotificationAppointmentDelay,
		Title:         "Your appointment is delayed",
		Message:       fmt.Sprintf("%s is running about %d minutes behind schedule. We apologize for the inconvenience.", doctorName, delayMinutes),
		Data: entity.JSON{
			"appointment_id": appointment.ID.String(),
			"original_time":  originalTime,
			"new_time":       newTime,
			"delay_minutes":  delayMinutes,
			"doctor_message": doctorMessage,
		},
	}

	if err := s.notificationRepo.Create(tx, notification); err != nil {
		s.log.Warnf("Failed to notify patient %s about delay: %+v", appointment.PatientID, err)
		return err
	}
	return nil
}

// NotifyQueueUpdate nudges the next patient in line. An empty message falls
// back to the standard be-ready text.
func (s *notificationService) NotifyQueueUpdate(tx *gorm.DB, appointment *entity.Appointment, message string) error {
	if message == "" {
		message = "You are next in line. Please be ready."
	}

	notification := &entity.Notification{
		RecipientID:   appointment.PatientID,
		RecipientType: entity.RecipientPatient,
		Type:          entity.NotificationQueueUpdate,
		Title:         "You're up next",
		Message:       message,
		Data: entity.JSON{
			"appointment_id": appointment.ID.String(),
			"doctor_id":      appointment.DoctorID.String(),
			"time":           schedule.TruncateToMinute(appointment.Time),
		},
	}

	if err := s.notificationRepo.Create(tx, notification); err != nil {
		s.log.Warnf("Failed to notify patient %s about queue position: %+v", appointment.PatientID, err)
		return err
	}
	return nil
}

func (s *notificationService) NotifyNewAppointment(tx *gorm.DB, doctorID uuid.UUID, appointment *entity.Appointment, patientName string) {
	notification := &entity.Notification{
		RecipientID:   doctorID,
		RecipientType: entity.RecipientDoctor,
		Type:          entity.NotificationNewAppointment,
		Title:         "New appointment booked",
		Message:       fmt.Sprintf("%s booked an appointment on %s at %s.", patientName, appointment.Date.Format("2006-01-02"), appointment.Time),
		Data: entity.JSON{
			"appointment_id": appointment.ID.String(),
			"patient_id":     appointment.PatientID.String(),
			"date":           appointment.Date.Format("2006-01-02"),
			"time":           appointment.Time,
		},
	}

	if err := s.notificationRepo.Create(tx, notification); err != nil {
		s.log.Warnf("Failed to notify doctor %s about new appointment: %+v", doctorID, err)
	}
}
