package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/medibook/medibook/models"
	"github.com/medibook/medibook/repositories"
	"github.com/medibook/medibook/utils"
)

// AppointmentService owns the appointment state machine. Status changes go
// through the transition table on the model; CONFIRMED is never set here, only
// by payment capture.
type AppointmentService struct {
	appointments repositories.AppointmentRepository
}

func NewAppointmentService(appointments repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{appointments: appointments}
}

// Book creates a PENDING appointment for the patient with a snapshot of the
// consultation fee. The scheduled time must be strictly in the future.
func (s *AppointmentService) Book(patient *models.Patient, doctor, department string, scheduledAt time.Time, fee float64, symptoms string) (*models.Appointment, error) {
	if !scheduledAt.After(time.Now()) {
		return nil, &ValidationError{Field: "appointment_date", Message: "appointment time must be in the future"}
	}
	if fee <= 0 {
		return nil, &ValidationError{Field: "consultation_fee", Message: "consultation fee must be positive"}
	}

	appointment := &models.Appointment{
		PatientID:       patient.ID,
		DoctorName:      utils.SanitizeString(doctor),
		Department:      utils.SanitizeString(department),
		ScheduledAt:     scheduledAt,
		ConsultationFee: fee,
		Symptoms:        utils.SanitizeString(symptoms),
		Status:          models.AppointmentStatusPending,
	}
	if err := s.appointments.Create(appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return appointment, nil
}

// Get returns the appointment with its patient loaded.
func (s *AppointmentService) Get(id uint) (*models.Appointment, error) {
	appointment, err := s.appointments.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("appointment %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return appointment, nil
}

// ListAll returns every appointment, newest schedule first.
func (s *AppointmentService) ListAll() ([]models.Appointment, error) {
	return s.appointments.FindAll()
}

// ListByPatient returns the patient's appointments.
func (s *AppointmentService) ListByPatient(patientID uint) ([]models.Appointment, error) {
	return s.appointments.FindByPatientID(patientID)
}

// Cancel moves a PENDING appointment to CANCELLED. Confirmed or completed
// appointments cannot be cancelled through this path.
func (s *AppointmentService) Cancel(id uint) (*models.Appointment, error) {
	appointment, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !appointment.CanTransitionTo(models.AppointmentStatusCancelled) {
		return nil, fmt.Errorf("cancel appointment %d from %s: %w", id, appointment.Status, ErrInvalidTransition)
	}
	appointment.Status = models.AppointmentStatusCancelled
	if err := s.appointments.Save(appointment); err != nil {
		return nil, fmt.Errorf("save appointment %d: %w", id, err)
	}
	return appointment, nil
}

// Complete closes out a CONFIRMED appointment with the doctor's notes.
func (s *AppointmentService) Complete(id uint, notes string) (*models.Appointment, error) {
	appointment, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !appointment.CanTransitionTo(models.AppointmentStatusCompleted) {
		return nil, fmt.Errorf("complete appointment %d from %s: %w", id, appointment.Status, ErrInvalidTransition)
	}
	appointment.Status = models.AppointmentStatusCompleted
	appointment.Notes = utils.SanitizeString(notes)
	if err := s.appointments.Save(appointment); err != nil {
		return nil, fmt.Errorf("save appointment %d: %w", id, err)
	}
	return appointment, nil
}
