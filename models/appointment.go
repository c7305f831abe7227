package models

import (
	"time"
)

// Appointment status constants
const (
	AppointmentStatusPending   = "PENDING"
	AppointmentStatusConfirmed = "CONFIRMED"
	AppointmentStatusCompleted = "COMPLETED"
	AppointmentStatusCancelled = "CANCELLED"
)

// appointmentTransitions lists the permitted status changes. CONFIRMED is
// reachable only through payment capture; cancellation is only defined from
// PENDING.
var appointmentTransitions = map[string][]string{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted},
}

type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PatientID       uint      `gorm:"not null;index" json:"patient_id"`
	Patient         Patient   `json:"patient" gorm:"foreignKey:PatientID"`
	DoctorName      string    `gorm:"not null" json:"doctor_name"`
	Department      string    `gorm:"not null" json:"department"`
	ScheduledAt     time.Time `gorm:"not null" json:"scheduled_at"`
	ConsultationFee float64   `gorm:"not null" json:"consultation_fee"`
	Symptoms        string    `json:"symptoms,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `gorm:"not null;default:'PENDING'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CanTransitionTo reports whether the appointment may move to the given status
// from its current one. COMPLETED and CANCELLED are terminal.
func (a *Appointment) CanTransitionTo(status string) bool {
	for _, next := range appointmentTransitions[a.Status] {
		if next == status {
			return true
		}
	}
	return false
}
