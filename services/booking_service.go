package services

import (
	"context"
	"fmt"
	"time"

	"github.com/medibook/medibook/models"
	"github.com/medibook/medibook/utils"
)

// bookingDateTimeLayout is the combined form of the date and time strings the
// web layer submits.
const bookingDateTimeLayout = "2006-01-02 15:04"

// BookingRequest is the booking payload handed in by the web layer. The core
// does its own validation; the web layer only decodes JSON.
type BookingRequest struct {
	PatientName     string  `json:"patient_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Address         string  `json:"address"`
	MedicalHistory  string  `json:"medical_history"`
	DoctorName      string  `json:"doctor_name"`
	Department      string  `json:"department"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	ConsultationFee float64 `json:"consultation_fee"`
	Symptoms        string  `json:"symptoms"`
}

func (r *BookingRequest) validate() error {
	required := []struct {
		field, value string
	}{
		{"patient_name", r.PatientName},
		{"email", r.Email},
		{"phone", r.Phone},
		{"address", r.Address},
		{"doctor_name", r.DoctorName},
		{"department", r.Department},
		{"appointment_date", r.AppointmentDate},
		{"appointment_time", r.AppointmentTime},
	}
	for _, f := range required {
		if f.value == "" {
			return &ValidationError{Field: f.field, Message: "is required"}
		}
	}
	if !utils.ValidateEmail(r.Email) {
		return &ValidationError{Field: "email", Message: "is not a valid email address"}
	}
	if !utils.ValidatePhone(r.Phone) {
		return &ValidationError{Field: "phone", Message: "is not a valid phone number"}
	}
	if r.ConsultationFee <= 0 {
		return &ValidationError{Field: "consultation_fee", Message: "must be positive"}
	}
	return nil
}

// BookingService sequences the patient directory, the appointment lifecycle
// and the payment lifecycle for the externally visible workflows: booking,
// checkout and the gateway's redirect callbacks.
type BookingService struct {
	patients     *PatientService
	appointments *AppointmentService
	payments     *PaymentService
}

func NewBookingService(patients *PatientService, appointments *AppointmentService, payments *PaymentService) *BookingService {
	return &BookingService{patients: patients, appointments: appointments, payments: payments}
}

// Book validates the request, resolves the patient by email and creates a
// PENDING appointment. No payment exists yet after booking.
func (s *BookingService) Book(req BookingRequest) (*models.Appointment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	scheduledAt, err := time.ParseInLocation(bookingDateTimeLayout,
		req.AppointmentDate+" "+req.AppointmentTime, time.Local)
	if err != nil {
		return nil, &ValidationError{Field: "appointment_date", Message: "expected date YYYY-MM-DD and time HH:MM"}
	}

	patient, err := s.patients.Resolve(PatientProfile{
		Name:           req.PatientName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		return nil, err
	}

	appointment, err := s.appointments.Book(patient, req.DoctorName, req.Department,
		scheduledAt, req.ConsultationFee, req.Symptoms)
	if err != nil {
		return nil, err
	}
	appointment.Patient = *patient
	return appointment, nil
}

// Checkout creates a gateway order for a PENDING appointment and returns the
// payment together with the approval URL the payer must be redirected to.
func (s *BookingService) Checkout(ctx context.Context, appointmentID uint) (*models.Payment, string, error) {
	appointment, err := s.appointments.Get(appointmentID)
	if err != nil {
		return nil, "", err
	}
	if appointment.Status != models.AppointmentStatusPending {
		return nil, "", fmt.Errorf("checkout appointment %d in status %s: %w",
			appointmentID, appointment.Status, ErrInvalidTransition)
	}
	return s.payments.CreateOrder(ctx, appointment)
}

// HandleCaptureCallback reconciles the gateway's approve redirect. This and
// HandleCancelCallback are the only entry points that advance both state
// machines.
func (s *BookingService) HandleCaptureCallback(ctx context.Context, gatewayOrderID, payerID string) (*models.Payment, error) {
	return s.payments.Capture(ctx, gatewayOrderID, payerID)
}

// HandleCancelCallback reconciles the gateway's cancel redirect.
func (s *BookingService) HandleCancelCallback(gatewayOrderID string) (*models.Payment, error) {
	return s.payments.MarkCancelled(gatewayOrderID)
}
