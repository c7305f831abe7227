package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medibook/medibook/gateway"
	"github.com/medibook/medibook/models"
	"github.com/medibook/medibook/repositories"
	"github.com/medibook/medibook/utils"
)

// PaymentService owns the payment state machine and its reconciliation with
// the appointment it settles. All gateway round-trips happen here; the gateway
// callback handlers below are the only place both state machines move
// together.
type PaymentService struct {
	repos   *repositories.Repositories
	tx      repositories.Transactor
	gateway gateway.Client
	baseURL string
}

func NewPaymentService(repos *repositories.Repositories, tx repositories.Transactor, gw gateway.Client, baseURL string) *PaymentService {
	return &PaymentService{repos: repos, tx: tx, gateway: gw, baseURL: baseURL}
}

// CreateOrder registers a remote order for the appointment's fee and persists
// the PENDING payment carrying the gateway order id and a fresh transaction
// id. The single-payment slot is checked before the gateway call so a repeat
// checkout does not create an orphaned remote order; the unique index on the
// appointment id closes the remaining race window after the call.
func (s *PaymentService) CreateOrder(ctx context.Context, appointment *models.Appointment) (*models.Payment, string, error) {
	_, err := s.repos.Payments.FindByAppointmentID(appointment.ID)
	if err == nil {
		return nil, "", fmt.Errorf("appointment %d: %w", appointment.ID, ErrDuplicateOrder)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", fmt.Errorf("lookup payment for appointment %d: %w", appointment.ID, err)
	}

	description := fmt.Sprintf("Medical Consultation - Dr. %s | Patient: %s",
		appointment.DoctorName, appointment.Patient.Name)
	returnURL := s.baseURL + "/v1/paypal/capture"
	cancelURL := fmt.Sprintf("%s/v1/paypal/cancel?appointmentId=%d", s.baseURL, appointment.ID)

	orderID, approvalURL, err := s.gateway.CreateOrder(ctx, appointment.ConsultationFee, description, returnURL, cancelURL)
	if err != nil {
		return nil, "", &GatewayError{Op: fmt.Sprintf("create order for appointment %d", appointment.ID), Err: err}
	}
	utils.LogInfo("Created gateway order %s for appointment %d", orderID, appointment.ID)

	payment := &models.Payment{
		AppointmentID:  appointment.ID,
		Amount:         appointment.ConsultationFee,
		Method:         models.PaymentMethodPaypal,
		Status:         models.PaymentStatusPending,
		GatewayOrderID: orderID,
		TransactionID:  uuid.New().String(),
	}
	if err := s.repos.Payments.Create(payment); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, "", fmt.Errorf("appointment %d: %w", appointment.ID, ErrDuplicateOrder)
		}
		return nil, "", fmt.Errorf("persist payment for appointment %d: %w", appointment.ID, err)
	}
	return payment, approvalURL, nil
}

// Capture reconciles the gateway's redirect-back callback. It is idempotent:
// the gateway retries redirects, so a payment already in a terminal state is
// returned unchanged without touching the gateway again. On a successful
// capture the payment and its appointment advance in a single transaction; a
// reader can never observe one updated without the other. On a decline the
// payment fails and the appointment stays PENDING. On a gateway call failure
// the payment is marked FAILED before the error surfaces, so state is never
// left ambiguous.
func (s *PaymentService) Capture(ctx context.Context, gatewayOrderID, payerID string) (*models.Payment, error) {
	payment, err := s.repos.Payments.FindByGatewayOrderID(gatewayOrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("gateway order %s: %w", gatewayOrderID, ErrNotFound)
		}
		return nil, err
	}
	if payment.IsTerminal() {
		utils.LogInfo("Capture replay for gateway order %s ignored, payment already %s", gatewayOrderID, payment.Status)
		return payment, nil
	}

	if payment.Status == models.PaymentStatusPending {
		payment.Status = models.PaymentStatusProcessing
		if err := s.repos.Payments.Save(payment); err != nil {
			return nil, fmt.Errorf("mark payment %d processing: %w", payment.ID, err)
		}
	}

	state, captureID, gwErr := s.gateway.ExecuteOrder(ctx, gatewayOrderID, payerID)
	if gwErr != nil {
		utils.LogError("Capture call failed for gateway order %s: %v", gatewayOrderID, gwErr)
		payment.Status = models.PaymentStatusFailed
		if err := s.repos.Payments.Save(payment); err != nil {
			return nil, fmt.Errorf("mark payment %d failed: %w", payment.ID, err)
		}
		return payment, &GatewayError{Op: "capture order " + gatewayOrderID, Err: gwErr}
	}

	if state != gateway.StateCompleted {
		utils.LogInfo("Capture declined for gateway order %s, state %s", gatewayOrderID, state)
		payment.Status = models.PaymentStatusFailed
		if err := s.repos.Payments.Save(payment); err != nil {
			return nil, fmt.Errorf("mark payment %d failed: %w", payment.ID, err)
		}
		return payment, nil
	}

	now := time.Now()
	err = s.tx.Transaction(func(r *repositories.Repositories) error {
		appointment, err := r.Appointments.FindByID(payment.AppointmentID)
		if err != nil {
			return err
		}
		payment.Status = models.PaymentStatusCompleted
		payment.CaptureID = &captureID
		payment.PaidAt = &now
		if err := r.Payments.Save(payment); err != nil {
			return err
		}
		appointment.Status = models.AppointmentStatusConfirmed
		return r.Appointments.Save(appointment)
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile capture for gateway order %s: %w", gatewayOrderID, err)
	}
	utils.LogInfo("Captured gateway order %s, payment %d completed, appointment %d confirmed",
		gatewayOrderID, payment.ID, payment.AppointmentID)
	return payment, nil
}

// MarkCancelled handles the gateway's cancel redirect: the payer abandoned
// checkout, so the payment fails without a capture call and the appointment
// stays PENDING. Terminal payments are returned unchanged, mirroring Capture.
func (s *PaymentService) MarkCancelled(gatewayOrderID string) (*models.Payment, error) {
	payment, err := s.repos.Payments.FindByGatewayOrderID(gatewayOrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("gateway order %s: %w", gatewayOrderID, ErrNotFound)
		}
		return nil, err
	}
	if payment.IsTerminal() {
		return payment, nil
	}

	payment.Status = models.PaymentStatusFailed
	if err := s.repos.Payments.Save(payment); err != nil {
		return nil, fmt.Errorf("mark payment %d failed: %w", payment.ID, err)
	}
	utils.LogInfo("Gateway order %s cancelled by payer, payment %d failed", gatewayOrderID, payment.ID)
	return payment, nil
}

// Refund reverses a COMPLETED payment through the gateway. A declined or
// failed refund call leaves the payment COMPLETED so the refund can be
// retried; the appointment keeps its status either way.
func (s *PaymentService) Refund(ctx context.Context, appointmentID uint) (*models.Payment, error) {
	payment, err := s.repos.Payments.FindByAppointmentID(appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("payment for appointment %d: %w", appointmentID, ErrNotFound)
		}
		return nil, err
	}
	if payment.Status != models.PaymentStatusCompleted {
		return nil, fmt.Errorf("refund payment %d in status %s: %w", payment.ID, payment.Status, ErrInvalidTransition)
	}
	if payment.CaptureID == nil {
		return nil, fmt.Errorf("refund payment %d without capture id: %w", payment.ID, ErrInvalidTransition)
	}

	state, gwErr := s.gateway.Refund(ctx, *payment.CaptureID)
	if gwErr != nil {
		return nil, &GatewayError{Op: "refund capture " + *payment.CaptureID, Err: gwErr}
	}
	if state != gateway.StateCompleted {
		return nil, &GatewayError{Op: "refund capture " + *payment.CaptureID, Err: fmt.Errorf("refund not completed, state %s", state)}
	}

	payment.Status = models.PaymentStatusRefunded
	if err := s.repos.Payments.Save(payment); err != nil {
		return nil, fmt.Errorf("save payment %d: %w", payment.ID, err)
	}
	utils.LogInfo("Refunded payment %d for appointment %d", payment.ID, appointmentID)
	return payment, nil
}

// GetByAppointment returns the payment occupying the appointment's slot.
func (s *PaymentService) GetByAppointment(appointmentID uint) (*models.Payment, error) {
	payment, err := s.repos.Payments.FindByAppointmentID(appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("payment for appointment %d: %w", appointmentID, ErrNotFound)
		}
		return nil, err
	}
	return payment, nil
}

// Get returns a payment with its appointment and patient loaded.
func (s *PaymentService) Get(id uint) (*models.Payment, error) {
	payment, err := s.repos.Payments.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("payment %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return payment, nil
}

// RemoteState asks the gateway for its view of an order. Useful when support
// needs to compare the local payment row against the gateway.
func (s *PaymentService) RemoteState(ctx context.Context, gatewayOrderID string) (string, error) {
	state, err := s.gateway.GetOrder(ctx, gatewayOrderID)
	if err != nil {
		return "", &GatewayError{Op: "get order " + gatewayOrderID, Err: err}
	}
	return state, nil
}

// ListCreatedBetween returns payments created in the window, for reporting.
func (s *PaymentService) ListCreatedBetween(from, to time.Time) ([]models.Payment, error) {
	return s.repos.Payments.FindCreatedBetween(from, to)
}
