package services

import (
	"context"
	"sync"
	"testing"

	"github.com/medibook/medibook/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookCreatesPatientAndPendingAppointment(t *testing.T) {
	env := newTestEnv()

	appointment, err := env.booking.Book(futureBooking("a@x.com"))
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentStatusPending, appointment.Status)
	assert.Equal(t, 50.00, appointment.ConsultationFee)
	assert.Equal(t, "a@x.com", appointment.Patient.Email)
	// Booking creates no payment.
	assert.Empty(t, env.store.payments)
}

func TestBookRejectsMalformedDate(t *testing.T) {
	env := newTestEnv()

	req := futureBooking("a@x.com")
	req.AppointmentDate = "28-08-2026"

	_, err := env.booking.Book(req)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "appointment_date", validationErr.Field)
}

func TestBookRejectsMissingFields(t *testing.T) {
	env := newTestEnv()

	req := futureBooking("a@x.com")
	req.DoctorName = ""

	_, err := env.booking.Book(req)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "doctor_name", validationErr.Field)
}

func TestBookRejectsBadEmail(t *testing.T) {
	env := newTestEnv()

	req := futureBooking("not-an-email")

	_, err := env.booking.Book(req)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "email", validationErr.Field)
}

func TestCheckoutRequiresPendingAppointment(t *testing.T) {
	env := newTestEnv()

	appointment, err := env.booking.Book(futureBooking("a@x.com"))
	require.NoError(t, err)
	_, err = env.appointments.Cancel(appointment.ID)
	require.NoError(t, err)

	_, _, err = env.booking.Checkout(context.Background(), appointment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckoutUnknownAppointment(t *testing.T) {
	env := newTestEnv()

	_, _, err := env.booking.Checkout(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

// Full walk through the lifecycle: book, checkout, capture, refund.
func TestBookingCheckoutCaptureRefundFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	appointment, err := env.booking.Book(futureBooking("a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusPending, appointment.Status)

	payment, approvalURL, err := env.booking.Checkout(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.NotEmpty(t, payment.GatewayOrderID)
	assert.Contains(t, approvalURL, payment.GatewayOrderID)

	captured, err := env.booking.HandleCaptureCallback(ctx, payment.GatewayOrderID, "PAYER1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, captured.Status)
	require.NotNil(t, captured.PaidAt)
	require.NotNil(t, captured.CaptureID)
	assert.Equal(t, "CAP1", *captured.CaptureID)

	confirmed, err := env.appointments.Get(appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, confirmed.Status)

	refunded, err := env.payments.Refund(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, refunded.Status)

	// Refund leaves the appointment confirmed.
	after, err := env.appointments.Get(appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, after.Status)
}

func TestCancelCallbackLeavesAppointmentPending(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	appointment, err := env.booking.Book(futureBooking("a@x.com"))
	require.NoError(t, err)
	payment, _, err := env.booking.Checkout(ctx, appointment.ID)
	require.NoError(t, err)

	failed, err := env.booking.HandleCancelCallback(payment.GatewayOrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, failed.Status)
	assert.Equal(t, 0, env.gw.captureCalls)

	pending, err := env.appointments.Get(appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusPending, pending.Status)
}

func TestConcurrentBookingsSameEmailShareOnePatient(t *testing.T) {
	env := newTestEnv()

	reqA := futureBooking("shared@x.com")
	reqB := futureBooking("shared@x.com")
	reqB.PatientName = "Another Name"

	var wg sync.WaitGroup
	results := make([]*models.Appointment, 2)
	for i, req := range []BookingRequest{reqA, reqB} {
		wg.Add(1)
		go func(i int, req BookingRequest) {
			defer wg.Done()
			appointment, err := env.booking.Book(req)
			if assert.NoError(t, err) {
				results[i] = appointment
			}
		}(i, req)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	require.NotNil(t, results[1])
	assert.Len(t, env.store.patients, 1)
	assert.Equal(t, results[0].PatientID, results[1].PatientID)
}
