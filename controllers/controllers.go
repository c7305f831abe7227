package controllers

import (
	"github.com/medibook/medibook/services"
)

var (
	bookingService     *services.BookingService
	appointmentService *services.AppointmentService
	paymentService     *services.PaymentService
	patientService     *services.PatientService
)

// Init wires the services into the handler package. Called once from main
// after the database and gateway client are up.
func Init(booking *services.BookingService, appointments *services.AppointmentService,
	payments *services.PaymentService, patients *services.PatientService) {
	bookingService = booking
	appointmentService = appointments
	paymentService = payments
	patientService = patients
}
