package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medibook/medibook/services"
	"github.com/medibook/medibook/utils"
)

// POST /v1/appointments/book
func BookAppointment(c *gin.Context) {
	utils.LogInfo("BookAppointment called")

	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid booking request body: %v", err)
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	appointment, err := bookingService.Book(req)
	if err != nil {
		utils.LogError("Booking failed for %s: %v", req.Email, err)
		respondError(c, err)
		return
	}
	utils.LogInfo("Booked appointment %d for patient %d", appointment.ID, appointment.PatientID)

	utils.Created(c, "Appointment booked successfully", gin.H{
		"appointment_id": appointment.ID,
		"patient_id":     appointment.PatientID,
		"doctor_name":    appointment.DoctorName,
		"department":     appointment.Department,
		"scheduled_at":   appointment.ScheduledAt,
		"status":         appointment.Status,
		"amount":         fmt.Sprintf("%.2f", appointment.ConsultationFee),
	})
}

// GET /v1/appointments/:id
func GetAppointment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment ID", nil)
		return
	}

	appointment, err := appointmentService.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Appointment retrieved successfully", gin.H{"appointment": appointment})
}

// GET /v1/appointments
func ListAppointments(c *gin.Context) {
	appointments, err := appointmentService.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Appointments retrieved successfully", gin.H{
		"appointments": appointments,
		"total":        len(appointments),
	})
}

// GET /v1/patients/:id/appointments
func ListPatientAppointments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid patient ID", nil)
		return
	}

	appointments, err := appointmentService.ListByPatient(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Appointments retrieved successfully", gin.H{
		"appointments": appointments,
		"total":        len(appointments),
	})
}

// POST /v1/appointments/:id/cancel
func CancelAppointment(c *gin.Context) {
	utils.LogInfo("CancelAppointment called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment ID", nil)
		return
	}

	appointment, err := appointmentService.Cancel(uint(id))
	if err != nil {
		utils.LogError("Failed to cancel appointment %d: %v", id, err)
		respondError(c, err)
		return
	}
	utils.LogInfo("Cancelled appointment %d", appointment.ID)

	utils.Success(c, "Appointment cancelled successfully", gin.H{
		"appointment_id": appointment.ID,
		"status":         appointment.Status,
	})
}

// POST /v1/operator/appointments/:id/complete
func CompleteAppointment(c *gin.Context) {
	utils.LogInfo("CompleteAppointment called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment ID", nil)
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	appointment, err := appointmentService.Complete(uint(id), req.Notes)
	if err != nil {
		utils.LogError("Failed to complete appointment %d: %v", id, err)
		respondError(c, err)
		return
	}
	utils.LogInfo("Completed appointment %d", appointment.ID)

	utils.Success(c, "Appointment completed successfully", gin.H{
		"appointment_id": appointment.ID,
		"status":         appointment.Status,
		"notes":          appointment.Notes,
	})
}
