package controllers

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/medibook/medibook/models"
	"github.com/medibook/medibook/utils"
)

// GET /v1/payments/:id/receipt
//
// Generates a PDF receipt for a settled payment. Only COMPLETED and REFUNDED
// payments have anything to receipt.
func DownloadReceipt(c *gin.Context) {
	utils.LogInfo("DownloadReceipt called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid payment ID", nil)
		return
	}

	payment, err := paymentService.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	if payment.Status != models.PaymentStatusCompleted && payment.Status != models.PaymentStatusRefunded {
		utils.BadRequest(c, "Receipt is only available for settled payments", gin.H{
			"payment_status": payment.Status,
		})
		return
	}
	appointment := payment.Appointment

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Clinic header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "MediBook Clinic")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "42 Harbor Road, Springfield")
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: billing@medibook.clinic | Phone: +1-555-0142")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(95, 8, "Transaction ID: "+payment.TransactionID)
	pdf.Ln(6)
	pdf.Cell(95, 8, "Gateway Order: "+payment.GatewayOrderID)
	if payment.CaptureID != nil {
		pdf.Ln(6)
		pdf.Cell(95, 8, "Capture ID: "+*payment.CaptureID)
	}
	pdf.Ln(6)
	pdf.Cell(50, 8, "Method: "+payment.Method)
	pdf.Cell(60, 8, "Status: "+payment.Status)
	if payment.PaidAt != nil {
		pdf.Ln(6)
		pdf.Cell(95, 8, "Paid At: "+payment.PaidAt.Format("2006-01-02 15:04:05"))
	}
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Patient:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, appointment.Patient.Name)
	pdf.Ln(6)
	pdf.Cell(100, 8, appointment.Patient.Email)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Appointment:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, "Dr. "+appointment.DoctorName+" - "+appointment.Department)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Scheduled: "+appointment.ScheduledAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(60, 10, "Amount Paid:")
	pdf.Cell(40, 10, fmt.Sprintf("$%.2f", payment.Amount))
	pdf.Ln(10)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate receipt PDF for payment %d: %v", payment.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt", err.Error())
		return
	}
	utils.LogInfo("Generated receipt for payment %d", payment.ID)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", payment.TransactionID))
	c.Data(200, "application/pdf", buf.Bytes())
}
