package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medibook/medibook/models"
	"github.com/medibook/medibook/utils"
	"github.com/tealeg/xlsx"
)

// GET /v1/operator/reports/payments/excel
//
// Operator report: payments for the requested period as an Excel workbook.
func DownloadPaymentsReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadPaymentsReportExcel called")

	period := c.DefaultQuery("period", "day")

	now := time.Now()
	var startDate, endDate time.Time
	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	payments, err := paymentService.ListCreatedBetween(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch payments: %v", err)
		respondError(c, err)
		return
	}
	utils.LogDebug("Retrieved %d payments for Excel report", len(payments))

	var summary struct {
		TotalPayments  int
		TotalCollected float64
		TotalRefunded  float64
		Completed      int
		Failed         int
		Refunded       int
	}
	for _, payment := range payments {
		summary.TotalPayments++
		switch payment.Status {
		case models.PaymentStatusCompleted:
			summary.Completed++
			summary.TotalCollected += payment.Amount
		case models.PaymentStatusFailed:
			summary.Failed++
		case models.PaymentStatusRefunded:
			summary.Refunded++
			summary.TotalRefunded += payment.Amount
		}
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payments")
	if err != nil {
		utils.InternalServerError(c, "Failed to create report sheet", err.Error())
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"Transaction ID", "Appointment", "Patient", "Doctor", "Department", "Amount", "Method", "Status", "Paid At", "Created At"} {
		header.AddCell().SetString(title)
	}

	for _, payment := range payments {
		row := sheet.AddRow()
		row.AddCell().SetString(payment.TransactionID)
		row.AddCell().SetInt(int(payment.AppointmentID))
		row.AddCell().SetString(payment.Appointment.Patient.Name)
		row.AddCell().SetString(payment.Appointment.DoctorName)
		row.AddCell().SetString(payment.Appointment.Department)
		row.AddCell().SetFloat(payment.Amount)
		row.AddCell().SetString(payment.Method)
		row.AddCell().SetString(payment.Status)
		if payment.PaidAt != nil {
			row.AddCell().SetString(payment.PaidAt.Format("2006-01-02 15:04:05"))
		} else {
			row.AddCell().SetString("-")
		}
		row.AddCell().SetString(payment.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	sheet.AddRow()
	summaryHeader := sheet.AddRow()
	summaryHeader.AddCell().SetString("Summary")
	for label, value := range map[string]string{
		"Total Payments":  fmt.Sprintf("%d", summary.TotalPayments),
		"Completed":       fmt.Sprintf("%d", summary.Completed),
		"Failed":          fmt.Sprintf("%d", summary.Failed),
		"Refunded":        fmt.Sprintf("%d", summary.Refunded),
		"Total Collected": fmt.Sprintf("%.2f", summary.TotalCollected),
		"Total Refunded":  fmt.Sprintf("%.2f", summary.TotalRefunded),
	} {
		row := sheet.AddRow()
		row.AddCell().SetString(label)
		row.AddCell().SetString(value)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write Excel report: %v", err)
		utils.InternalServerError(c, "Failed to generate report", err.Error())
		return
	}
	utils.LogInfo("Generated payments report for period %s with %d rows", period, len(payments))

	filename := fmt.Sprintf("payments-report-%s-%s.xlsx", period, now.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
