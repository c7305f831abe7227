package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medibook/medibook/models"
	"github.com/medibook/medibook/utils"
)

// POST /v1/paypal/create-order
func CreatePayPalOrder(c *gin.Context) {
	utils.LogInfo("CreatePayPalOrder called")

	var req struct {
		AppointmentID uint `json:"appointment_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create-order request: %v", err)
		utils.BadRequest(c, "Invalid request. appointment_id is required", err.Error())
		return
	}

	payment, approvalURL, err := bookingService.Checkout(c.Request.Context(), req.AppointmentID)
	if err != nil {
		utils.LogError("Checkout failed for appointment %d: %v", req.AppointmentID, err)
		respondError(c, err)
		return
	}
	utils.LogInfo("Created order %s for appointment %d", payment.GatewayOrderID, req.AppointmentID)

	utils.Success(c, "Payment order created successfully", gin.H{
		"appointment_id":   payment.AppointmentID,
		"gateway_order_id": payment.GatewayOrderID,
		"transaction_id":   payment.TransactionID,
		"amount":           fmt.Sprintf("%.2f", payment.Amount),
		"approval_url":     approvalURL,
	})
}

// GET /v1/paypal/capture
//
// The gateway redirects the payer here after approval, carrying the order id
// as "token" and the payer id as "PayerID". The gateway may retry this
// redirect; the capture path is idempotent.
func CapturePayPalPayment(c *gin.Context) {
	utils.LogInfo("CapturePayPalPayment called")

	orderID := c.Query("token")
	payerID := c.Query("PayerID")
	if orderID == "" {
		utils.BadRequest(c, "Missing order token", nil)
		return
	}

	payment, err := bookingService.HandleCaptureCallback(c.Request.Context(), orderID, payerID)
	if err != nil {
		utils.LogError("Capture failed for order %s: %v", orderID, err)
		respondError(c, err)
		return
	}

	if payment.Status != models.PaymentStatusCompleted {
		utils.LogInfo("Capture for order %s ended in status %s", orderID, payment.Status)
		utils.BadRequest(c, "Payment was not completed. The appointment is still pending and checkout may be retried.", gin.H{
			"payment_status": payment.Status,
			"retry":          true,
		})
		return
	}

	utils.Success(c, "Thank you for your payment! Your appointment is confirmed.", gin.H{
		"appointment_id":   payment.AppointmentID,
		"gateway_order_id": payment.GatewayOrderID,
		"transaction_id":   payment.TransactionID,
		"capture_id":       payment.CaptureID,
		"amount":           fmt.Sprintf("%.2f", payment.Amount),
		"paid_at":          payment.PaidAt,
		"payment_status":   payment.Status,
	})
}

// GET /v1/paypal/cancel
//
// The gateway sends the payer here when they abandon checkout. No capture is
// attempted; the payment fails and the appointment stays pending.
func CancelPayPalPayment(c *gin.Context) {
	utils.LogInfo("CancelPayPalPayment called")

	orderID := c.Query("token")
	if orderID == "" {
		utils.BadRequest(c, "Missing order token", nil)
		return
	}

	payment, err := bookingService.HandleCancelCallback(orderID)
	if err != nil {
		utils.LogError("Cancel callback failed for order %s: %v", orderID, err)
		respondError(c, err)
		return
	}

	utils.Success(c, "Payment cancelled. The appointment is still pending and checkout may be retried.", gin.H{
		"appointment_id": payment.AppointmentID,
		"payment_status": payment.Status,
	})
}

// GET /v1/appointments/:id/payment
func GetPaymentByAppointment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment ID", nil)
		return
	}

	payment, err := paymentService.GetByAppointment(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Payment retrieved successfully", gin.H{"payment": payment})
}

// GET /v1/paypal/orders/:orderId
//
// Support endpoint: the gateway's view of an order, for comparing against the
// local payment row.
func GetPayPalOrderStatus(c *gin.Context) {
	orderID := c.Param("orderId")

	state, err := paymentService.RemoteState(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Order status retrieved successfully", gin.H{
		"gateway_order_id": orderID,
		"gateway_state":    state,
	})
}

// POST /v1/operator/appointments/:id/refund
func RefundPayment(c *gin.Context) {
	utils.LogInfo("RefundPayment called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment ID", nil)
		return
	}

	payment, err := paymentService.Refund(c.Request.Context(), uint(id))
	if err != nil {
		utils.LogError("Refund failed for appointment %d: %v", id, err)
		respondError(c, err)
		return
	}
	utils.LogInfo("Refunded payment %d for appointment %d", payment.ID, payment.AppointmentID)

	utils.Success(c, "Payment refunded successfully", gin.H{
		"appointment_id": payment.AppointmentID,
		"payment_status": payment.Status,
		"amount":         fmt.Sprintf("%.2f", payment.Amount),
	})
}
