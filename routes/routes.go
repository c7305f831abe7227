package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/medibook/medibook/controllers"
	"github.com/medibook/medibook/middleware"
	"github.com/medibook/medibook/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	api := router.Group("/v1")
	{
		// Booking and appointment lifecycle
		api.POST("/appointments/book", controllers.BookAppointment)
		api.GET("/appointments", controllers.ListAppointments)
		api.GET("/appointments/:id", controllers.GetAppointment)
		api.POST("/appointments/:id/cancel", controllers.CancelAppointment)
		api.GET("/appointments/:id/payment", controllers.GetPaymentByAppointment)
		api.GET("/patients/:id/appointments", controllers.ListPatientAppointments)

		// Gateway checkout and redirect callbacks
		paypal := api.Group("/paypal")
		{
			paypal.POST("/create-order", controllers.CreatePayPalOrder)
			paypal.GET("/capture", controllers.CapturePayPalPayment)
			paypal.GET("/cancel", controllers.CancelPayPalPayment)
			paypal.GET("/orders/:orderId", controllers.GetPayPalOrderStatus)
		}

		api.GET("/payments/:id/receipt", controllers.DownloadReceipt)

		// Operator actions
		operator := api.Group("/operator")
		{
			operator.POST("/login", controllers.OperatorLogin)

			authed := operator.Group("")
			authed.Use(middleware.OperatorAuthMiddleware())
			{
				authed.POST("/appointments/:id/complete", controllers.CompleteAppointment)
				authed.POST("/appointments/:id/refund", controllers.RefundPayment)
				authed.GET("/reports/payments/excel", controllers.DownloadPaymentsReportExcel)
			}
		}
	}

	return router
}
