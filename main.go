package main

import (
	"log"

	"github.com/medibook/medibook/config"
	"github.com/medibook/medibook/controllers"
	"github.com/medibook/medibook/gateway"
	"github.com/medibook/medibook/repositories"
	"github.com/medibook/medibook/routes"
	"github.com/medibook/medibook/services"
	"github.com/medibook/medibook/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Seed the first operator account
	if err := controllers.CreateDefaultOperator(); err != nil {
		utils.LogError("Failed to create default operator: %v", err)
		log.Fatal("Failed to create default operator:", err)
	}

	// Payment gateway client, built once from config
	gatewayClient, err := gateway.NewPayPalClient(gateway.Config{
		ClientID: cfg.PayPalClientID,
		Secret:   cfg.PayPalSecret,
		Mode:     cfg.PayPalMode,
		Currency: cfg.PayPalCurrency,
	})
	if err != nil {
		utils.LogError("Failed to initialize payment gateway: %v", err)
		log.Fatal("Failed to initialize payment gateway:", err)
	}

	// Wire repositories and services
	repos := repositories.New(config.DB)
	transactor := repositories.NewTransactor(config.DB)
	patientService := services.NewPatientService(repos.Patients)
	appointmentService := services.NewAppointmentService(repos.Appointments)
	paymentService := services.NewPaymentService(repos, transactor, gatewayClient, cfg.AppBaseURL)
	bookingService := services.NewBookingService(patientService, appointmentService, paymentService)
	controllers.Init(bookingService, appointmentService, paymentService, patientService)

	// Set up router with the middleware chain
	router := routes.SetupRouter()

	utils.LogInfo("Server starting on port %s", cfg.Port)
	// Start server
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
