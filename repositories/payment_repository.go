package repositories

import (
	"time"

	"github.com/medibook/medibook/models"
	"gorm.io/gorm"
)

// PaymentRepository is the storage contract for payments. Insertion races on
// the appointment's single payment slot are resolved by the unique index and
// reported as ErrDuplicateKey.
type PaymentRepository interface {
	FindByID(id uint) (*models.Payment, error)
	FindByAppointmentID(appointmentID uint) (*models.Payment, error)
	FindByGatewayOrderID(orderID string) (*models.Payment, error)
	FindByTransactionID(transactionID string) (*models.Payment, error)
	FindCreatedBetween(from, to time.Time) ([]models.Payment, error)
	Create(payment *models.Payment) error
	Save(payment *models.Payment) error
}

type paymentRepository struct {
	db *gorm.DB
}

func (r *paymentRepository) FindByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Preload("Appointment.Patient").First(&payment, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (r *paymentRepository) FindByAppointmentID(appointmentID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("appointment_id = ?", appointmentID).First(&payment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (r *paymentRepository) FindByGatewayOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("gateway_order_id = ?", orderID).First(&payment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (r *paymentRepository) FindByTransactionID(transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (r *paymentRepository) FindCreatedBetween(from, to time.Time) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("created_at >= ? AND created_at <= ?", from, to).
		Preload("Appointment.Patient").
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, translate(err)
	}
	return payments, nil
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	return translate(r.db.Create(payment).Error)
}

func (r *paymentRepository) Save(payment *models.Payment) error {
	return translate(r.db.Save(payment).Error)
}
