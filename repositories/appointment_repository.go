package repositories

import (
	"github.com/medibook/medibook/models"
	"gorm.io/gorm"
)

// AppointmentRepository is the storage contract for appointments. Appointments
// are never deleted; they carry the audit trail of every booking.
type AppointmentRepository interface {
	FindByID(id uint) (*models.Appointment, error)
	FindByPatientID(patientID uint) ([]models.Appointment, error)
	FindAll() ([]models.Appointment, error)
	Create(appointment *models.Appointment) error
	Save(appointment *models.Appointment) error
}

type appointmentRepository struct {
	db *gorm.DB
}

func (r *appointmentRepository) FindByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.Preload("Patient").First(&appointment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(patientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("patient_id = ?", patientID).
		Order("scheduled_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, translate(err)
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll() ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Preload("Patient").
		Order("scheduled_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, translate(err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Create(appointment *models.Appointment) error {
	return translate(r.db.Create(appointment).Error)
}

func (r *appointmentRepository) Save(appointment *models.Appointment) error {
	return translate(r.db.Save(appointment).Error)
}
