package repositories

import (
	"github.com/medibook/medibook/models"
	"gorm.io/gorm"
)

// PatientRepository is the storage contract for patients.
type PatientRepository interface {
	FindByID(id uint) (*models.Patient, error)
	FindByEmail(email string) (*models.Patient, error)
	Create(patient *models.Patient) error
	Save(patient *models.Patient) error
}

type patientRepository struct {
	db *gorm.DB
}

func (r *patientRepository) FindByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.First(&patient, id).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

func (r *patientRepository) FindByEmail(email string) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.Where("email = ?", email).First(&patient).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

func (r *patientRepository) Create(patient *models.Patient) error {
	return translate(r.db.Create(patient).Error)
}

func (r *patientRepository) Save(patient *models.Patient) error {
	return translate(r.db.Save(patient).Error)
}
