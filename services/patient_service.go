package services

import (
	"errors"
	"fmt"

	"github.com/medibook/medibook/models"
	"github.com/medibook/medibook/repositories"
	"github.com/medibook/medibook/utils"
)

// PatientProfile carries the profile fields supplied with a first-time
// booking.
type PatientProfile struct {
	Name           string
	Email          string
	Phone          string
	Address        string
	MedicalHistory string
}

// PatientService resolves booking emails to patient records.
type PatientService struct {
	patients repositories.PatientRepository
}

func NewPatientService(patients repositories.PatientRepository) *PatientService {
	return &PatientService{patients: patients}
}

// Resolve returns the patient registered under the profile's email, creating
// the record when none exists. Two concurrent first-time bookings for the same
// email race on the unique index; the loser's insert fails with a duplicate
// key and the winner's record is re-read, so at most one patient per email
// ever exists.
func (s *PatientService) Resolve(profile PatientProfile) (*models.Patient, error) {
	patient, err := s.patients.FindByEmail(profile.Email)
	if err == nil {
		return patient, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("lookup patient %s: %w", profile.Email, err)
	}

	patient = &models.Patient{
		Name:           utils.SanitizeString(profile.Name),
		Email:          profile.Email,
		Phone:          profile.Phone,
		Address:        utils.SanitizeString(profile.Address),
		MedicalHistory: utils.SanitizeString(profile.MedicalHistory),
	}
	if err := s.patients.Create(patient); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return s.patients.FindByEmail(profile.Email)
		}
		return nil, fmt.Errorf("create patient %s: %w", profile.Email, err)
	}
	return patient, nil
}

// GetByEmail returns the patient registered under email.
func (s *PatientService) GetByEmail(email string) (*models.Patient, error) {
	patient, err := s.patients.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("patient %s: %w", email, ErrNotFound)
		}
		return nil, err
	}
	return patient, nil
}
