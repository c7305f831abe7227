package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/medibook/medibook/models"
	"github.com/medibook/medibook/repositories"
)

// memStore is an in-memory stand-in for the database. It enforces the same
// uniqueness rules the schema does, so the insert-race behavior the services
// rely on is exercised for real.
type memStore struct {
	mu           sync.Mutex
	patients     map[uint]models.Patient
	appointments map[uint]models.Appointment
	payments     map[uint]models.Payment
	nextID       uint
}

func newMemStore() *memStore {
	return &memStore{
		patients:     make(map[uint]models.Patient),
		appointments: make(map[uint]models.Appointment),
		payments:     make(map[uint]models.Payment),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) repos() *repositories.Repositories {
	return &repositories.Repositories{
		Patients:     &memPatientRepo{store: s},
		Appointments: &memAppointmentRepo{store: s},
		Payments:     &memPaymentRepo{store: s},
	}
}

// memTransactor runs the unit of work against the same store. The tests
// assert end states; serialization comes from the store mutex.
type memTransactor struct {
	store *memStore
}

func (t *memTransactor) Transaction(fn func(r *repositories.Repositories) error) error {
	return fn(t.store.repos())
}

type memPatientRepo struct {
	store *memStore
}

func (r *memPatientRepo) FindByID(id uint) (*models.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.patients[id]; ok {
		return &p, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memPatientRepo) FindByEmail(email string) (*models.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.patients {
		if p.Email == email {
			p := p
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memPatientRepo) Create(patient *models.Patient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.patients {
		if p.Email == patient.Email {
			return repositories.ErrDuplicateKey
		}
	}
	patient.ID = r.store.id()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt
	r.store.patients[patient.ID] = *patient
	return nil
}

func (r *memPatientRepo) Save(patient *models.Patient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	patient.UpdatedAt = time.Now()
	r.store.patients[patient.ID] = *patient
	return nil
}

type memAppointmentRepo struct {
	store *memStore
}

func (r *memAppointmentRepo) FindByID(id uint) (*models.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.appointments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if p, ok := r.store.patients[a.PatientID]; ok {
		a.Patient = p
	}
	return &a, nil
}

func (r *memAppointmentRepo) FindByPatientID(patientID uint) ([]models.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.store.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) FindAll() ([]models.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.store.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (r *memAppointmentRepo) Create(appointment *models.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	appointment.ID = r.store.id()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	r.store.appointments[appointment.ID] = *appointment
	return nil
}

func (r *memAppointmentRepo) Save(appointment *models.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	appointment.UpdatedAt = time.Now()
	stored := *appointment
	stored.Patient = models.Patient{}
	r.store.appointments[appointment.ID] = stored
	return nil
}

type memPaymentRepo struct {
	store *memStore
}

func (r *memPaymentRepo) FindByID(id uint) (*models.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.payments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if a, ok := r.store.appointments[p.AppointmentID]; ok {
		if pat, ok := r.store.patients[a.PatientID]; ok {
			a.Patient = pat
		}
		p.Appointment = a
	}
	return &p, nil
}

func (r *memPaymentRepo) FindByAppointmentID(appointmentID uint) (*models.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.payments {
		if p.AppointmentID == appointmentID {
			p := p
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memPaymentRepo) FindByGatewayOrderID(orderID string) (*models.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.payments {
		if p.GatewayOrderID == orderID {
			p := p
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memPaymentRepo) FindByTransactionID(transactionID string) (*models.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.payments {
		if p.TransactionID == transactionID {
			p := p
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memPaymentRepo) FindCreatedBetween(from, to time.Time) ([]models.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Payment
	for _, p := range r.store.payments {
		if !p.CreatedAt.Before(from) && !p.CreatedAt.After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) Create(payment *models.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.payments {
		if p.AppointmentID == payment.AppointmentID ||
			p.GatewayOrderID == payment.GatewayOrderID ||
			p.TransactionID == payment.TransactionID {
			return repositories.ErrDuplicateKey
		}
	}
	payment.ID = r.store.id()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	r.store.payments[payment.ID] = *payment
	return nil
}

func (r *memPaymentRepo) Save(payment *models.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	payment.UpdatedAt = time.Now()
	stored := *payment
	stored.Appointment = models.Appointment{}
	r.store.payments[payment.ID] = stored
	return nil
}

// fakeGateway is a scripted gateway client. Call counters let the tests prove
// that idempotent paths never reach the gateway twice.
type fakeGateway struct {
	mu sync.Mutex

	createCalls  int
	captureCalls int
	refundCalls  int

	createErr    error
	captureState string
	captureID    string
	captureErr   error
	refundState  string
	refundErr    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		captureState: "COMPLETED",
		captureID:    "CAP1",
		refundState:  "COMPLETED",
	}
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount float64, description, returnURL, cancelURL string) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return "", "", g.createErr
	}
	g.createCalls++
	orderID := fmt.Sprintf("ORD-%d", g.createCalls)
	return orderID, "https://gateway.example/approve/" + orderID, nil
}

func (g *fakeGateway) GetOrder(ctx context.Context, orderID string) (string, error) {
	return "CREATED", nil
}

func (g *fakeGateway) ExecuteOrder(ctx context.Context, orderID, payerID string) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.captureCalls++
	if g.captureErr != nil {
		return "", "", g.captureErr
	}
	return g.captureState, g.captureID, nil
}

func (g *fakeGateway) Refund(ctx context.Context, captureID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refundCalls++
	if g.refundErr != nil {
		return "", g.refundErr
	}
	return g.refundState, nil
}

// testEnv bundles the wired services over one in-memory store.
type testEnv struct {
	store        *memStore
	gw           *fakeGateway
	patients     *PatientService
	appointments *AppointmentService
	payments     *PaymentService
	booking      *BookingService
}

func newTestEnv() *testEnv {
	store := newMemStore()
	gw := newFakeGateway()
	repos := store.repos()
	patients := NewPatientService(repos.Patients)
	appointments := NewAppointmentService(repos.Appointments)
	payments := NewPaymentService(repos, &memTransactor{store: store}, gw, "http://localhost:8080")
	booking := NewBookingService(patients, appointments, payments)
	return &testEnv{
		store:        store,
		gw:           gw,
		patients:     patients,
		appointments: appointments,
		payments:     payments,
		booking:      booking,
	}
}

// futureBooking returns a valid booking request one hour out.
func futureBooking(email string) BookingRequest {
	when := time.Now().Add(time.Hour)
	return BookingRequest{
		PatientName:     "Asha Rao",
		Email:           email,
		Phone:           "+1 555 0101",
		Address:         "12 Elm Street",
		MedicalHistory:  "none",
		DoctorName:      "Mehta",
		Department:      "Cardiology",
		AppointmentDate: when.Format("2006-01-02"),
		AppointmentTime: when.Format("15:04"),
		ConsultationFee: 50.00,
		Symptoms:        "chest pain",
	}
}
