package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors returned by all repository implementations. Callers match
// with errors.Is; absence is always reported this way, never with a nil row.
var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert or update violates a unique
	// constraint. The loser of an insert race sees this and re-reads.
	ErrDuplicateKey = errors.New("unique constraint violated")
)

// Repositories bundles the per-entity repositories so a unit of work can hand
// out a transaction-scoped set.
type Repositories struct {
	Patients     PatientRepository
	Appointments AppointmentRepository
	Payments     PaymentRepository
}

// Transactor runs a function against a transaction-scoped repository set.
// Either every write inside fn commits or none do.
type Transactor interface {
	Transaction(fn func(r *Repositories) error) error
}

// New builds gorm-backed repositories on top of the given handle, which may be
// a plain connection or an open transaction.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Patients:     &patientRepository{db: db},
		Appointments: &appointmentRepository{db: db},
		Payments:     &paymentRepository{db: db},
	}
}

type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor returns a Transactor that wraps fn in a database transaction.
func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) Transaction(fn func(r *Repositories) error) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// translate maps gorm errors onto the repository sentinels. Requires the
// connection to be opened with TranslateError so driver-specific unique
// violations surface as gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	}
	return err
}
