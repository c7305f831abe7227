package models

import (
	"time"
)

// Payment status constants
const (
	PaymentStatusPending    = "PENDING"
	PaymentStatusProcessing = "PROCESSING"
	PaymentStatusCompleted  = "COMPLETED"
	PaymentStatusFailed     = "FAILED"
	PaymentStatusRefunded   = "REFUNDED"
)

// Payment method constants. PAYPAL is the only method wired to an external
// gateway in this codebase.
const (
	PaymentMethodPaypal = "PAYPAL"
)

// Payment is the settlement record for exactly one appointment. The unique
// index on AppointmentID enforces the 1:1 relationship at the schema; the
// gateway order id, capture id and transaction id are likewise unique so a
// replayed gateway callback can never attach to the wrong row.
type Payment struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	AppointmentID  uint        `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment    Appointment `json:"appointment" gorm:"foreignKey:AppointmentID"`
	Amount         float64     `gorm:"not null" json:"amount"`
	Method         string      `gorm:"not null" json:"method"`
	Status         string      `gorm:"not null;default:'PENDING'" json:"status"`
	GatewayOrderID string      `gorm:"uniqueIndex" json:"gateway_order_id"`
	CaptureID      *string     `gorm:"uniqueIndex" json:"capture_id,omitempty"`
	TransactionID  string      `gorm:"uniqueIndex;not null" json:"transaction_id"`
	PaidAt         *time.Time  `json:"paid_at,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// IsTerminal reports whether the payment reached a state that a gateway
// callback retry must not move it out of.
func (p *Payment) IsTerminal() bool {
	switch p.Status {
	case PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}
