package dto

import (
	"time"

	"github.com/google/uuid"
)

// LoanCreate represents the data needed to persist a new loan.
type LoanCreate struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	NominalValue int64     `json:"nominal_value" validate:"required,gt=0"`
	InterestRate float64   `json:"interest_rate" validate:"gte=0"`
	IPAddress    string    `json:"ip_address"`
	RequestDate  time.Time `json:"request_date"`
	Bank         string    `json:"bank" validate:"required,max=255"`
	Client       string    `json:"client" validate:"required,max=255"`
}

// LoanUpdate represents the mutable fields of a loan. The owner, IP address
// and request date are fixed at creation.
type LoanUpdate struct {
	NominalValue *int64   `json:"nominal_value,omitempty" validate:"omitempty,gt=0"`
	InterestRate *float64 `json:"interest_rate,omitempty" validate:"omitempty,gte=0"`
	Bank         *string  `json:"bank,omitempty" validate:"omitempty,max=255"`
	Client       *string  `json:"client,omitempty" validate:"omitempty,max=255"`
}

// LoanRead represents a read-optimized view of a loan. OutstandingBalance is
// derived at read time and Payments holds the loan's non-deleted payments
// when the caller asked for them.
type LoanRead struct {
	ID                 uuid.UUID      `json:"id"`
	UserID             uuid.UUID      `json:"user_id"`
	NominalValue       int64          `json:"nominal_value"`
	InterestRate       float64        `json:"interest_rate"`
	IPAddress          string         `json:"ip_address"`
	RequestDate        time.Time      `json:"request_date"`
	Bank               string         `json:"bank"`
	Client             string         `json:"client"`
	OutstandingBalance int64          `json:"outstanding_balance"`
	Payments           []*PaymentRead `json:"payments,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
