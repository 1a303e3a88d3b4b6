package dto

import (
	"time"

	"github.com/google/uuid"
)

// PaymentCreate represents the data needed to persist a new payment.
type PaymentCreate struct {
	ID          uuid.UUID `json:"id"`
	LoanID      uuid.UUID `json:"loan_id" validate:"required"`
	Amount      int64     `json:"amount" validate:"required,gt=0"`
	PaymentDate time.Time `json:"payment_date"`
}

// PaymentUpdate represents the mutable fields of a payment.
type PaymentUpdate struct {
	Amount *int64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
}

// PaymentRead represents a read-optimized view of a payment.
type PaymentRead struct {
	ID          uuid.UUID `json:"id"`
	LoanID      uuid.UUID `json:"loan_id"`
	Amount      int64     `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
