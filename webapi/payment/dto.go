package payment

import "github.com/google/uuid"

// CreatePaymentRequest represents the request body for recording a payment.
// The payment date is assigned server-side.
type CreatePaymentRequest struct {
	LoanID uuid.UUID `json:"loan_id" validate:"required"`
	Amount int64     `json:"amount" validate:"required,gt=0"`
}

// UpdatePaymentRequest represents the request body for updating a payment.
type UpdatePaymentRequest struct {
	Amount *int64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
}
