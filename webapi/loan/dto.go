package loan

// CreateLoanRequest represents the request body for recording a new loan.
// Amounts are integer cents; the interest rate is a monthly percentage.
// The owner, IP address and request date are assigned server-side.
type CreateLoanRequest struct {
	NominalValue int64   `json:"nominal_value" validate:"required,gt=0"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0"`
	Bank         string  `json:"bank" validate:"required,max=255"`
	Client       string  `json:"client" validate:"required,max=255"`
}

// UpdateLoanRequest represents the request body for updating a loan. Only
// provided fields are changed.
type UpdateLoanRequest struct {
	NominalValue *int64   `json:"nominal_value,omitempty" validate:"omitempty,gt=0"`
	InterestRate *float64 `json:"interest_rate,omitempty" validate:"omitempty,gte=0"`
	Bank         *string  `json:"bank,omitempty" validate:"omitempty,max=255"`
	Client       *string  `json:"client,omitempty" validate:"omitempty,max=255"`
}

// BalanceResponse carries a loan's derived outstanding balance in cents.
type BalanceResponse struct {
	LoanID             string `json:"loan_id"`
	OutstandingBalance int64  `json:"outstanding_balance"`
}
