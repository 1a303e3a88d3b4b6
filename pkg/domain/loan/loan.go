// Package loan contains the loan and payment entities together with the
// outstanding-balance arithmetic.
//
// Monetary amounts are integer cents. The interest rate is a monthly
// percentage (5.0 means 5% per month) and accrues as simple interest per
// whole calendar month elapsed since the request date.
package loan

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrLoanNotFound is returned when a loan does not exist, is soft
	// deleted, or belongs to another user.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrPaymentNotFound is returned when a payment does not exist, is soft
	// deleted, or belongs to another user's loan.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrPaymentNotAllowed is returned when a payment targets a loan owned
	// by a different user.
	ErrPaymentNotAllowed = errors.New("payment on another user's loan is not allowed")
	// ErrInvalidNominalValue is returned when a loan's nominal value is not
	// positive.
	ErrInvalidNominalValue = errors.New("nominal value must be positive")
	// ErrInvalidInterestRate is returned when the interest rate is negative.
	ErrInvalidInterestRate = errors.New("interest rate cannot be negative")
	// ErrInvalidPaymentAmount is returned when a payment amount is not
	// positive.
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
)

// Loan represents money lent to a client, owned by the user who recorded it.
type Loan struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	NominalValue int64      `json:"nominal_value"`
	InterestRate float64    `json:"interest_rate"`
	IPAddress    string     `json:"ip_address"`
	RequestDate  time.Time  `json:"request_date"`
	Bank         string     `json:"bank"`
	Client       string     `json:"client"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Payment represents a repayment recorded against a loan.
type Payment struct {
	ID          uuid.UUID  `json:"id"`
	LoanID      uuid.UUID  `json:"loan_id"`
	Amount      int64      `json:"amount"`
	PaymentDate time.Time  `json:"payment_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// New creates a Loan owned by userID. The request date and IP address are
// server-assigned, never taken from the request body.
func New(
	userID uuid.UUID,
	nominalValue int64,
	interestRate float64,
	bank, client, ipAddress string,
) (*Loan, error) {
	if nominalValue <= 0 {
		return nil, ErrInvalidNominalValue
	}
	if interestRate < 0 {
		return nil, ErrInvalidInterestRate
	}
	if bank == "" {
		return nil, errors.New("bank cannot be empty")
	}
	if client == "" {
		return nil, errors.New("client cannot be empty")
	}
	now := time.Now().UTC()
	return &Loan{
		ID:           uuid.New(),
		UserID:       userID,
		NominalValue: nominalValue,
		InterestRate: interestRate,
		IPAddress:    ipAddress,
		RequestDate:  now,
		Bank:         bank,
		Client:       client,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewPayment creates a Payment against loanID with a server-assigned date.
func NewPayment(loanID uuid.UUID, amount int64) (*Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}
	now := time.Now().UTC()
	return &Payment{
		ID:          uuid.New(),
		LoanID:      loanID,
		Amount:      amount,
		PaymentDate: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MonthsElapsed counts whole calendar months between from and to, clamped at
// zero. Only the year and month fields matter: a loan requested on Jan 31
// starts accruing on Feb 1.
func MonthsElapsed(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months < 0 {
		months = 0
	}
	return months
}

// AccruedInterest returns the simple interest accrued on nominal cents at
// rate percent per month over the calendar months between requestDate and
// now, rounded to the nearest cent.
func AccruedInterest(nominal int64, rate float64, requestDate, now time.Time) int64 {
	months := MonthsElapsed(requestDate, now)
	return int64(math.Round(float64(nominal) * rate / 100 * float64(months)))
}

// OutstandingBalance returns nominal plus accrued interest minus the given
// payment amounts. Payments may overshoot; the result can be negative.
func OutstandingBalance(
	nominal int64,
	rate float64,
	requestDate, now time.Time,
	payments []int64,
) int64 {
	balance := nominal + AccruedInterest(nominal, rate, requestDate, now)
	for _, p := range payments {
		balance -= p
	}
	return balance
}

// OutstandingBalance computes the loan's balance at now from the given
// payments. Soft-deleted payments must be filtered out by the caller.
func (l *Loan) OutstandingBalance(payments []*Payment, now time.Time) int64 {
	amounts := make([]int64, 0, len(payments))
	for _, p := range payments {
		if p.DeletedAt != nil {
			continue
		}
		amounts = append(amounts, p.Amount)
	}
	return OutstandingBalance(l.NominalValue, l.InterestRate, l.RequestDate, now, amounts)
}
