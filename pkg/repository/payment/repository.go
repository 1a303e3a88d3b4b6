// Package payment defines the data-access contract for payments.
package payment

import (
	"context"

	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines payment data access. Ownership is established through
// the parent loan: user-scoped methods join against the loans table and only
// see payments whose loan belongs to the given user. Soft-deleted payments
// are excluded everywhere; the parent loan's deletion state is ignored so
// payments stay readable after their loan is soft deleted.
type Repository interface {
	// Create inserts a new payment record from a DTO.
	Create(ctx context.Context, create *dto.PaymentCreate) error

	// GetForUser retrieves a payment on one of the user's loans. Returns
	// (nil, nil) when absent.
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*dto.PaymentRead, error)

	// ListByUser retrieves payments across all of the user's loans with
	// pagination.
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*dto.PaymentRead, error)

	// ListByLoan retrieves all non-deleted payments for a loan, oldest
	// first. Used for balance computation.
	ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*dto.PaymentRead, error)

	// Update applies the non-nil fields of update to the user's payment.
	// Returns domain.ErrNotFound when no visible row matched.
	Update(ctx context.Context, userID, id uuid.UUID, update *dto.PaymentUpdate) error

	// SoftDelete marks the user's payment deleted. Returns
	// domain.ErrNotFound when no visible row matched.
	SoftDelete(ctx context.Context, userID, id uuid.UUID) error
}
