// Package loan defines the data-access contract for loans.
package loan

import (
	"context"

	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines loan data access. All reads exclude soft-deleted rows
// unless stated otherwise, and user-scoped methods only ever see the given
// owner's loans.
type Repository interface {
	// Create inserts a new loan record from a DTO.
	Create(ctx context.Context, create *dto.LoanCreate) error

	// Get retrieves a non-deleted loan by ID regardless of owner. Returns
	// (nil, nil) when absent; callers decide between not-found and
	// forbidden.
	Get(ctx context.Context, id uuid.UUID) (*dto.LoanRead, error)

	// GetForUser retrieves a non-deleted loan owned by userID. Returns
	// (nil, nil) when absent.
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*dto.LoanRead, error)

	// ListByUser retrieves the user's non-deleted loans with pagination.
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*dto.LoanRead, error)

	// Update applies the non-nil fields of update to the user's loan.
	// Returns domain.ErrNotFound when no visible row matched.
	Update(ctx context.Context, userID, id uuid.UUID, update *dto.LoanUpdate) error

	// SoftDelete marks the user's loan deleted. Returns domain.ErrNotFound
	// when no visible row matched.
	SoftDelete(ctx context.Context, userID, id uuid.UUID) error

	// Restore clears the soft-delete marker on the user's loan. Returns
	// domain.ErrNotFound when the row does not exist at all.
	Restore(ctx context.Context, userID, id uuid.UUID) error
}
