// Package repository defines the UnitOfWork contract binding repositories to
// a shared transaction boundary.
package repository

import (
	"context"

	loanrepo "github.com/amirasaad/loantrack/pkg/repository/loan"
	paymentrepo "github.com/amirasaad/loantrack/pkg/repository/payment"
	userrepo "github.com/amirasaad/loantrack/pkg/repository/user"
)

// UnitOfWork defines the contract for transactional work and typed
// repository access.
//
// Repository accessors are part of UnitOfWork so that every repository used
// inside Do shares the same DB session. Acquiring a repository any other way
// would silently break atomicity.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary. The
	// provided function receives a UnitOfWork bound to that transaction; if
	// it returns an error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// LoanRepository returns the loan repository bound to the current
	// session.
	LoanRepository() (loanrepo.Repository, error)

	// PaymentRepository returns the payment repository bound to the current
	// session.
	PaymentRepository() (paymentrepo.Repository, error)

	// UserRepository returns the user repository bound to the current
	// session.
	UserRepository() (userrepo.Repository, error)
}
