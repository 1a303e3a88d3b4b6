// Package repository implements the UnitOfWork over GORM.
package repository

import (
	"context"

	"github.com/amirasaad/loantrack/pkg/repository"
	loanrepo "github.com/amirasaad/loantrack/pkg/repository/loan"
	paymentrepo "github.com/amirasaad/loantrack/pkg/repository/payment"
	userrepo "github.com/amirasaad/loantrack/pkg/repository/user"

	infraloan "github.com/amirasaad/loantrack/infra/repository/loan"
	infrapayment "github.com/amirasaad/loantrack/infra/repository/payment"
	infrauser "github.com/amirasaad/loantrack/infra/repository/user"

	"gorm.io/gorm"
)

// UoW provides a transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do are bound to the transaction
// session; outside Do they use the root connection.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW
// bound to that transaction. GORM errors escaping the transaction are mapped
// to domain errors.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
	return MapGormErrorToDomain(err)
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// LoanRepository returns the loan repository bound to the current session.
func (u *UoW) LoanRepository() (loanrepo.Repository, error) {
	return infraloan.New(u.session()), nil
}

// PaymentRepository returns the payment repository bound to the current
// session.
func (u *UoW) PaymentRepository() (paymentrepo.Repository, error) {
	return infrapayment.New(u.session()), nil
}

// UserRepository returns the user repository bound to the current session.
func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return infrauser.New(u.session()), nil
}
