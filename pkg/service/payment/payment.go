// Package payment provides business logic for payment operations. Every
// mutation enforces that the parent loan belongs to the acting user and
// invalidates that loan's cached balance.
package payment

import (
	"context"
	"log/slog"

	"github.com/amirasaad/loantrack/pkg/cache"
	"github.com/amirasaad/loantrack/pkg/domain/loan"
	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/pkg/repository"
	loansvc "github.com/amirasaad/loantrack/pkg/service/loan"
	"github.com/google/uuid"
)

// Service provides business logic for payment operations.
type Service struct {
	uow      repository.UnitOfWork
	balances cache.BalanceCache
	logger   *slog.Logger
}

// New creates a payment Service.
func New(
	uow repository.UnitOfWork,
	balances cache.BalanceCache,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, balances: balances, logger: logger}
}

// Create records a payment against one of the user's loans.
//
// The loan is fetched without an owner filter so the two failure modes stay
// distinct: a missing or soft-deleted loan is loan.ErrLoanNotFound, a loan
// owned by someone else is loan.ErrPaymentNotAllowed.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	create *dto.PaymentCreate,
) (read *dto.PaymentRead, err error) {
	log := s.logger.With("context", "CreatePayment", "userID", userID, "loanID", create.LoanID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		l, err := loans.Get(ctx, create.LoanID)
		if err != nil {
			return err
		}
		if l == nil {
			return loan.ErrLoanNotFound
		}
		if l.UserID != userID {
			return loan.ErrPaymentNotAllowed
		}

		p, err := loan.NewPayment(create.LoanID, create.Amount)
		if err != nil {
			return err
		}
		payments, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		if err = payments.Create(ctx, &dto.PaymentCreate{
			ID:          p.ID,
			LoanID:      p.LoanID,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
		}); err != nil {
			return err
		}
		read, err = payments.GetForUser(ctx, userID, p.ID)
		return err
	})
	if err != nil {
		log.Error("CreatePayment failed", "error", err)
		return nil, err
	}
	s.invalidateBalance(ctx, read.LoanID)
	log.Info("CreatePayment successful", "paymentID", read.ID)
	return read, nil
}

// Get retrieves a payment on one of the user's loans. Returns
// loan.ErrPaymentNotFound when absent, deleted, or not owned.
func (s *Service) Get(
	ctx context.Context,
	userID, paymentID uuid.UUID,
) (read *dto.PaymentRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		read, err = repo.GetForUser(ctx, userID, paymentID)
		if err != nil {
			return err
		}
		if read == nil {
			return loan.ErrPaymentNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return read, nil
}

// List retrieves the user's payments across all their loans, newest first.
func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	page, pageSize int,
) (reads []*dto.PaymentRead, err error) {
	page, pageSize = loansvc.ClampPage(page, pageSize)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		reads, err = repo.ListByUser(ctx, userID, page, pageSize)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reads, nil
}

// Update changes a payment's amount and returns the refreshed read model.
func (s *Service) Update(
	ctx context.Context,
	userID, paymentID uuid.UUID,
	update *dto.PaymentUpdate,
) (read *dto.PaymentRead, err error) {
	if update.Amount != nil && *update.Amount <= 0 {
		return nil, loan.ErrInvalidPaymentAmount
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		if err = repo.Update(ctx, userID, paymentID, update); err != nil {
			return err
		}
		read, err = repo.GetForUser(ctx, userID, paymentID)
		if err != nil {
			return err
		}
		if read == nil {
			return loan.ErrPaymentNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateBalance(ctx, read.LoanID)
	return read, nil
}

// Delete soft deletes a payment; the loan's balance rises accordingly on the
// next read.
func (s *Service) Delete(
	ctx context.Context,
	userID, paymentID uuid.UUID,
) error {
	var loanID uuid.UUID
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		read, err := repo.GetForUser(ctx, userID, paymentID)
		if err != nil {
			return err
		}
		if read == nil {
			return loan.ErrPaymentNotFound
		}
		loanID = read.LoanID
		return repo.SoftDelete(ctx, userID, paymentID)
	})
	if err != nil {
		return err
	}
	s.invalidateBalance(ctx, loanID)
	return nil
}

func (s *Service) invalidateBalance(ctx context.Context, loanID uuid.UUID) {
	if err := s.balances.Delete(ctx, loanID); err != nil {
		s.logger.Warn("balance cache invalidation failed", "loanID", loanID, "error", err)
	}
}
