// Package loan provides business logic for loan operations: CRUD with
// per-user ownership, soft delete and restore, and outstanding-balance
// computation with a cache-aside layer.
package loan

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/loantrack/pkg/cache"
	"github.com/amirasaad/loantrack/pkg/domain/loan"
	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/pkg/repository"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service provides business logic for loan operations.
type Service struct {
	uow      repository.UnitOfWork
	balances cache.BalanceCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// New creates a loan Service.
func New(
	uow repository.UnitOfWork,
	balances cache.BalanceCache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		balances: balances,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ClampPage normalizes pagination parameters.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

// Create records a new loan owned by userID. The IP address comes from the
// request, never from the body.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	create *dto.LoanCreate,
	ipAddress string,
) (read *dto.LoanRead, err error) {
	log := s.logger.With("context", "CreateLoan", "userID", userID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		l, err := loan.New(
			userID,
			create.NominalValue,
			create.InterestRate,
			create.Bank,
			create.Client,
			ipAddress,
		)
		if err != nil {
			return err
		}
		if err = repo.Create(ctx, &dto.LoanCreate{
			ID:           l.ID,
			UserID:       l.UserID,
			NominalValue: l.NominalValue,
			InterestRate: l.InterestRate,
			IPAddress:    l.IPAddress,
			RequestDate:  l.RequestDate,
			Bank:         l.Bank,
			Client:       l.Client,
		}); err != nil {
			return err
		}
		read, err = repo.GetForUser(ctx, userID, l.ID)
		return err
	})
	if err != nil {
		log.Error("CreateLoan failed", "error", err)
		return nil, err
	}
	s.fillBalance(read, nil)
	log.Info("CreateLoan successful", "loanID", read.ID)
	return read, nil
}

// Get retrieves one of the user's loans with its payments and current
// balance. Returns loan.ErrLoanNotFound when the loan is absent, soft
// deleted, or owned by someone else.
func (s *Service) Get(
	ctx context.Context,
	userID, loanID uuid.UUID,
) (read *dto.LoanRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		read, err = loans.GetForUser(ctx, userID, loanID)
		if err != nil {
			return err
		}
		if read == nil {
			return loan.ErrLoanNotFound
		}
		payments, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		read.Payments, err = payments.ListByLoan(ctx, loanID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.fillBalance(read, read.Payments)
	return read, nil
}

// List retrieves the user's loans, newest first, with current balances.
func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	page, pageSize int,
) (reads []*dto.LoanRead, err error) {
	page, pageSize = ClampPage(page, pageSize)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		reads, err = loans.ListByUser(ctx, userID, page, pageSize)
		if err != nil {
			return err
		}
		payments, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		for _, read := range reads {
			ps, err := payments.ListByLoan(ctx, read.ID)
			if err != nil {
				return err
			}
			s.fillBalance(read, ps)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reads, nil
}

// Update applies the given update to one of the user's loans and returns the
// refreshed read model. The cached balance is invalidated because nominal
// value and interest rate feed the computation.
func (s *Service) Update(
	ctx context.Context,
	userID, loanID uuid.UUID,
	update *dto.LoanUpdate,
) (read *dto.LoanRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		if err = loans.Update(ctx, userID, loanID, update); err != nil {
			return err
		}
		read, err = loans.GetForUser(ctx, userID, loanID)
		if err != nil {
			return err
		}
		if read == nil {
			return loan.ErrLoanNotFound
		}
		payments, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		read.Payments, err = payments.ListByLoan(ctx, loanID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidateBalance(ctx, loanID)
	s.fillBalance(read, read.Payments)
	return read, nil
}

// Delete soft deletes one of the user's loans. The row is retained with its
// payments; only default visibility changes.
func (s *Service) Delete(
	ctx context.Context,
	userID, loanID uuid.UUID,
) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		return loans.SoftDelete(ctx, userID, loanID)
	})
	if err != nil {
		return err
	}
	s.invalidateBalance(ctx, loanID)
	return nil
}

// Restore clears the soft-delete marker on one of the user's loans.
func (s *Service) Restore(
	ctx context.Context,
	userID, loanID uuid.UUID,
) (read *dto.LoanRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		if err = loans.Restore(ctx, userID, loanID); err != nil {
			return err
		}
		read, err = loans.GetForUser(ctx, userID, loanID)
		if err != nil {
			return err
		}
		if read == nil {
			return loan.ErrLoanNotFound
		}
		// Payments survive a loan soft-delete, so the restored loan's
		// balance must account for them.
		payments, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		read.Payments, err = payments.ListByLoan(ctx, loanID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.fillBalance(read, read.Payments)
	return read, nil
}

// OutstandingBalance returns the loan's current balance, serving from the
// cache when a fresh entry exists.
func (s *Service) OutstandingBalance(
	ctx context.Context,
	userID, loanID uuid.UUID,
) (int64, error) {
	log := s.logger.With("context", "OutstandingBalance", "loanID", loanID)

	// Ownership is checked before consulting the cache so a cached entry
	// never leaks another user's balance.
	var read *dto.LoanRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		read, err = loans.GetForUser(ctx, userID, loanID)
		if err != nil {
			return err
		}
		if read == nil {
			return loan.ErrLoanNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if cached, err := s.balances.Get(ctx, loanID); err == nil && cached != nil {
		return cached.Balance, nil
	} else if err != nil {
		log.Warn("balance cache get failed", "error", err)
	}

	var payments []*dto.PaymentRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		payments, err = repo.ListByLoan(ctx, loanID)
		return err
	})
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	balance := loan.OutstandingBalance(
		read.NominalValue,
		read.InterestRate,
		read.RequestDate,
		now,
		paymentAmounts(payments),
	)
	if err := s.balances.Set(ctx, loanID, &cache.CachedBalance{
		Balance:    balance,
		ComputedAt: now,
	}, s.cacheTTL); err != nil {
		log.Warn("balance cache set failed", "error", err)
	}
	return balance, nil
}

// InvalidateBalance drops the cached balance for a loan. Called by the
// payment service after every payment write.
func (s *Service) InvalidateBalance(ctx context.Context, loanID uuid.UUID) {
	s.invalidateBalance(ctx, loanID)
}

func (s *Service) invalidateBalance(ctx context.Context, loanID uuid.UUID) {
	if err := s.balances.Delete(ctx, loanID); err != nil {
		s.logger.Warn("balance cache invalidation failed", "loanID", loanID, "error", err)
	}
}

func (s *Service) fillBalance(read *dto.LoanRead, payments []*dto.PaymentRead) {
	read.OutstandingBalance = loan.OutstandingBalance(
		read.NominalValue,
		read.InterestRate,
		read.RequestDate,
		time.Now().UTC(),
		paymentAmounts(payments),
	)
}

func paymentAmounts(payments []*dto.PaymentRead) []int64 {
	amounts := make([]int64, 0, len(payments))
	for _, p := range payments {
		amounts = append(amounts, p.Amount)
	}
	return amounts
}
