// Package fixtures provides hand-written mocks for the repository and cache
// contracts used across service and handler tests.
package fixtures

import (
	"context"
	"time"

	"github.com/amirasaad/loantrack/pkg/cache"
	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/pkg/repository"
	loanrepo "github.com/amirasaad/loantrack/pkg/repository/loan"
	paymentrepo "github.com/amirasaad/loantrack/pkg/repository/payment"
	userrepo "github.com/amirasaad/loantrack/pkg/repository/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork satisfies repository.UnitOfWork. Do runs the given
// function against the mock itself, so repository expectations set on the
// embedded mocks apply inside the "transaction".
type MockUnitOfWork struct {
	Loans    *MockLoanRepository
	Payments *MockPaymentRepository
	Users    *MockUserRepository
}

// NewMockUnitOfWork creates a MockUnitOfWork with fresh repository mocks.
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Loans:    &MockLoanRepository{},
		Payments: &MockPaymentRepository{},
		Users:    &MockUserRepository{},
	}
}

func (m *MockUnitOfWork) Do(
	ctx context.Context,
	fn func(uow repository.UnitOfWork) error,
) error {
	return fn(m)
}

func (m *MockUnitOfWork) LoanRepository() (loanrepo.Repository, error) {
	return m.Loans, nil
}

func (m *MockUnitOfWork) PaymentRepository() (paymentrepo.Repository, error) {
	return m.Payments, nil
}

func (m *MockUnitOfWork) UserRepository() (userrepo.Repository, error) {
	return m.Users, nil
}

// AssertExpectations asserts expectations on all embedded repository mocks.
func (m *MockUnitOfWork) AssertExpectations(t mock.TestingT) {
	m.Loans.AssertExpectations(t)
	m.Payments.AssertExpectations(t)
	m.Users.AssertExpectations(t)
}

// MockLoanRepository is a testify mock for the loan repository.
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, create *dto.LoanCreate) error {
	args := m.Called(ctx, create)
	return args.Error(0)
}

func (m *MockLoanRepository) Get(ctx context.Context, id uuid.UUID) (*dto.LoanRead, error) {
	args := m.Called(ctx, id)
	read, _ := args.Get(0).(*dto.LoanRead)
	return read, args.Error(1)
}

func (m *MockLoanRepository) GetForUser(ctx context.Context, userID, id uuid.UUID) (*dto.LoanRead, error) {
	args := m.Called(ctx, userID, id)
	read, _ := args.Get(0).(*dto.LoanRead)
	return read, args.Error(1)
}

func (m *MockLoanRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*dto.LoanRead, error) {
	args := m.Called(ctx, userID, page, pageSize)
	reads, _ := args.Get(0).([]*dto.LoanRead)
	return reads, args.Error(1)
}

func (m *MockLoanRepository) Update(ctx context.Context, userID, id uuid.UUID, update *dto.LoanUpdate) error {
	args := m.Called(ctx, userID, id, update)
	return args.Error(0)
}

func (m *MockLoanRepository) SoftDelete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockLoanRepository) Restore(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockPaymentRepository is a testify mock for the payment repository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, create *dto.PaymentCreate) error {
	args := m.Called(ctx, create)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetForUser(ctx context.Context, userID, id uuid.UUID) (*dto.PaymentRead, error) {
	args := m.Called(ctx, userID, id)
	read, _ := args.Get(0).(*dto.PaymentRead)
	return read, args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*dto.PaymentRead, error) {
	args := m.Called(ctx, userID, page, pageSize)
	reads, _ := args.Get(0).([]*dto.PaymentRead)
	return reads, args.Error(1)
}

func (m *MockPaymentRepository) ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*dto.PaymentRead, error) {
	args := m.Called(ctx, loanID)
	reads, _ := args.Get(0).([]*dto.PaymentRead)
	return reads, args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, userID, id uuid.UUID, update *dto.PaymentUpdate) error {
	args := m.Called(ctx, userID, id, update)
	return args.Error(0)
}

func (m *MockPaymentRepository) SoftDelete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockUserRepository is a testify mock for the user repository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, create *dto.UserCreate) error {
	args := m.Called(ctx, create)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	args := m.Called(ctx, id)
	read, _ := args.Get(0).(*dto.UserRead)
	return read, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	args := m.Called(ctx, email)
	read, _ := args.Get(0).(*dto.UserRead)
	return read, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	args := m.Called(ctx, username)
	read, _ := args.Get(0).(*dto.UserRead)
	return read, args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockBalanceCache is a testify mock for the balance cache.
type MockBalanceCache struct {
	mock.Mock
}

func (m *MockBalanceCache) Get(ctx context.Context, loanID uuid.UUID) (*cache.CachedBalance, error) {
	args := m.Called(ctx, loanID)
	balance, _ := args.Get(0).(*cache.CachedBalance)
	return balance, args.Error(1)
}

func (m *MockBalanceCache) Set(ctx context.Context, loanID uuid.UUID, balance *cache.CachedBalance, ttl time.Duration) error {
	args := m.Called(ctx, loanID, balance, ttl)
	return args.Error(0)
}

func (m *MockBalanceCache) Delete(ctx context.Context, loanID uuid.UUID) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}
