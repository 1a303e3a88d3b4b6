package payment_test

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	infrapayment "github.com/amirasaad/loantrack/infra/repository/payment"
	"github.com/amirasaad/loantrack/pkg/domain"
	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/pkg/repository/payment"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepo(t *testing.T) (payment.Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return infrapayment.New(gdb), mock
}

func paymentColumns() []string {
	return []string{
		"id", "loan_id", "amount", "payment_date",
		"created_at", "updated_at", "deleted_at",
	}
}

func paymentRow(id, loanID uuid.UUID, amount int64) []driver.Value {
	now := time.Now().UTC()
	return []driver.Value{id, loanID, amount, now, now, now, nil}
}

func TestCreate(t *testing.T) {
	repo, mock := setupRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "payments" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Create(ctx, &dto.PaymentCreate{
		ID:          uuid.New(),
		LoanID:      uuid.New(),
		Amount:      20_000,
		PaymentDate: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("found through the loans join", func(t *testing.T) {
		repo, mock := setupRepo(t)
		paymentID := uuid.New()
		loanID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM "payments" JOIN loans ON loans.id = payments.loan_id WHERE loans.user_id = (.+)`).
			WillReturnRows(sqlmock.NewRows(paymentColumns()).
				AddRow(paymentRow(paymentID, loanID, 20_000)...))

		read, err := repo.GetForUser(ctx, uuid.New(), paymentID)
		require.NoError(t, err)
		require.NotNil(t, read)
		assert.Equal(t, paymentID, read.ID)
		assert.Equal(t, loanID, read.LoanID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("another user's payment yields nil, nil", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM "payments" JOIN loans (.+)`).
			WillReturnRows(sqlmock.NewRows(paymentColumns()))

		read, err := repo.GetForUser(ctx, uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Nil(t, read)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListByUser(t *testing.T) {
	repo, mock := setupRepo(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM "payments" JOIN loans (.+) ORDER BY payments.created_at DESC`).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(paymentRow(uuid.New(), uuid.New(), 20_000)...).
			AddRow(paymentRow(uuid.New(), uuid.New(), 30_000)...))

	reads, err := repo.ListByUser(ctx, uuid.New(), 1, 20)
	require.NoError(t, err)
	assert.Len(t, reads, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByLoan(t *testing.T) {
	repo, mock := setupRepo(t)
	ctx := context.Background()
	loanID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE loan_id = (.+) ORDER BY payment_date ASC`).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(paymentRow(uuid.New(), loanID, 20_000)...))

	reads, err := repo.ListByLoan(ctx, loanID)
	require.NoError(t, err)
	require.Len(t, reads, 1)
	assert.Equal(t, loanID, reads[0].LoanID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	amount := int64(35_000)

	t.Run("scoped by the ownership subquery", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "payments" SET (.+) WHERE (.+)loan_id IN \(SELECT id FROM "loans" WHERE user_id = (.+)\)`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Update(ctx, uuid.New(), uuid.New(), &dto.PaymentUpdate{Amount: &amount})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows means not found", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "payments" SET (.+)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Update(ctx, uuid.New(), uuid.New(), &dto.PaymentUpdate{Amount: &amount})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("nil amount is a no-op", func(t *testing.T) {
		repo, mock := setupRepo(t)

		err := repo.Update(ctx, uuid.New(), uuid.New(), &dto.PaymentUpdate{})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the row deleted", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "payments" SET "deleted_at"=(.+)`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.SoftDelete(ctx, uuid.New(), uuid.New()))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows means not found", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "payments" SET "deleted_at"=(.+)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.SoftDelete(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
