package user_test

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	infrauser "github.com/amirasaad/loantrack/infra/repository/user"
	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/pkg/repository/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepo(t *testing.T) (user.Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return infrauser.New(gdb), mock
}

func userColumns() []string {
	return []string{
		"id", "username", "email", "password", "names",
		"created_at", "updated_at", "deleted_at",
	}
}

func userRow(id uuid.UUID) []driver.Value {
	now := time.Now().UTC()
	return []driver.Value{
		id, "janedoe", "jane@example.com", "hashed", "Jane Doe", now, now, nil,
	}
}

func TestCreate(t *testing.T) {
	repo, mock := setupRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Create(ctx, &dto.UserCreate{
		ID:       uuid.New(),
		Username: "janedoe",
		Email:    "jane@example.com",
		Password: "hashed",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := setupRepo(t)
		userID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = (.+)`).
			WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(userRow(userID)...))

		read, err := repo.GetByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		require.NotNil(t, read)
		assert.Equal(t, userID, read.ID)
		assert.Equal(t, "hashed", read.HashedPassword)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found yields nil, nil", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WillReturnRows(sqlmock.NewRows(userColumns()))

		read, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, read)
	})
}

func TestGetByUsername(t *testing.T) {
	repo, mock := setupRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE username = (.+)`).
		WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(userRow(userID)...))

	read, err := repo.GetByUsername(ctx, "janedoe")
	require.NoError(t, err)
	require.NotNil(t, read)
	assert.Equal(t, "janedoe", read.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExists(t *testing.T) {
	repo, mock := setupRepo(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := setupRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "deleted_at"=(.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(ctx, uuid.New()))
	require.NoError(t, mock.ExpectationsWereMet())
}
