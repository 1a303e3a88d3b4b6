package user_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/amirasaad/loantrack/internal/fixtures"
	"github.com/amirasaad/loantrack/pkg/domain/user"
	"github.com/amirasaad/loantrack/pkg/dto"
	usersvc "github.com/amirasaad/loantrack/pkg/service/user"
	"github.com/amirasaad/loantrack/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(uow *fixtures.MockUnitOfWork) *usersvc.Service {
	return usersvc.New(uow, slog.Default())
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		uow := fixtures.NewMockUnitOfWork()
		uow.Users.On("Create", mock.Anything, mock.Anything).Return(nil)

		u, err := newService(uow).CreateUser(ctx, "janedoe", "jane@example.com", "s3cr3t-pass")
		require.NoError(t, err)
		assert.Equal(t, "janedoe", u.Username)
		assert.NotEqual(t, uuid.Nil, u.ID)
		uow.AssertExpectations(t)
	})

	t.Run("invalid email", func(t *testing.T) {
		uow := fixtures.NewMockUnitOfWork()
		_, err := newService(uow).CreateUser(ctx, "janedoe", "not-an-email", "s3cr3t-pass")
		assert.Error(t, err)
		uow.Users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		uow := fixtures.NewMockUnitOfWork()
		uow.Users.On("Get", mock.Anything, userID).
			Return(&dto.UserRead{ID: userID, Username: "janedoe"}, nil)

		u, err := newService(uow).GetUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, u.ID)
	})

	t.Run("not found", func(t *testing.T) {
		uow := fixtures.NewMockUnitOfWork()
		uow.Users.On("Get", mock.Anything, userID).Return(nil, nil)

		_, err := newService(uow).GetUser(ctx, userID)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	uow := fixtures.NewMockUnitOfWork()
	username := "newname"
	uow.Users.On("Update", mock.Anything, userID, mock.Anything).Return(nil)
	uow.Users.On("Get", mock.Anything, userID).
		Return(&dto.UserRead{ID: userID, Username: username}, nil)

	u, err := newService(uow).UpdateUser(ctx, userID, &dto.UserUpdate{Username: &username})
	require.NoError(t, err)
	assert.Equal(t, username, u.Username)
	uow.AssertExpectations(t)
}

func TestValidUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	hash, err := utils.HashPassword("s3cr3t-pass")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		uow := fixtures.NewMockUnitOfWork()
		uow.Users.On("Get", mock.Anything, userID).
			Return(&dto.UserRead{ID: userID, HashedPassword: hash}, nil)

		valid, err := newService(uow).ValidUser(ctx, userID, "s3cr3t-pass")
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("wrong password", func(t *testing.T) {
		uow := fixtures.NewMockUnitOfWork()
		uow.Users.On("Get", mock.Anything, userID).
			Return(&dto.UserRead{ID: userID, HashedPassword: hash}, nil)

		valid, err := newService(uow).ValidUser(ctx, userID, "wrong-pass")
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("unknown user", func(t *testing.T) {
		uow := fixtures.NewMockUnitOfWork()
		uow.Users.On("Get", mock.Anything, userID).Return(nil, nil)

		valid, err := newService(uow).ValidUser(ctx, userID, "s3cr3t-pass")
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	uow := fixtures.NewMockUnitOfWork()
	uow.Users.On("Delete", mock.Anything, userID).Return(nil)

	require.NoError(t, newService(uow).DeleteUser(ctx, userID))
	uow.AssertExpectations(t)
}
