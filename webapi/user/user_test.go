package user_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/pkg/utils"
	"github.com/amirasaad/loantrack/webapi/testutils"
	userweb "github.com/amirasaad/loantrack/webapi/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Run("created without a token", func(t *testing.T) {
		app, uow, _ := testutils.SetupApp(t)
		uow.Users.On("Create", mock.Anything, mock.Anything).Return(nil)

		req := testutils.NewJSONRequest(t, http.MethodPost, "/user", "", userweb.NewUser{
			Username: "janedoe",
			Email:    "jane@example.com",
			Password: "s3cr3t-pass",
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		uow.AssertExpectations(t)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		app, _, _ := testutils.SetupApp(t)

		req := testutils.NewJSONRequest(t, http.MethodPost, "/user", "", userweb.NewUser{
			Username: "janedoe",
			Email:    "jane@example.com",
			Password: "abc",
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetUser(t *testing.T) {
	app, uow, a := testutils.SetupApp(t)
	userID := uuid.New()
	token := testutils.AuthToken(t, a, userID)

	uow.Users.On("Get", mock.Anything, userID).
		Return(&dto.UserRead{ID: userID, Username: "janedoe"}, nil)

	req := testutils.NewJSONRequest(t, http.MethodGet, "/user/"+userID.String(), token, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	uow.AssertExpectations(t)
}

func TestUpdateUser(t *testing.T) {
	t.Run("own account", func(t *testing.T) {
		app, uow, a := testutils.SetupApp(t)
		userID := uuid.New()
		token := testutils.AuthToken(t, a, userID)

		uow.Users.On("Update", mock.Anything, userID, mock.Anything).Return(nil)
		uow.Users.On("Get", mock.Anything, userID).
			Return(&dto.UserRead{ID: userID, Names: "Jane Doe"}, nil)

		req := testutils.NewJSONRequest(t, http.MethodPut, "/user/"+userID.String(), token,
			userweb.UpdateUserInput{Names: "Jane Doe"})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		uow.AssertExpectations(t)
	})

	t.Run("someone else's account is forbidden", func(t *testing.T) {
		app, uow, a := testutils.SetupApp(t)
		token := testutils.AuthToken(t, a, uuid.New())

		req := testutils.NewJSONRequest(t, http.MethodPut, "/user/"+uuid.NewString(), token,
			userweb.UpdateUserInput{Names: "Jane Doe"})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		uow.Users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteUser(t *testing.T) {
	hash, err := utils.HashPassword("s3cr3t-pass")
	require.NoError(t, err)

	t.Run("with correct password", func(t *testing.T) {
		app, uow, a := testutils.SetupApp(t)
		userID := uuid.New()
		token := testutils.AuthToken(t, a, userID)

		uow.Users.On("Get", mock.Anything, userID).
			Return(&dto.UserRead{ID: userID, HashedPassword: hash}, nil)
		uow.Users.On("Delete", mock.Anything, userID).Return(nil)

		req := testutils.NewJSONRequest(t, http.MethodDelete, "/user/"+userID.String(), token,
			userweb.PasswordInput{Password: "s3cr3t-pass"})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		uow.AssertExpectations(t)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		app, uow, a := testutils.SetupApp(t)
		userID := uuid.New()
		token := testutils.AuthToken(t, a, userID)

		uow.Users.On("Get", mock.Anything, userID).
			Return(&dto.UserRead{ID: userID, HashedPassword: hash}, nil)

		req := testutils.NewJSONRequest(t, http.MethodDelete, "/user/"+userID.String(), token,
			userweb.PasswordInput{Password: "wrong-pass"})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		uow.Users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
