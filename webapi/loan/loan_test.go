package loan_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/webapi/common"
	loanweb "github.com/amirasaad/loantrack/webapi/loan"
	"github.com/amirasaad/loantrack/webapi/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func loanRead(userID uuid.UUID) *dto.LoanRead {
	return &dto.LoanRead{
		ID:           uuid.New(),
		UserID:       userID,
		NominalValue: 100_000,
		InterestRate: 5,
		RequestDate:  time.Now().UTC(),
		Bank:         "Acme Bank",
		Client:       "Jane Doe",
	}
}

func TestCreateLoan(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		app, uow, a := testutils.SetupApp(t)
		userID := uuid.New()
		token := testutils.AuthToken(t, a, userID)

		uow.Loans.On("Create", mock.Anything, mock.Anything).Return(nil)
		uow.Loans.On("GetForUser", mock.Anything, userID, mock.Anything).
			Return(loanRead(userID), nil)

		req := testutils.NewJSONRequest(t, http.MethodPost, "/loans", token, loanweb.CreateLoanRequest{
			NominalValue: 100_000,
			InterestRate: 5,
			Bank:         "Acme Bank",
			Client:       "Jane Doe",
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		uow.AssertExpectations(t)
	})

	t.Run("missing bank fails validation", func(t *testing.T) {
		app, _, a := testutils.SetupApp(t)
		token := testutils.AuthToken(t, a, uuid.New())

		req := testutils.NewJSONRequest(t, http.MethodPost, "/loans", token, loanweb.CreateLoanRequest{
			NominalValue: 100_000,
			Client:       "Jane Doe",
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("no token", func(t *testing.T) {
		app, _, _ := testutils.SetupApp(t)

		req := testutils.NewJSONRequest(t, http.MethodPost, "/loans", "", loanweb.CreateLoanRequest{
			NominalValue: 100_000,
			Bank:         "Acme Bank",
			Client:       "Jane Doe",
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListLoans(t *testing.T) {
	app, uow, a := testutils.SetupApp(t)
	userID := uuid.New()
	token := testutils.AuthToken(t, a, userID)

	read := loanRead(userID)
	uow.Loans.On("ListByUser", mock.Anything, userID, 1, 20).
		Return([]*dto.LoanRead{read}, nil)
	uow.Payments.On("ListByLoan", mock.Anything, read.ID).Return(nil, nil)

	req := testutils.NewJSONRequest(t, http.MethodGet, "/loans", token, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope common.Response
	testutils.DecodeResponse(t, resp, &envelope)
	assert.Equal(t, "Loans found", envelope.Message)
	uow.AssertExpectations(t)
}

func TestGetLoan(t *testing.T) {
	t.Run("found with balance", func(t *testing.T) {
		app, uow, a := testutils.SetupApp(t)
		userID := uuid.New()
		token := testutils.AuthToken(t, a, userID)

		read := loanRead(userID)
		uow.Loans.On("GetForUser", mock.Anything, userID, read.ID).Return(read, nil)
		uow.Payments.On("ListByLoan", mock.Anything, read.ID).
			Return([]*dto.PaymentRead{{LoanID: read.ID, Amount: 20_000}}, nil)

		req := testutils.NewJSONRequest(t, http.MethodGet, "/loans/"+read.ID.String(), token, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		app, uow, a := testutils.SetupApp(t)
		userID := uuid.New()
		token := testutils.AuthToken(t, a, userID)
		loanID := uuid.New()

		uow.Loans.On("GetForUser", mock.Anything, userID, loanID).Return(nil, nil)

		req := testutils.NewJSONRequest(t, http.MethodGet, "/loans/"+loanID.String(), token, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid loan id", func(t *testing.T) {
		app, _, a := testutils.SetupApp(t)
		token := testutils.AuthToken(t, a, uuid.New())

		req := testutils.NewJSONRequest(t, http.MethodGet, "/loans/not-a-uuid", token, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateLoan(t *testing.T) {
	app, uow, a := testutils.SetupApp(t)
	userID := uuid.New()
	token := testutils.AuthToken(t, a, userID)

	read := loanRead(userID)
	uow.Loans.On("Update", mock.Anything, userID, read.ID, mock.Anything).Return(nil)
	uow.Loans.On("GetForUser", mock.Anything, userID, read.ID).Return(read, nil)
	uow.Payments.On("ListByLoan", mock.Anything, read.ID).Return(nil, nil)

	nominal := int64(200_000)
	req := testutils.NewJSONRequest(t, http.MethodPut, "/loans/"+read.ID.String(), token,
		loanweb.UpdateLoanRequest{NominalValue: &nominal})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	uow.AssertExpectations(t)
}

func TestDeleteLoan(t *testing.T) {
	app, uow, a := testutils.SetupApp(t)
	userID := uuid.New()
	token := testutils.AuthToken(t, a, userID)
	loanID := uuid.New()

	uow.Loans.On("SoftDelete", mock.Anything, userID, loanID).Return(nil)

	req := testutils.NewJSONRequest(t, http.MethodDelete, "/loans/"+loanID.String(), token, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	uow.AssertExpectations(t)
}

func TestRestoreLoan(t *testing.T) {
	app, uow, a := testutils.SetupApp(t)
	userID := uuid.New()
	token := testutils.AuthToken(t, a, userID)

	read := loanRead(userID)
	uow.Loans.On("Restore", mock.Anything, userID, read.ID).Return(nil)
	uow.Loans.On("GetForUser", mock.Anything, userID, read.ID).Return(read, nil)
	uow.Payments.On("ListByLoan", mock.Anything, read.ID).Return(nil, nil)

	req := testutils.NewJSONRequest(t, http.MethodPost, "/loans/"+read.ID.String()+"/restore", token, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	uow.AssertExpectations(t)
}

func TestGetLoanBalance(t *testing.T) {
	app, uow, a := testutils.SetupApp(t)
	userID := uuid.New()
	token := testutils.AuthToken(t, a, userID)

	read := loanRead(userID)
	read.InterestRate = 0
	uow.Loans.On("GetForUser", mock.Anything, userID, read.ID).Return(read, nil)
	uow.Payments.On("ListByLoan", mock.Anything, read.ID).
		Return([]*dto.PaymentRead{{LoanID: read.ID, Amount: 25_000}}, nil)

	req := testutils.NewJSONRequest(t, http.MethodGet, "/loans/"+read.ID.String()+"/balance", token, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data loanweb.BalanceResponse `json:"data"`
	}
	testutils.DecodeResponse(t, resp, &envelope)
	assert.Equal(t, read.ID.String(), envelope.Data.LoanID)
	assert.Equal(t, int64(75_000), envelope.Data.OutstandingBalance)
	uow.AssertExpectations(t)
}
