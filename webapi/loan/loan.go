// Package loan provides the loan endpoints.
package loan

import (
	"github.com/amirasaad/loantrack/pkg/config"
	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/pkg/middleware"
	authsvc "github.com/amirasaad/loantrack/pkg/service/auth"
	loansvc "github.com/amirasaad/loantrack/pkg/service/loan"
	"github.com/amirasaad/loantrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the loan routes. All of them require authentication.
func Routes(
	app *fiber.App,
	loanSvc *loansvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	jwt := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/loans", jwt, CreateLoan(loanSvc, authSvc))
	app.Get("/loans", jwt, ListLoans(loanSvc, authSvc))
	app.Get("/loans/:id", jwt, GetLoan(loanSvc, authSvc))
	app.Put("/loans/:id", jwt, UpdateLoan(loanSvc, authSvc))
	app.Delete("/loans/:id", jwt, DeleteLoan(loanSvc, authSvc))
	app.Post("/loans/:id/restore", jwt, RestoreLoan(loanSvc, authSvc))
	app.Get("/loans/:id/balance", jwt, GetLoanBalance(loanSvc, authSvc))
}

func parseLoanID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// CreateLoan records a new loan owned by the authenticated user.
// @Summary Create a loan
// @Description Record a new loan; the request IP and request date are captured server-side
// @Tags loans
// @Accept json
// @Produce json
// @Param request body CreateLoanRequest true "Loan data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /loans [post]
// @Security Bearer
func CreateLoan(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateLoanRequest](c)
		if input == nil {
			return err // error response already written
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		read, err := loanSvc.Create(c.Context(), userID, &dto.LoanCreate{
			NominalValue: input.NominalValue,
			InterestRate: input.InterestRate,
			Bank:         input.Bank,
			Client:       input.Client,
		}, common.ClientIP(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created loan", read)
	}
}

// ListLoans lists the authenticated user's loans.
// @Summary List loans
// @Description List the authenticated user's non-deleted loans with balances
// @Tags loans
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /loans [get]
// @Security Bearer
func ListLoans(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		page := c.QueryInt("page", 1)
		pageSize := c.QueryInt("page_size", 20)
		reads, err := loanSvc.List(c.Context(), userID, page, pageSize)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list loans", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Loans found", reads)
	}
}

// GetLoan retrieves one of the user's loans with payments and balance.
// @Summary Get loan by ID
// @Description Retrieve one of the authenticated user's loans with its payments and balance
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /loans/{id} [get]
// @Security Bearer
func GetLoan(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLoanID(c)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid loan ID", err, "Loan ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		read, err := loanSvc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Loan not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Loan found", read)
	}
}

// UpdateLoan updates one of the user's loans.
// @Summary Update loan
// @Description Update the mutable fields of one of the authenticated user's loans
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param request body UpdateLoanRequest true "Loan update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /loans/{id} [put]
// @Security Bearer
func UpdateLoan(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateLoanRequest](c)
		if input == nil {
			return err // error response already written
		}
		id, err := parseLoanID(c)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid loan ID", err, "Loan ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		read, err := loanSvc.Update(c.Context(), userID, id, &dto.LoanUpdate{
			NominalValue: input.NominalValue,
			InterestRate: input.InterestRate,
			Bank:         input.Bank,
			Client:       input.Client,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Loan updated successfully", read)
	}
}

// DeleteLoan soft deletes one of the user's loans.
// @Summary Delete loan
// @Description Soft delete one of the authenticated user's loans
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 204 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /loans/{id} [delete]
// @Security Bearer
func DeleteLoan(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLoanID(c)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid loan ID", err, "Loan ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		if err := loanSvc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Loan deleted", nil)
	}
}

// RestoreLoan clears the soft-delete marker on one of the user's loans.
// @Summary Restore loan
// @Description Restore a previously soft-deleted loan
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /loans/{id}/restore [post]
// @Security Bearer
func RestoreLoan(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLoanID(c)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid loan ID", err, "Loan ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		read, err := loanSvc.Restore(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't restore loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Loan restored", read)
	}
}

// GetLoanBalance returns the loan's outstanding balance.
// @Summary Get loan balance
// @Description Retrieve the outstanding balance of one of the authenticated user's loans
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /loans/{id}/balance [get]
// @Security Bearer
func GetLoanBalance(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseLoanID(c)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid loan ID", err, "Loan ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		balance, err := loanSvc.OutstandingBalance(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance computed", BalanceResponse{
			LoanID:             id.String(),
			OutstandingBalance: balance,
		})
	}
}
