// Package payment provides the payment endpoints.
package payment

import (
	"github.com/amirasaad/loantrack/pkg/config"
	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/pkg/middleware"
	authsvc "github.com/amirasaad/loantrack/pkg/service/auth"
	paymentsvc "github.com/amirasaad/loantrack/pkg/service/payment"
	"github.com/amirasaad/loantrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the payment routes. All of them require authentication.
func Routes(
	app *fiber.App,
	paymentSvc *paymentsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	jwt := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/payments", jwt, CreatePayment(paymentSvc, authSvc))
	app.Get("/payments", jwt, ListPayments(paymentSvc, authSvc))
	app.Get("/payments/:id", jwt, GetPayment(paymentSvc, authSvc))
	app.Put("/payments/:id", jwt, UpdatePayment(paymentSvc, authSvc))
	app.Delete("/payments/:id", jwt, DeletePayment(paymentSvc, authSvc))
}

func parsePaymentID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// CreatePayment records a payment against one of the user's loans.
// @Summary Create a payment
// @Description Record a payment against one of the authenticated user's loans
// @Tags payments
// @Accept json
// @Produce json
// @Param request body CreatePaymentRequest true "Payment data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /payments [post]
// @Security Bearer
func CreatePayment(paymentSvc *paymentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreatePaymentRequest](c)
		if input == nil {
			return err // error response already written
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		read, err := paymentSvc.Create(c.Context(), userID, &dto.PaymentCreate{
			LoanID: input.LoanID,
			Amount: input.Amount,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create payment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created payment", read)
	}
}

// ListPayments lists the user's payments across all their loans.
// @Summary List payments
// @Description List the authenticated user's payments
// @Tags payments
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /payments [get]
// @Security Bearer
func ListPayments(paymentSvc *paymentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		page := c.QueryInt("page", 1)
		pageSize := c.QueryInt("page_size", 20)
		reads, err := paymentSvc.List(c.Context(), userID, page, pageSize)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list payments", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payments found", reads)
	}
}

// GetPayment retrieves one of the user's payments.
// @Summary Get payment by ID
// @Description Retrieve one of the authenticated user's payments
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /payments/{id} [get]
// @Security Bearer
func GetPayment(paymentSvc *paymentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parsePaymentID(c)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid payment ID", err, "Payment ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		read, err := paymentSvc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Payment not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment found", read)
	}
}

// UpdatePayment changes a payment's amount.
// @Summary Update payment
// @Description Update the amount of one of the authenticated user's payments
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body UpdatePaymentRequest true "Payment update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /payments/{id} [put]
// @Security Bearer
func UpdatePayment(paymentSvc *paymentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdatePaymentRequest](c)
		if input == nil {
			return err // error response already written
		}
		id, err := parsePaymentID(c)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid payment ID", err, "Payment ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		read, err := paymentSvc.Update(c.Context(), userID, id, &dto.PaymentUpdate{
			Amount: input.Amount,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update payment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment updated successfully", read)
	}
}

// DeletePayment soft deletes one of the user's payments.
// @Summary Delete payment
// @Description Soft delete one of the authenticated user's payments
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 204 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /payments/{id} [delete]
// @Security Bearer
func DeletePayment(paymentSvc *paymentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parsePaymentID(c)
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid payment ID", err, "Payment ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		if err := paymentSvc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete payment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Payment deleted", nil)
	}
}
