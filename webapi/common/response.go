// Package common provides the shared response envelope, RFC 9457 problem
// details, and request binding helpers for the web API.
package common

import (
	"errors"

	"github.com/amirasaad/loantrack/pkg/domain"
	"github.com/amirasaad/loantrack/pkg/domain/loan"
	"github.com/amirasaad/loantrack/pkg/domain/user"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	if status == fiber.StatusNoContent {
		return c.SendStatus(status)
	}
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem-details response. Extras may
// carry a string detail and/or an explicit int status; when no status is
// given it is derived from err via ErrorToStatusCode.
func ProblemDetailsJSON(
	c *fiber.Ctx,
	title string,
	err error,
	extras ...any,
) error {
	status := 0
	detail := ""
	for _, extra := range extras {
		switch v := extra.(type) {
		case string:
			detail = v
		case int:
			status = v
		}
	}
	if status == 0 {
		status = ErrorToStatusCode(err)
	}

	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	if detail == "" && err != nil {
		pd.Detail = err.Error()
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, loan.ErrLoanNotFound),
		errors.Is(err, loan.ErrPaymentNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, loan.ErrPaymentNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, loan.ErrInvalidNominalValue),
		errors.Is(err, loan.ErrInvalidInterestRate),
		errors.Is(err, loan.ErrInvalidPaymentAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, user.ErrUserUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. Returns the populated struct, or writes an error
// response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(
			c, "Invalid request body", err, err.Error(), fiber.StatusBadRequest)
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(
			c, "Validation failed", err, err.Error(), fiber.StatusBadRequest)
	}
	return &input, nil
}
