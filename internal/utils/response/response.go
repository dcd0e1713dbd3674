package response

import (
	"errors"
	"strings"

	apperrors "moneytransfer/internal/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Codes produced by the HTTP layer itself rather than the transfer core.
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
)

var statusByCode = map[string]int{
	apperrors.CodeBadRequest:                 fiber.StatusBadRequest,
	apperrors.CodeInvalidAccount:             fiber.StatusBadRequest,
	apperrors.CodeMoneyTooManyDecimalPlaces:  fiber.StatusBadRequest,
	apperrors.CodeInsufficientAccountBalance: fiber.StatusUnprocessableEntity,
	apperrors.CodeMoneyOverflow:              fiber.StatusUnprocessableEntity,
	apperrors.CodeInternal:                   fiber.StatusInternalServerError,
}

// StatusFor returns the HTTP status for a domain error code.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// ErrorCode writes {"errorCode": code} with the given status.
func ErrorCode(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"errorCode": code,
	})
}

// Fail writes a domain error using its mapped status.
func Fail(c *fiber.Ctx, err *apperrors.DomainError) error {
	return ErrorCode(c, StatusFor(err.Code), err.Code)
}

func BadRequest(c *fiber.Ctx) error {
	return Fail(c, apperrors.ErrBadRequest)
}

func Unauthorized(c *fiber.Ctx) error {
	return ErrorCode(c, fiber.StatusUnauthorized, CodeUnauthorized)
}

// ErrorHandler is the fiber error handler. It keeps the {"errorCode"} shape for
// errors raised outside the handlers (unknown routes, recovered panics).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		code := strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(fiberErr.Code), " ", "_"))
		return ErrorCode(c, fiberErr.Code, code)
	}
	return Fail(c, apperrors.ErrInternal)
}
