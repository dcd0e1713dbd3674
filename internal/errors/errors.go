// Package errors holds the closed set of error codes that leave the transfer
// core, and the classifier that maps persistence failures onto them.
package errors

// DomainError is a failure with a stable, client-facing code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Error codes as they appear in response bodies.
const (
	CodeBadRequest                 = "BAD_REQUEST"
	CodeInvalidAccount             = "INVALID_ACCOUNT"
	CodeInsufficientAccountBalance = "INSUFFICIENT_ACCOUNT_BALANCE"
	CodeMoneyTooManyDecimalPlaces  = "MONEY_TOO_MANY_DECIMAL_PLACES"
	CodeMoneyOverflow              = "MONEY_OVERFLOW"
	CodeInternal                   = "INTERNAL_SERVER_ERROR"
)

var (
	ErrBadRequest = &DomainError{
		Code:    CodeBadRequest,
		Message: "malformed transfer request",
	}
	ErrInvalidAccount = &DomainError{
		Code:    CodeInvalidAccount,
		Message: "account does not exist",
	}
	ErrInsufficientAccountBalance = &DomainError{
		Code:    CodeInsufficientAccountBalance,
		Message: "insufficient account balance",
	}
	ErrMoneyTooManyDecimalPlaces = &DomainError{
		Code:    CodeMoneyTooManyDecimalPlaces,
		Message: "amount has too many decimal places",
	}
	ErrMoneyOverflow = &DomainError{
		Code:    CodeMoneyOverflow,
		Message: "resulting balance exceeds the storable precision",
	}
	ErrInternal = &DomainError{
		Code:    CodeInternal,
		Message: "internal error",
	}
)
