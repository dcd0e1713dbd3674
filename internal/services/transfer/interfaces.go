package transfer

import (
	"context"
	"time"
)

// Service moves money between two accounts' balances in one currency.
type Service interface {
	// Transfer either applies both the debit and the credit or neither.
	// Every returned error is an *errors.DomainError from the closed code set.
	Transfer(ctx context.Context, req Request) error
}

// MetricsCollector receives one observation per finished transfer.
type MetricsCollector interface {
	RecordTransfer(ctx context.Context, currency, outcome string, duration time.Duration)
}
