package transfer

import "github.com/shopspring/decimal"

// Request is a single-currency transfer between two accounts.
type Request struct {
	SourceAccount      string
	DestinationAccount string
	Amount             decimal.Decimal
	Currency           string
}

// State is where a transfer is, or where it ended.
type State string

const (
	StateValidating State = "validating"
	StateDebiting   State = "debiting"
	StateCrediting  State = "crediting"
	StateCommitted  State = "committed"
	StateRolledBack State = "rolled_back"
)

// OutcomeOK is reported to metrics for committed transfers. Failed transfers
// report their error code.
const OutcomeOK = "OK"
