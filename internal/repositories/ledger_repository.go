package repositories

import (
	"context"
	"errors"
	"fmt"

	"moneytransfer/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrBalanceNotFound = errors.New("balance not found")

// The balance check and the decrement are one statement, so the row lock taken
// by the UPDATE covers both.
var debitStatement = `UPDATE account_balance
	SET balance = balance - CAST(? AS ` + models.MoneyType + `)
	WHERE account_id = ? AND currency = ?
	AND balance - CAST(? AS ` + models.MoneyType + `) >= 0`

var creditStatement = `INSERT INTO account_balance (account_id, currency, balance)
	VALUES (?, ?, CAST(? AS ` + models.MoneyType + `))
	ON CONFLICT (account_id, currency)
	DO UPDATE SET balance = account_balance.balance + EXCLUDED.balance`

// LedgerRepository holds per (account, currency) balances.
type LedgerRepository interface {
	// Debit subtracts amount only if the balance stays >= 0 and returns the
	// number of rows changed. Zero means the row is missing or the funds are short.
	Debit(ctx context.Context, accountID, currency string, amount decimal.Decimal) (int64, error)
	// Credit adds amount, creating the row if needed.
	Credit(ctx context.Context, accountID, currency string, amount decimal.Decimal) error
	Balance(ctx context.Context, accountID, currency string) (decimal.Decimal, error)

	ExecuteInTransaction(ctx context.Context, fn func(LedgerRepository) error) error
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a LedgerRepository backed by gorm.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Debit(ctx context.Context, accountID, currency string, amount decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).Exec(debitStatement, amount.String(), accountID, currency, amount.String())
	if result.Error != nil {
		return 0, fmt.Errorf("failed to debit balance: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *ledgerRepository) Credit(ctx context.Context, accountID, currency string, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).Exec(creditStatement, accountID, currency, amount.String())
	if result.Error != nil {
		return fmt.Errorf("failed to credit balance: %w", result.Error)
	}
	return nil
}

func (r *ledgerRepository) Balance(ctx context.Context, accountID, currency string) (decimal.Decimal, error) {
	var balance models.AccountBalance
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND currency = ?", accountID, currency).
		First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrBalanceNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance.Balance, nil
}

// ExecuteInTransaction runs fn against a repository bound to a single
// transaction. A non-nil error from fn rolls everything back.
func (r *ledgerRepository) ExecuteInTransaction(ctx context.Context, fn func(LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
