package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"moneytransfer/internal/models"

	"github.com/shopspring/decimal"
)

// SchemaStatements create the tables the transfer core reads and writes.
// They are idempotent.
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS account (
		account_id VARCHAR(255) PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS account_balance (
		account_id VARCHAR(255) NOT NULL,
		currency   VARCHAR(255) NOT NULL,
		balance    ` + models.MoneyType + ` NOT NULL,
		PRIMARY KEY (account_id, currency),
		FOREIGN KEY (account_id) REFERENCES account(account_id)
	)`,
}

// EnsureSchema runs SchemaStatements against db.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range SchemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// InsertAccount creates an account row if it is not there yet.
func InsertAccount(ctx context.Context, db *sql.DB, accountID string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO account (account_id) VALUES ($1) ON CONFLICT (account_id) DO NOTHING`,
		accountID)
	if err != nil {
		return fmt.Errorf("failed to insert account %s: %w", accountID, err)
	}
	return nil
}

// SetBalance overwrites the balance of (accountID, currency).
func SetBalance(ctx context.Context, db *sql.DB, accountID, currency string, balance decimal.Decimal) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO account_balance (account_id, currency, balance)
		 VALUES ($1, $2, CAST($3 AS `+models.MoneyType+`))
		 ON CONFLICT (account_id, currency) DO UPDATE SET balance = EXCLUDED.balance`,
		accountID, currency, balance.String())
	if err != nil {
		return fmt.Errorf("failed to set balance for %s/%s: %w", accountID, currency, err)
	}
	return nil
}
